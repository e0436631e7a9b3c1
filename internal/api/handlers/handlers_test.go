package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"recipe-finder/internal/core/ai/provider"
	"recipe-finder/internal/core/airecipe"
	"recipe-finder/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeAsker struct {
	answer string
	err    error
}

func (f *fakeAsker) Ask(_ context.Context, _ string) (*provider.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &provider.Response{Content: f.answer}, nil
}

func aiRouter(gen *airecipe.Generator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewAIHandler(gen)
	r.POST("/ai/ask", h.Ask)
	r.POST("/ai/recipe-questions", h.RecipeQuestions)
	return r
}

func do(r http.Handler, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestAsk(t *testing.T) {
	r := aiRouter(airecipe.NewGenerator(&fakeAsker{answer: "Recipe Name: Dal"}))

	w := do(r, http.MethodPost, "/ai/ask", `{"prompt":"dal"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Recipe Name: Dal", decode(t, w)["answer"])

	for _, body := range []string{`{}`, `{"prompt":""}`, `nope`} {
		w = do(r, http.MethodPost, "/ai/ask", body, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Equal(t, "Invalid request: 'prompt' field is missing.", decode(t, w)["error"])
	}
}

func TestAskUpstreamFailure(t *testing.T) {
	r := aiRouter(airecipe.NewGenerator(&fakeAsker{err: common.ErrQueueFull}))
	w := do(r, http.MethodPost, "/ai/ask", `{"prompt":"dal"}`, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "QUEUE_FULL", decode(t, w)["code"])
}

func TestAIDisabled(t *testing.T) {
	r := aiRouter(nil)
	for _, path := range []string{"/ai/ask", "/ai/recipe-questions"} {
		w := do(r, http.MethodPost, path, `{"prompt":"dal","mainIngredient":"dal"}`, nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code, path)
		assert.Equal(t, common.ErrCodeServiceUnavailable, decode(t, w)["code"])
	}
}

func TestRecipeQuestions(t *testing.T) {
	r := aiRouter(airecipe.NewGenerator(&fakeAsker{answer: "```json\n{\"name\":\"Tofu Stir Fry\",\"servings\":2}\n```"}))

	w := do(r, http.MethodPost, "/ai/recipe-questions",
		`{"mealType":"dinner","mainIngredient":"tofu","spiceLevel":"medium","cuisine":"Chinese","timeAvailable":"20 minutes"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["status"])
	answer := body["answer"].(map[string]interface{})
	assert.Equal(t, "Tofu Stir Fry", answer["name"])
	assert.EqualValues(t, 2, answer["servings"])

	w = do(r, http.MethodPost, "/ai/recipe-questions", `{"mealType":"dinner"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, common.ErrCodeInvalidInput, decode(t, w)["code"])
}

func TestRecipeQuestionsInvalidAnswer(t *testing.T) {
	r := aiRouter(airecipe.NewGenerator(&fakeAsker{answer: "I'd rather not."}))
	w := do(r, http.MethodPost, "/ai/recipe-questions", `{"mainIngredient":"tofu"}`, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["status"])
	assert.Equal(t, "AI response not valid JSON", body["error"])
}

func savedRouter(t *testing.T) *gin.Engine {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&airecipe.SavedRecipe{}))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewSavedHandler(airecipe.NewStore(db))
	r.POST("/ai/recipes", h.Save)
	r.GET("/ai/recipes", h.List)
	r.GET("/ai/recipes/:id", h.Get)
	r.DELETE("/ai/recipes/:id", h.Delete)
	return r
}

func TestSavedRecipeLifecycle(t *testing.T) {
	r := savedRouter(t)
	alice := map[string]string{UserHeader: "alice"}

	w := do(r, http.MethodPost, "/ai/recipes", `{"name":"Tofu Stir Fry","steps":["fry"]}`, alice)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["status"])
	id, _ := body["id"].(string)
	require.NotEmpty(t, id)

	w = do(r, http.MethodGet, "/ai/recipes", "", alice)
	require.Equal(t, http.StatusOK, w.Code)
	recipes := decode(t, w)["recipes"].([]interface{})
	require.Len(t, recipes, 1)

	w = do(r, http.MethodGet, "/ai/recipes/"+id, "", alice)
	require.Equal(t, http.StatusOK, w.Code)
	recipe := decode(t, w)["recipe"].(map[string]interface{})
	assert.Equal(t, "Tofu Stir Fry", recipe["name"])

	// other users cannot see it
	w = do(r, http.MethodGet, "/ai/recipes/"+id, "", map[string]string{UserHeader: "bob"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodDelete, "/ai/recipes/"+id, "", alice)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/ai/recipes/"+id, "", alice)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSavedRecipesRequireUser(t *testing.T) {
	r := savedRouter(t)
	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/ai/recipes"},
		{http.MethodGet, "/ai/recipes"},
		{http.MethodGet, "/ai/recipes/abc"},
		{http.MethodDelete, "/ai/recipes/abc"},
	} {
		w := do(r, tc.method, tc.path, `{"name":"x"}`, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, tc.path)
	}
}

func TestSaveRejectsBadBody(t *testing.T) {
	r := savedRouter(t)
	alice := map[string]string{UserHeader: "alice"}

	w := do(r, http.MethodPost, "/ai/recipes", `[1,2]`, alice)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/ai/recipes", `{"steps":["fry"]}`, alice)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
