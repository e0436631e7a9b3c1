package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"recipe-finder/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) common.ErrorResponse {
	var body common.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, common.ErrCodeInternalError, decodeError(t, w).Code)
}

func TestBodySizeLimit(t *testing.T) {
	r := gin.New()
	r.Use(BodySizeLimit(8))
	r.POST("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"ingredients":["rice"]}`)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, common.ErrCodeEntityTooLarge, decodeError(t, w).Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestDeduplication(t *testing.T) {
	d := NewDeduplicator(time.Second)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return now }

	r := gin.New()
	r.Use(d.Middleware())
	r.POST("/ai/ask", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/ai/ask", func(c *gin.Context) { c.Status(http.StatusOK) })

	post := func(body string) int {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/ai/ask", strings.NewReader(body)))
		return w.Code
	}

	assert.Equal(t, http.StatusOK, post(`{"prompt":"dal"}`))
	assert.Equal(t, http.StatusTooManyRequests, post(`{"prompt":"dal"}`))
	assert.Equal(t, http.StatusOK, post(`{"prompt":"rice"}`))

	now = now.Add(2 * time.Second)
	assert.Equal(t, http.StatusOK, post(`{"prompt":"dal"}`))

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ai/ask", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimiterRefills(t *testing.T) {
	rl := NewRateLimiter(2, time.Second)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.lastTime = now
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow())
	assert.True(t, rl.Allow())
	assert.False(t, rl.Allow())

	now = now.Add(250 * time.Millisecond)
	assert.False(t, rl.Allow())
	now = now.Add(250 * time.Millisecond)
	assert.True(t, rl.Allow())
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RateLimit(1, time.Minute))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
}

func TestTimeout(t *testing.T) {
	r := gin.New()
	r.Use(Timeout(time.Second))
	r.GET("/", func(c *gin.Context) {
		_, ok := c.Request.Context().Deadline()
		assert.True(t, ok)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
