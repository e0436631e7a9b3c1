package recipe

import (
	"net/http"
	"strconv"

	"recipe-finder/internal/api/response"
	recipeService "recipe-finder/internal/core/recipe"
	"recipe-finder/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// Handler recipe catalog endpoints
type Handler struct {
	catalog *recipeService.Catalog
}

// NewHandler creates the catalog handler
func NewHandler(catalog *recipeService.Catalog) *Handler {
	return &Handler{catalog: catalog}
}

// Register mounts the catalog routes on rg
func (h *Handler) Register(rg gin.IRoutes) {
	rg.GET("/cuisines", h.Cuisines)
	rg.GET("/courses", h.Courses)
	rg.GET("/diets", h.Diets)
	rg.GET("/ingredients", h.Ingredients)
	rg.GET("/recipes", h.Browse)
	rg.GET("/recipe", h.Detail)
	rg.GET("/search", h.Search)
	rg.POST("/search-by-ingredients", h.MatchIngredients)
	rg.GET("/similar-recipes", h.Similar)
}

func (h *Handler) Cuisines(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"cuisines": h.catalog.Cuisines()})
}

func (h *Handler) Courses(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"courses": h.catalog.Courses()})
}

func (h *Handler) Diets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"diets": h.catalog.Diets()})
}

func (h *Handler) Ingredients(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ingredients": h.catalog.Ingredients()})
}

// Browse GET /recipes?cuisine=&course=&diet=&page=&limit=
func (h *Handler) Browse(c *gin.Context) {
	page, err := h.pageRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.catalog.Browse(filterSpec(c), page)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":   result.Total,
		"page":    result.Page,
		"limit":   result.Limit,
		"recipes": toSummaries(result.Items),
	})
}

// Detail GET /recipe?name=
func (h *Handler) Detail(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		response.Error(c, common.NewInvalidInput("Name parameter required"))
		return
	}

	rec, err := h.catalog.Get(name)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, toDetail(rec))
}

// Search GET /search?query=&cuisine=&course=&diet=&page=&limit=
func (h *Handler) Search(c *gin.Context) {
	page, err := h.pageRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	filter := filterSpec(c)
	result, err := h.catalog.Search(c.Query("query"), filter, page)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":  result.Query,
		"tokens": result.Tokens,
		"filters": gin.H{
			"cuisine": nonNil(filter.Cuisines),
			"course":  nonNil(filter.Courses),
			"diet":    nonNil(filter.Diets),
		},
		"total":   result.Total,
		"page":    result.Page,
		"limit":   result.Limit,
		"results": toSummaries(result.Items),
	})
}

type matchRequest struct {
	Ingredients []string `json:"ingredients"`
}

// MatchIngredients POST /search-by-ingredients?page=&limit=
func (h *Handler) MatchIngredients(c *gin.Context) {
	page, err := h.pageRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req matchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, common.NewInvalidInput("Provide ingredients as a list"))
		return
	}

	result, err := h.catalog.MatchIngredients(req.Ingredients, page)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"matched_ingredients": req.Ingredients,
		"total":               result.Total,
		"page":                result.Page,
		"limit":               result.Limit,
		"recipes":             toMatches(result.Items),
	})
}

// Similar GET /similar-recipes?name=
func (h *Handler) Similar(c *gin.Context) {
	result, err := h.catalog.Similar(c.Query("name"))
	if err != nil {
		response.Error(c, err)
		return
	}

	recipes := toSummaries(result.Recipes)
	c.JSON(http.StatusOK, gin.H{
		"original":        result.Original,
		"diet":            result.Diet,
		"similar_count":   len(recipes),
		"similar_recipes": recipes,
	})
}

func filterSpec(c *gin.Context) recipeService.FilterSpec {
	return recipeService.FilterSpec{
		Cuisines: c.QueryArray("cuisine"),
		Courses:  c.QueryArray("course"),
		Diets:    c.QueryArray("diet"),
	}
}

func (h *Handler) pageRequest(c *gin.Context) (recipeService.PageRequest, error) {
	page, err := intQuery(c, "page", 1)
	if err != nil {
		return recipeService.PageRequest{}, err
	}
	limit, err := intQuery(c, "limit", h.catalog.DefaultPageLimit())
	if err != nil {
		return recipeService.PageRequest{}, err
	}
	return recipeService.PageRequest{Page: page, Limit: limit}, nil
}

func intQuery(c *gin.Context, key string, def int) (int, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, common.NewInvalidInput(key + " must be an integer")
	}
	return n, nil
}
