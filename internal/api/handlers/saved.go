package handlers

import (
	"net/http"
	"strings"

	"recipe-finder/internal/api/response"
	"recipe-finder/internal/core/airecipe"
	"recipe-finder/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// UserHeader carries the caller identity set by the auth gateway
const UserHeader = "X-User-ID"

// SavedHandler saved AI recipe endpoints
type SavedHandler struct {
	store *airecipe.Store
}

// NewSavedHandler creates the handler
func NewSavedHandler(store *airecipe.Store) *SavedHandler {
	return &SavedHandler{store: store}
}

func userID(c *gin.Context) (string, bool) {
	id := strings.TrimSpace(c.GetHeader(UserHeader))
	if id == "" {
		response.Error(c, common.ErrUnauthorized)
		return "", false
	}
	return id, true
}

// Save POST /ai/recipes
func (h *SavedHandler) Save(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	var recipe map[string]interface{}
	if err := c.ShouldBindJSON(&recipe); err != nil {
		response.Error(c, common.NewInvalidInput("invalid recipe body"))
		return
	}

	saved, err := h.store.Save(c.Request.Context(), uid, recipe)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  true,
		"message": "Recipe saved successfully",
		"id":      saved.ID.String(),
	})
}

// List GET /ai/recipes
func (h *SavedHandler) List(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	recipes, err := h.store.List(c.Request.Context(), uid)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "recipes": recipes})
}

// Get GET /ai/recipes/:id
func (h *SavedHandler) Get(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	recipe, err := h.store.Get(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "recipe": recipe})
}

// Delete DELETE /ai/recipes/:id
func (h *SavedHandler) Delete(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	if err := h.store.Delete(c.Request.Context(), uid, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "message": "Recipe deleted successfully"})
}
