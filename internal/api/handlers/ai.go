package handlers

import (
	"errors"
	"net/http"

	"recipe-finder/internal/api/response"
	"recipe-finder/internal/core/airecipe"
	"recipe-finder/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// AIHandler AI recipe endpoints
type AIHandler struct {
	generator *airecipe.Generator
}

// NewAIHandler generator is nil when the AI provider is disabled
func NewAIHandler(generator *airecipe.Generator) *AIHandler {
	return &AIHandler{generator: generator}
}

type askRequest struct {
	Prompt string `json:"prompt"`
}

// Ask POST /ai/ask
func (h *AIHandler) Ask(c *gin.Context) {
	if h.generator == nil {
		response.Error(c, common.ErrServiceUnavailable)
		return
	}

	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Prompt == "" {
		response.Error(c, common.NewInvalidInput("Invalid request: 'prompt' field is missing."))
		return
	}

	answer, err := h.generator.Ask(c.Request.Context(), req.Prompt)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"answer": answer})
}

// RecipeQuestions POST /ai/recipe-questions
func (h *AIHandler) RecipeQuestions(c *gin.Context) {
	if h.generator == nil {
		response.Error(c, common.ErrServiceUnavailable)
		return
	}

	var req airecipe.GuidedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, common.NewInvalidInput("invalid request body"))
		return
	}

	recipe, err := h.generator.Guided(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, common.ErrAIInvalidAnswer) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"status": false,
				"error":  "AI response not valid JSON",
				"code":   common.ErrCodeAIInvalidAnswer,
			})
			return
		}
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "answer": recipe})
}
