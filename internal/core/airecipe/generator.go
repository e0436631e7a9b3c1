package airecipe

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"recipe-finder/internal/core/ai/provider"
	"recipe-finder/internal/pkg/common"

	"go.uber.org/zap"
)

// Asker answers a free-text prompt
type Asker interface {
	Ask(ctx context.Context, prompt string) (*provider.Response, error)
}

// GuidedRequest answers to the short recipe questionnaire
type GuidedRequest struct {
	MealType       string `json:"mealType"`
	MainIngredient string `json:"mainIngredient"`
	SpiceLevel     string `json:"spiceLevel"`
	Cuisine        string `json:"cuisine"`
	TimeAvailable  string `json:"timeAvailable"`
}

// Generator builds recipe prompts and interprets the answers
type Generator struct {
	ai Asker
}

// NewGenerator creates a generator backed by ai
func NewGenerator(ai Asker) *Generator {
	return &Generator{ai: ai}
}

// AskPrompt prompt asking for a full recipe of dish
func AskPrompt(dish string) string {
	return fmt.Sprintf(`Get me the recipe for "%s" in the following format:
Recipe Name, Cuisine, Course, Diet, Prep Time, Description, Ingredients, Instructions.
If the input does not contain a valid food item or recipe name, respond with: "Enter a valid food item or a recipe."`, dish)
}

// GuidedPrompt prompt asking for a recipe as JSON
func GuidedPrompt(req GuidedRequest) string {
	return fmt.Sprintf(`Generate a %s %s recipe for %s using %s.
The recipe should take about %s to prepare.
Return the response strictly in this JSON format:

{
  "name": "...",
  "prep_time": ...,
  "ingredients": ["...", "..."],
  "steps": ["...", "..."]
}`, req.SpiceLevel, req.Cuisine, req.MealType, strings.TrimSpace(req.MainIngredient), req.TimeAvailable)
}

// Ask free-text recipe for a dish name
func (g *Generator) Ask(ctx context.Context, dish string) (string, error) {
	dish = strings.TrimSpace(dish)
	if dish == "" {
		return "", common.NewInvalidInput("Invalid request: 'prompt' field is missing.")
	}

	resp, err := g.ai.Ask(ctx, AskPrompt(dish))
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

// Guided generates a recipe from questionnaire answers and parses the JSON reply
func (g *Generator) Guided(ctx context.Context, req GuidedRequest) (map[string]interface{}, error) {
	if strings.TrimSpace(req.MainIngredient) == "" {
		return nil, common.NewInvalidInput("mainIngredient is required")
	}

	resp, err := g.ai.Ask(ctx, GuidedPrompt(req))
	if err != nil {
		return nil, err
	}

	recipe, err := ParseRecipeJSON(resp.Content)
	if err != nil {
		common.LogWarn("AI answer is not valid JSON",
			zap.Error(err),
			zap.Int("answer_length", len(resp.Content)),
		)
		return nil, common.NewError(common.ErrCodeAIInvalidAnswer, "AI response not valid JSON", http.StatusBadRequest, err)
	}
	return recipe, nil
}

// ParseRecipeJSON strips markdown fences and decodes the first JSON object in raw
func ParseRecipeJSON(raw string) (map[string]interface{}, error) {
	cleaned := common.StripCodeFences(raw)

	var recipe map[string]interface{}
	err := common.ParseJSON(cleaned, &recipe)
	if err == nil {
		return recipe, nil
	}

	// models sometimes wrap the object in prose or drop the quotes around keys
	obj := common.ExtractJSONObject(cleaned)
	for _, candidate := range []string{obj, common.QuoteJSONKeys(obj)} {
		recipe = nil
		if common.ParseJSON(candidate, &recipe) == nil {
			return recipe, nil
		}
	}
	return nil, err
}
