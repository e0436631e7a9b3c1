package recipe

import (
	"recipe-finder/internal/core/dataset"
	recipeService "recipe-finder/internal/core/recipe"
)

// Summary list projection of a recipe
type Summary struct {
	Name     string `json:"name"`
	PrepTime string `json:"prep_time"`
	ImageURL string `json:"image_url"`
	Cuisine  string `json:"cuisine"`
	Course   string `json:"course"`
	Diet     string `json:"diet"`
}

// Match summary plus raw ingredients and score
type Match struct {
	Summary
	Ingredients  string  `json:"ingredients"`
	MatchPercent float64 `json:"match_percent"`
}

// Detail full recipe with display-cleaned text
type Detail struct {
	Name         string   `json:"name"`
	ImageURL     string   `json:"image_url"`
	Description  string   `json:"description"`
	Cuisine      string   `json:"cuisine"`
	Course       string   `json:"course"`
	Diet         string   `json:"diet"`
	PrepTime     string   `json:"prep_time"`
	Ingredients  []string `json:"ingredients"`
	Instructions string   `json:"instructions"`
}

func toSummary(r *dataset.Record) Summary {
	return Summary{
		Name:     r.Name,
		PrepTime: r.PrepTime,
		ImageURL: r.ImageURL,
		Cuisine:  r.Cuisine,
		Course:   r.Course,
		Diet:     r.Diet,
	}
}

func toSummaries(records []*dataset.Record) []Summary {
	out := make([]Summary, 0, len(records))
	for _, r := range records {
		out = append(out, toSummary(r))
	}
	return out
}

func toMatches(results []recipeService.MatchResult) []Match {
	out := make([]Match, 0, len(results))
	for _, m := range results {
		out = append(out, Match{
			Summary:      toSummary(m.Record),
			Ingredients:  m.Record.IngredientsRaw,
			MatchPercent: m.Rounded(),
		})
	}
	return out
}

func toDetail(r *dataset.Record) Detail {
	return Detail{
		Name:         r.Name,
		ImageURL:     r.ImageURL,
		Description:  dataset.CleanText(r.Description),
		Cuisine:      r.Cuisine,
		Course:       r.Course,
		Diet:         r.Diet,
		PrepTime:     r.PrepTime,
		Ingredients:  dataset.CleanIngredientList(r.IngredientsRaw),
		Instructions: dataset.CleanText(r.Instructions),
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
