package recipe

import (
	"math"
	"sort"

	"recipe-finder/internal/core/dataset"
	"recipe-finder/internal/pkg/common"
)

// MatchResult a record with its per-request ingredient score
type MatchResult struct {
	Record *dataset.Record
	Score  float64
}

// Rounded score for display
func (m MatchResult) Rounded() float64 {
	return math.Round(m.Score*10000) / 10000
}

// NormalizeUserIngredients trims and lowercases the user's list, dropping blanks and duplicates
func NormalizeUserIngredients(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		if tok := dataset.NormalizeIngredient(it); tok != "" {
			set[tok] = struct{}{}
		}
	}
	return set
}

// MatchByIngredients scores every record by the share of its own ingredients the user has.
// The denominator is the record's ingredient count, not the user's, so a small recipe that is
// fully covered scores 1 however many extra ingredients were supplied. Zero scores are dropped
// and ties keep source order.
func MatchByIngredients(records []*dataset.Record, userIngredients []string) ([]MatchResult, error) {
	have := NormalizeUserIngredients(userIngredients)
	if len(have) == 0 {
		return nil, common.NewInvalidInput("please provide a list of ingredients")
	}

	results := make([]MatchResult, 0)
	for _, r := range records {
		total := r.IngredientCount()
		if total == 0 {
			continue
		}
		hits := 0
		for tok := range have {
			if r.HasIngredient(tok) {
				hits++
			}
		}
		if hits == 0 {
			continue
		}
		results = append(results, MatchResult{Record: r, Score: float64(hits) / float64(total)})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results, nil
}
