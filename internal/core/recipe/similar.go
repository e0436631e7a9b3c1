package recipe

import (
	"math/rand"
	"strings"

	"recipe-finder/internal/core/dataset"
	"recipe-finder/internal/pkg/common"
)

// DefaultSimilarLimit number of similar recipes returned when no limit is configured
const DefaultSimilarLimit = 15

// Strategy proposes similar candidates for target from the records not yet chosen
type Strategy struct {
	Name   string
	Select func(target *dataset.Record, remaining []*dataset.Record, need int, rng *rand.Rand) []*dataset.Record
}

// SimilarityStrategies are tried in order until the quota is filled
var SimilarityStrategies = []Strategy{
	{Name: "categorical", Select: selectCategorical},
	{Name: "primary-ingredient", Select: selectPrimaryIngredient},
	{Name: "random", Select: selectRandom},
}

// SimilarResult similar recipes for one resolved target
type SimilarResult struct {
	Original string
	Diet     string
	Recipes  []*dataset.Record
}

// ResolveTarget exact case-insensitive name match, else the first record whose name contains name
func ResolveTarget(records []*dataset.Record, name string) (*dataset.Record, error) {
	q := strings.ToLower(strings.TrimSpace(name))
	if q == "" {
		return nil, common.NewInvalidInput("recipe name required")
	}
	for _, r := range records {
		if r.LowerName() == q {
			return r, nil
		}
	}
	for _, r := range records {
		if strings.Contains(r.LowerName(), q) {
			return r, nil
		}
	}
	return nil, common.NewNotFound("recipe not found for: " + q)
}

// FindSimilar resolves targetName and fills up to limit similar recipes, never including the
// target itself. Vegetarian targets only get vegetarian suggestions. A nil rng disables the
// random fallback.
func FindSimilar(records []*dataset.Record, targetName string, limit int, rng *rand.Rand) (*SimilarResult, error) {
	target, err := ResolveTarget(records, targetName)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultSimilarLimit
	}

	pool := candidatePool(records, target)
	chosen := make([]*dataset.Record, 0, limit)
	taken := make(map[string]struct{}, limit)

	for _, s := range SimilarityStrategies {
		need := limit - len(chosen)
		if need <= 0 {
			break
		}
		remaining := make([]*dataset.Record, 0, len(pool))
		for _, r := range pool {
			if _, ok := taken[r.Name]; !ok {
				remaining = append(remaining, r)
			}
		}
		if len(remaining) == 0 {
			break
		}
		for _, r := range s.Select(target, remaining, need, rng) {
			if len(chosen) == limit {
				break
			}
			if _, dup := taken[r.Name]; dup {
				continue
			}
			taken[r.Name] = struct{}{}
			chosen = append(chosen, r)
		}
	}

	diet := strings.ToLower(strings.TrimSpace(target.Diet))
	if diet == "" {
		diet = "unknown"
	}
	return &SimilarResult{Original: target.Name, Diet: diet, Recipes: chosen}, nil
}

func candidatePool(records []*dataset.Record, target *dataset.Record) []*dataset.Record {
	targetName := target.LowerName()
	vegetarian := isVegetarian(target)

	pool := make([]*dataset.Record, 0, len(records))
	for _, r := range records {
		if r.LowerName() == targetName {
			continue
		}
		if vegetarian && !isVegetarian(r) {
			continue
		}
		if !r.Complete() {
			continue
		}
		pool = append(pool, r)
	}
	return pool
}

func isVegetarian(r *dataset.Record) bool {
	return strings.EqualFold(strings.TrimSpace(r.Diet), "vegetarian")
}

// categoricalScore one point each for same cuisine, same course, and two or more shared ingredients
func categoricalScore(target, r *dataset.Record) int {
	score := 0
	if r.Cuisine == target.Cuisine {
		score++
	}
	if r.Course == target.Course {
		score++
	}
	shared := 0
	for _, tok := range target.Ingredients {
		if r.HasIngredient(tok) {
			shared++
		}
	}
	if shared >= 2 {
		score++
	}
	return score
}

func selectCategorical(target *dataset.Record, remaining []*dataset.Record, _ int, _ *rand.Rand) []*dataset.Record {
	var out []*dataset.Record
	for _, r := range remaining {
		if categoricalScore(target, r) >= 2 {
			out = append(out, r)
		}
	}
	return out
}

func selectPrimaryIngredient(target *dataset.Record, remaining []*dataset.Record, _ int, _ *rand.Rand) []*dataset.Record {
	if len(target.Ingredients) == 0 {
		return nil
	}
	primary := target.Ingredients[0]
	var out []*dataset.Record
	for _, r := range remaining {
		if strings.Contains(strings.ToLower(r.IngredientsRaw), primary) {
			out = append(out, r)
		}
	}
	return out
}

func selectRandom(_ *dataset.Record, remaining []*dataset.Record, need int, rng *rand.Rand) []*dataset.Record {
	if rng == nil {
		return nil
	}
	if need > len(remaining) {
		need = len(remaining)
	}
	out := make([]*dataset.Record, 0, need)
	for _, i := range rng.Perm(len(remaining))[:need] {
		out = append(out, remaining[i])
	}
	return out
}
