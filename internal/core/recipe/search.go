package recipe

import (
	"regexp"
	"strings"

	"recipe-finder/internal/core/dataset"
	"recipe-finder/internal/pkg/common"
)

var stopWords = regexp.MustCompile(`\b(how to|make|cook|prepare|recipe|for|a|the|of|with)\b`)

// NormalizeQuery lowercases a free-text query, strips filler words and splits it into tokens
func NormalizeQuery(raw string) ([]string, error) {
	q := strings.ToLower(strings.TrimSpace(raw))
	if q == "" {
		return nil, common.NewInvalidInput("query parameter required")
	}

	tokens := strings.Fields(stopWords.ReplaceAllString(q, ""))
	if len(tokens) == 0 {
		return nil, common.NewInvalidQuery("no valid search terms found")
	}
	return tokens, nil
}

// NameContainsAll matches records whose lowercased name contains every token
func NameContainsAll(tokens []string) Predicate {
	return func(r *dataset.Record) bool {
		name := r.LowerName()
		for _, t := range tokens {
			if !strings.Contains(name, t) {
				return false
			}
		}
		return true
	}
}

// Search runs a name search and returns the matching records with the tokens that were used
func Search(records []*dataset.Record, query string) ([]*dataset.Record, []string, error) {
	tokens, err := NormalizeQuery(query)
	if err != nil {
		return nil, nil, err
	}
	return Filter(records, NameContainsAll(tokens)), tokens, nil
}
