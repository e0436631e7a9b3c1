package recipe

import (
	"fmt"

	"recipe-finder/internal/pkg/common"
)

// Paginate returns the 1-indexed page of items and the unpaginated count.
// A page past the end is empty, not an error.
func Paginate[T any](items []T, page, limit int) ([]T, int) {
	total := len(items)
	if page < 1 || limit < 1 {
		return []T{}, total
	}
	// compare page counts before multiplying so huge values cannot overflow
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	if page > pages {
		return []T{}, total
	}
	start := (page - 1) * limit
	end := total
	if limit < total-start {
		end = start + limit
	}
	return items[start:end], total
}

// PageRequest page and limit as received from the client
type PageRequest struct {
	Page  int
	Limit int
}

// Validate rejects non-positive values and caps the limit at max
func (p PageRequest) Validate(max int) (PageRequest, error) {
	if p.Page < 1 {
		return p, common.NewInvalidInput(fmt.Sprintf("page must be >= 1, got %d", p.Page))
	}
	if p.Limit < 1 {
		return p, common.NewInvalidInput(fmt.Sprintf("limit must be >= 1, got %d", p.Limit))
	}
	if max > 0 && p.Limit > max {
		p.Limit = max
	}
	return p, nil
}
