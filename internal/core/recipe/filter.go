package recipe

import (
	"strings"

	"recipe-finder/internal/core/dataset"
)

// Predicate one filter condition over a record
type Predicate func(*dataset.Record) bool

// FilterSpec categorical filters. Values within a dimension are ORed, dimensions are ANDed.
// An empty dimension places no constraint.
type FilterSpec struct {
	Cuisines []string `json:"cuisine"`
	Courses  []string `json:"course"`
	Diets    []string `json:"diet"`
}

// IsEmpty reports whether no dimension carries a value
func (f FilterSpec) IsEmpty() bool {
	return len(f.Predicates()) == 0
}

// Predicates one predicate per non-empty dimension
func (f FilterSpec) Predicates() []Predicate {
	var preds []Predicate
	if p := oneOf(f.Cuisines, func(r *dataset.Record) string { return r.Cuisine }); p != nil {
		preds = append(preds, p)
	}
	if p := oneOf(f.Courses, func(r *dataset.Record) string { return r.Course }); p != nil {
		preds = append(preds, p)
	}
	if p := oneOf(f.Diets, func(r *dataset.Record) string { return r.Diet }); p != nil {
		preds = append(preds, p)
	}
	return preds
}

func oneOf(values []string, field func(*dataset.Record) string) Predicate {
	allowed := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			allowed[v] = struct{}{}
		}
	}
	if len(allowed) == 0 {
		return nil
	}
	return func(r *dataset.Record) bool {
		_, ok := allowed[strings.ToLower(strings.TrimSpace(field(r)))]
		return ok
	}
}

// Filter keeps the records that satisfy every predicate, in source order
func Filter(records []*dataset.Record, preds ...Predicate) []*dataset.Record {
	out := make([]*dataset.Record, 0, len(records))
next:
	for _, r := range records {
		for _, p := range preds {
			if !p(r) {
				continue next
			}
		}
		out = append(out, r)
	}
	return out
}

// Projectable drops records lacking any field of the list projection
var Projectable Predicate = (*dataset.Record).Complete
