package dataset

import (
	"sort"
	"strings"
)

// Snapshot the read-only recipe table shared by all requests
type Snapshot struct {
	records     []*Record
	cuisines    []string
	courses     []string
	diets       []string
	ingredients []string
}

// NewSnapshot indexes records; vocabulary may be nil
func NewSnapshot(records []*Record, vocabulary []string) *Snapshot {
	return &Snapshot{
		records:     records,
		cuisines:    distinct(records, func(r *Record) string { return r.Cuisine }),
		courses:     distinct(records, func(r *Record) string { return r.Course }),
		diets:       distinct(records, func(r *Record) string { return r.Diet }),
		ingredients: vocabulary,
	}
}

func distinct(records []*Record, get func(*Record) string) []string {
	seen := make(map[string]struct{})
	values := make([]string, 0)
	for _, r := range records {
		v := strings.TrimSpace(get(r))
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

// Records all rows in source order. Callers must not modify the slice.
func (s *Snapshot) Records() []*Record { return s.records }

// Len number of rows
func (s *Snapshot) Len() int { return len(s.records) }

// Cuisines sorted unique cuisine values
func (s *Snapshot) Cuisines() []string { return s.cuisines }

// Courses sorted unique course values
func (s *Snapshot) Courses() []string { return s.courses }

// Diets sorted unique diet values
func (s *Snapshot) Diets() []string { return s.diets }

// Ingredients vocabulary in file order
func (s *Snapshot) Ingredients() []string {
	if s.ingredients == nil {
		return []string{}
	}
	return s.ingredients
}
