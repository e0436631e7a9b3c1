package recipe

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"recipe-finder/internal/core/dataset"
	"recipe-finder/internal/pkg/common"

	"go.uber.org/zap"
)

// Options catalog limits
type Options struct {
	SimilarLimit     int
	DefaultPageLimit int
	MaxPageLimit     int
	// Seed for the random similar-recipe fallback; zero seeds from the clock.
	Seed int64
}

// Page one page of results together with the unpaginated count
type Page[T any] struct {
	Items []T
	Total int
	Page  int
	Limit int
}

// SearchPage a page of name-search results
type SearchPage struct {
	Page[*dataset.Record]
	Query  string
	Tokens []string
}

// Catalog read-only queries over the loaded snapshot. Safe for concurrent use.
type Catalog struct {
	snap *dataset.Snapshot
	opts Options
	rng  *rand.Rand
}

// NewCatalog wraps snap
func NewCatalog(snap *dataset.Snapshot, opts Options) *Catalog {
	if opts.SimilarLimit <= 0 {
		opts.SimilarLimit = DefaultSimilarLimit
	}
	if opts.DefaultPageLimit <= 0 {
		opts.DefaultPageLimit = 20
	}
	if opts.MaxPageLimit <= 0 {
		opts.MaxPageLimit = 100
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Catalog{
		snap: snap,
		opts: opts,
		rng:  rand.New(&lockedSource{src: rand.NewSource(seed)}),
	}
}

// lockedSource rand.Source shared between request goroutines
type lockedSource struct {
	mu  sync.Mutex
	src rand.Source
}

func (s *lockedSource) Int63() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Int63()
}

func (s *lockedSource) Seed(seed int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.src.Seed(seed)
}

func (c *Catalog) Len() int              { return c.snap.Len() }
func (c *Catalog) Cuisines() []string    { return c.snap.Cuisines() }
func (c *Catalog) Courses() []string     { return c.snap.Courses() }
func (c *Catalog) Diets() []string       { return c.snap.Diets() }
func (c *Catalog) Ingredients() []string { return c.snap.Ingredients() }

// DefaultPageLimit limit used when the client sends none
func (c *Catalog) DefaultPageLimit() int { return c.opts.DefaultPageLimit }

// Browse filters by category and returns one page of complete records
func (c *Catalog) Browse(filter FilterSpec, req PageRequest) (*Page[*dataset.Record], error) {
	req, err := req.Validate(c.opts.MaxPageLimit)
	if err != nil {
		return nil, err
	}
	preds := append(filter.Predicates(), Projectable)
	return paginate(Filter(c.snap.Records(), preds...), req), nil
}

// Get exact case-insensitive lookup by name
func (c *Catalog) Get(name string) (*dataset.Record, error) {
	q := strings.ToLower(strings.TrimSpace(name))
	if q == "" {
		return nil, common.NewInvalidInput("recipe name required")
	}
	for _, r := range c.snap.Records() {
		if r.LowerName() == q {
			return r, nil
		}
	}
	return nil, common.NewNotFound("recipe not found")
}

// Search name search narrowed by the same category filters as Browse
func (c *Catalog) Search(query string, filter FilterSpec, req PageRequest) (*SearchPage, error) {
	req, err := req.Validate(c.opts.MaxPageLimit)
	if err != nil {
		return nil, err
	}
	tokens, err := NormalizeQuery(query)
	if err != nil {
		return nil, err
	}

	preds := append(filter.Predicates(), NameContainsAll(tokens), Projectable)
	matched := Filter(c.snap.Records(), preds...)

	common.LogDebug("Recipe search",
		zap.String("query", query),
		zap.Strings("tokens", tokens),
		zap.Int("matched", len(matched)),
	)
	return &SearchPage{
		Page:   *paginate(matched, req),
		Query:  strings.ToLower(strings.TrimSpace(query)),
		Tokens: tokens,
	}, nil
}

// MatchIngredients ranks recipes by ingredient coverage and returns one page
func (c *Catalog) MatchIngredients(ingredients []string, req PageRequest) (*Page[MatchResult], error) {
	req, err := req.Validate(c.opts.MaxPageLimit)
	if err != nil {
		return nil, err
	}
	results, err := MatchByIngredients(c.snap.Records(), ingredients)
	if err != nil {
		return nil, err
	}

	complete := results[:0:0]
	for _, m := range results {
		if m.Record.Complete() {
			complete = append(complete, m)
		}
	}
	return paginate(complete, req), nil
}

// Similar recipes for the named target
func (c *Catalog) Similar(name string) (*SimilarResult, error) {
	return FindSimilar(c.snap.Records(), name, c.opts.SimilarLimit, c.rng)
}

func paginate[T any](items []T, req PageRequest) *Page[T] {
	slice, total := Paginate(items, req.Page, req.Limit)
	return &Page[T]{Items: slice, Total: total, Page: req.Page, Limit: req.Limit}
}
