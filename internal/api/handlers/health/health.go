package health

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"recipe-finder/internal/core/ai/queue"
	"recipe-finder/internal/core/recipe"
	"recipe-finder/internal/infrastructure/database"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Response health check body
type Response struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Recipes   int                    `json:"recipes"`
	Runtime   map[string]interface{} `json:"runtime"`
	Queue     *queue.Status          `json:"queue,omitempty"`
	Cache     map[string]interface{} `json:"cache,omitempty"`
}

// QueueReporter reports AI queue state
type QueueReporter interface {
	QueueStatus() queue.Status
}

// StatsReporter reports cache statistics
type StatsReporter interface {
	GetStats() map[string]interface{}
}

// Handler health, readiness and liveness probes
type Handler struct {
	version string
	catalog *recipe.Catalog
	queue   QueueReporter
	cache   StatsReporter
	db      *gorm.DB
}

// Option optional probe dependency
type Option func(*Handler)

// WithQueue reports AI queue status
func WithQueue(q QueueReporter) Option { return func(h *Handler) { h.queue = q } }

// WithCache reports cache statistics
func WithCache(s StatsReporter) Option { return func(h *Handler) { h.cache = s } }

// WithDatabase adds a DB ping to readiness
func WithDatabase(db *gorm.DB) Option { return func(h *Handler) { h.db = db } }

// NewHandler creates the probe handler
func NewHandler(version string, catalog *recipe.Catalog, opts ...Option) *Handler {
	h := &Handler{version: version, catalog: catalog}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts /health, /ready and /live
func (h *Handler) Register(r gin.IRoutes) {
	r.GET("/health", h.Health)
	r.GET("/ready", h.Ready)
	r.GET("/live", h.Live)
}

// Health GET /health
func (h *Handler) Health(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	resp := Response{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   h.version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
	}
	if h.catalog != nil {
		resp.Recipes = h.catalog.Len()
	}
	if h.queue != nil {
		status := h.queue.QueueStatus()
		resp.Queue = &status
	}
	if h.cache != nil {
		resp.Cache = h.cache.GetStats()
	}

	c.JSON(http.StatusOK, resp)
}

// Ready GET /ready
func (h *Handler) Ready(c *gin.Context) {
	checks := gin.H{}
	ready := true

	if h.catalog == nil || h.catalog.Len() == 0 {
		checks["dataset"] = "empty"
		ready = false
	} else {
		checks["dataset"] = "ok"
	}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := database.HealthCheck(ctx, h.db); err != nil {
			checks["database"] = err.Error()
			ready = false
		} else {
			checks["database"] = "ok"
		}
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "checks": checks})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "checks": checks})
}

// Live GET /live
func (h *Handler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}
