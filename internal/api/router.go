package api

import (
	"time"

	"recipe-finder/internal/api/handlers"
	"recipe-finder/internal/api/handlers/health"
	recipeHandler "recipe-finder/internal/api/handlers/recipe"
	"recipe-finder/internal/api/middleware"
	"recipe-finder/internal/core/ai/cache"
	"recipe-finder/internal/core/ai/service"
	"recipe-finder/internal/core/airecipe"
	"recipe-finder/internal/core/recipe"
	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps services the router wires into handlers. AI, Generator, Cache and DB may be nil.
type Deps struct {
	Catalog   *recipe.Catalog
	AI        *service.Service
	Generator *airecipe.Generator
	Cache     cache.Store
	DB        *gorm.DB
}

// SetupRouter builds the gin engine
func SetupRouter(cfg *config.Config, deps Deps) *gin.Engine {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New(
		requestid.WithGenerator(common.GenerateUUID),
		requestid.WithHandler(middleware.RequestID),
	))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID", handlers.UserHeader},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if cfg.Server.MaxBodyBytes > 0 {
		router.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))
	}
	if cfg.Server.RequestTimeout > 0 {
		router.Use(middleware.Timeout(cfg.Server.RequestTimeout))
	}
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	healthHandler(cfg, deps).Register(router)

	recipeHandler.NewHandler(deps.Catalog).Register(router)

	ai := router.Group("/ai")
	{
		aiHandler := handlers.NewAIHandler(deps.Generator)
		dedup := middleware.NewDeduplicator(cfg.DedupWindow)
		ai.POST("/ask", dedup.Middleware(), aiHandler.Ask)
		ai.POST("/recipe-questions", dedup.Middleware(), aiHandler.RecipeQuestions)

		if deps.DB != nil {
			saved := handlers.NewSavedHandler(airecipe.NewStore(deps.DB))
			ai.POST("/recipes", dedup.Middleware(), saved.Save)
			ai.GET("/recipes", saved.List)
			ai.GET("/recipes/:id", saved.Get)
			ai.DELETE("/recipes/:id", saved.Delete)
		}
	}

	common.LogInfo("Router setup completed",
		zap.Bool("ai_enabled", deps.Generator != nil),
		zap.Bool("saved_recipes_enabled", deps.DB != nil),
		zap.Bool("rate_limit_enabled", cfg.RateLimit.Enabled),
		zap.Duration("request_timeout", cfg.Server.RequestTimeout),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
	)

	return router
}

func healthHandler(cfg *config.Config, deps Deps) *health.Handler {
	var opts []health.Option
	if deps.AI != nil {
		opts = append(opts, health.WithQueue(deps.AI))
	}
	if stats, ok := deps.Cache.(health.StatsReporter); ok {
		opts = append(opts, health.WithCache(stats))
	}
	if deps.DB != nil {
		opts = append(opts, health.WithDatabase(deps.DB))
	}
	return health.NewHandler(cfg.App.Version, deps.Catalog, opts...)
}
