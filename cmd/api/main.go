package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recipe-finder/internal/api"
	"recipe-finder/internal/core/ai/cache"
	"recipe-finder/internal/core/ai/openrouter"
	"recipe-finder/internal/core/ai/provider"
	"recipe-finder/internal/core/ai/queue"
	"recipe-finder/internal/core/ai/service"
	"recipe-finder/internal/core/airecipe"
	"recipe-finder/internal/core/dataset"
	"recipe-finder/internal/core/recipe"
	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/infrastructure/database"
	"recipe-finder/internal/pkg/common"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo(common.MsgAppStarting,
		zap.String("version", cfg.App.Version),
		zap.String("env", cfg.App.Env),
		zap.Bool("debug", cfg.App.Debug),
	)

	catalog := loadCatalog(cfg)

	store := newCacheStore(cfg)

	var (
		aiService *service.Service
		generator *airecipe.Generator
	)
	if cfg.OpenRouter.Enabled {
		client := openrouter.NewClient(provider.Config{
			APIKey:    cfg.OpenRouter.APIKey,
			Model:     cfg.OpenRouter.Model,
			BaseURL:   cfg.OpenRouter.BaseURL,
			MaxTokens: cfg.OpenRouter.MaxTokens,
			Timeout:   cfg.OpenRouter.Timeout,
		})
		q := queue.NewManager(cfg.Queue, client)
		q.Start()
		aiService = service.NewService(client, q, store)
		generator = airecipe.NewGenerator(aiService)
		common.LogInfo("AI service initialized",
			zap.String("model", client.GetModel()),
			zap.Int("queue_workers", cfg.Queue.Workers),
			zap.Bool("cache_enabled", store != nil),
		)
	} else {
		common.LogWarn("OpenRouter disabled, AI routes will answer 503")
	}

	db := openDatabase(cfg)

	router := api.SetupRouter(cfg, api.Deps{
		Catalog:   catalog,
		AI:        aiService,
		Generator: generator,
		Cache:     store,
		DB:        db,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		common.LogInfo("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			common.LogFatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo(common.MsgShuttingDown)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown", zap.Error(err))
	}

	// the service owns the cache once AI is enabled
	if aiService != nil {
		if err := aiService.Close(); err != nil {
			common.LogWarn("AI service close failed", zap.Error(err))
		}
	} else if store != nil {
		if err := store.Close(); err != nil {
			common.LogWarn("Cache close failed", zap.Error(err))
		}
	}
	if db != nil {
		if err := database.Close(db); err != nil {
			common.LogWarn("Database close failed", zap.Error(err))
		}
	}

	common.LogInfo(common.MsgServerExited)
}

func loadCatalog(cfg *config.Config) *recipe.Catalog {
	records, err := dataset.Load(cfg.Dataset.RecipesPath)
	if err != nil {
		common.LogFatal("Failed to load recipe dataset", zap.Error(err))
	}

	var vocabulary []string
	if cfg.Dataset.IngredientsPath != "" {
		vocabulary, err = dataset.LoadVocabulary(cfg.Dataset.IngredientsPath)
		if err != nil {
			common.LogFatal("Failed to load ingredient list", zap.Error(err))
		}
	}

	return recipe.NewCatalog(dataset.NewSnapshot(records, vocabulary), recipe.Options{
		SimilarLimit:     cfg.Dataset.SimilarLimit,
		DefaultPageLimit: cfg.Dataset.DefaultPageLimit,
		MaxPageLimit:     cfg.Dataset.MaxPageLimit,
	})
}

func newCacheStore(cfg *config.Config) cache.Store {
	store, err := cache.NewStore(cfg)
	if err == nil {
		return store
	}
	common.LogWarn("Redis unavailable, falling back to in-process cache",
		zap.String("addr", cfg.Redis.Addr),
		zap.Error(err),
	)
	return cache.NewManager(cfg.Cache)
}

func openDatabase(cfg *config.Config) *gorm.DB {
	db, err := database.Open(cfg.Database)
	if err != nil {
		common.LogWarn("Database unavailable, saved recipes disabled", zap.Error(err))
		return nil
	}
	if err := database.Migrate(db, &airecipe.SavedRecipe{}); err != nil {
		common.LogWarn("Database migration failed, saved recipes disabled", zap.Error(err))
		_ = database.Close(db)
		return nil
	}
	return db
}
