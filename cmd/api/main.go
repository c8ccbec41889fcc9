package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/vegfinder/backend/config"
	"github.com/pageza/vegfinder/backend/internal/api"
	"github.com/pageza/vegfinder/backend/internal/cache"
	"github.com/pageza/vegfinder/backend/internal/catalog"
	"github.com/pageza/vegfinder/backend/internal/database"
	"github.com/pageza/vegfinder/backend/internal/dataset"
	"github.com/pageza/vegfinder/backend/internal/logger"
	"github.com/pageza/vegfinder/backend/internal/middleware"
	"github.com/pageza/vegfinder/backend/internal/router"
	"github.com/pageza/vegfinder/backend/internal/server"
	"github.com/pageza/vegfinder/backend/internal/service"
	"github.com/pageza/vegfinder/backend/internal/view"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logger.Init(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	checks := map[string]api.Pinger{}

	// The database is only needed when recipes were imported into it
	var db *gorm.DB
	if cfg.DatasetSource == config.DatasetSourceDatabase {
		db, err = database.New(cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to database")
		}
		checks["database"] = func(ctx context.Context) error { return database.HealthCheck(ctx, db) }
	}

	var store dataset.ObjectOpener
	if cfg.DatasetSource == config.DatasetSourceS3 {
		s3cfg, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to configure S3")
		}
		store = s3cfg
	}

	source, err := dataset.NewSource(cfg, db, store)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to select dataset source")
	}

	loadCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	recipes, err := source.Load(loadCtx)
	cancel()
	if err != nil {
		logger.Fatal().Err(err).Str("source", cfg.DatasetSource).Msg("Failed to load recipes")
	}

	cat := catalog.New(recipes)
	logger.Info().
		Int("rows", len(recipes)).
		Int("vegetarian", cat.Len()).
		Str("version", cat.Version()).
		Msg("Recipe catalog ready")

	// Redis backs the result cache and the rate limiter. Both are optional.
	var (
		resultCache service.RecipeCache
		breaker     *cache.BreakerCache
		limiter     gin.HandlerFunc
		redisClient *redis.Client
	)
	if cfg.RedisEnabled() {
		redisClient, err = database.NewRedisClient(cfg)
		if err != nil {
			logger.Warn().Err(err).Msg("Redis unavailable, running without cache and rate limiting")
		} else {
			breaker = cache.NewBreakerCache(cache.NewRedisCache(redisClient, cfg.CacheTTL), cache.DefaultBreakerSettings())
			resultCache = breaker
			if cfg.RateLimitPerMinute > 0 {
				limiter = middleware.NewSearchRateLimiter(redisClient, cfg.RateLimitPerMinute).RateLimitMiddleware()
			}
			checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
		}
	}

	recipeService := service.NewRecipeService(cat, resultCache)

	renderer, err := view.NewRenderer()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load templates")
	}

	health := api.NewHealthHandler(recipeService.CatalogSize, checks)
	if breaker != nil {
		health.ReportState("cache_breaker", breaker.Status)
	}

	engine := router.SetupRouter(router.Options{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		Handlers: api.Handlers{
			Recipe: api.NewRecipeHandler(recipeService, limiter),
			Health: health,
			UI:     api.NewUIHandler(recipeService, renderer, cfg.UIPageSize, limiter),
		},
	})

	srv := server.New(cfg, engine)
	if err := srv.Start(ctx); err != nil {
		logger.Error().Err(err).Msg("Server error")
	}

	if redisClient != nil {
		_ = redisClient.Close()
	}
	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	logger.Info().Msg("Server stopped")
}
