package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"candidatehub-backend/config"
	_ "candidatehub-backend/docs" // Important for Swagger
	"candidatehub-backend/internal/cache"
	"candidatehub-backend/internal/delivery/http/middleware"
	v1 "candidatehub-backend/internal/delivery/http/v1"
	"candidatehub-backend/internal/domain"
	"candidatehub-backend/internal/repository/postgres"
	"candidatehub-backend/internal/usecase"
	"candidatehub-backend/pkg/database"
	"candidatehub-backend/pkg/logger"
	"candidatehub-backend/pkg/redis"
	"candidatehub-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// @title           CandidateHub API
// @version         1.0
// @description     Candidate records keyed by email, with read-through caching.
// @host            localhost:8080
// @BasePath        /
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	zl, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()
	zl.Info("Starting candidatehub backend", zap.String("port", cfg.Port))

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}

	ctx := context.Background()

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl, database.PoolConfig{})
	if err != nil {
		zl.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer dbPool.Close()

	// 4. Setup Cache (Redis when configured, otherwise in-process)
	var (
		candidateCache domain.Cache
		redisClient    *goredis.Client
	)
	if cfg.RedisURL != "" {
		redisClient, err = redis.NewClient(ctx, redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword})
		if err != nil {
			zl.Warn("Redis unavailable, falling back to in-memory cache", zap.Error(err))
		}
	}
	if redisClient != nil {
		defer redisClient.Close()
		candidateCache = cache.NewRedisCache(redisClient, "candidatehub:")
	} else {
		mem := cache.NewMemoryCache(time.Minute)
		defer mem.Close()
		candidateCache = mem
	}

	// 5. Setup UseCases
	uowFactory := postgres.NewUnitOfWorkFactory(dbPool, zl.Named("uow"))
	candidateUC := usecase.NewCandidateUsecase(uowFactory, candidateCache, validation.New(), zl.Named("candidate"), usecase.CacheTTLs{
		Candidate:     cfg.CandidateCacheTTL,
		CandidateList: cfg.CandidateListCacheTTL,
	})

	checks := map[string]domain.HealthCheck{
		"database": dbPool.Ping,
	}
	if redisClient != nil {
		checks["cache"] = func(ctx context.Context) error { return redis.HealthCheck(ctx, redisClient) }
	}
	healthUC := usecase.NewHealthUsecase(checks)

	var limiter *middleware.RateLimiter
	if cfg.RateLimitPerMinute > 0 {
		limiter = middleware.NewRateLimiter(middleware.RateLimitConfig{
			Limit:     cfg.RateLimitPerMinute,
			Window:    time.Minute,
			KeyPrefix: "candidatehub:rl:write:",
		}, redisClient, zl.Named("ratelimit"))
	}

	// 6. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		CandidateUC: candidateUC,
		HealthUC:    healthUC,
		RateLimiter: limiter,
		Config:      cfg,
		Logger:      zl.Named("http"),
	})

	// 7. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("Listen failed", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zl.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("Server forced to shutdown", zap.Error(err))
	}

	zl.Info("Server exiting")
}
