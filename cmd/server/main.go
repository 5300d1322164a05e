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

	"github.com/cypheredvortex/mern-social-media-sub000/internal/cache"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/repositories"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/router"
	"github.com/cypheredvortex/mern-social-media-sub000/pkg/config"
	"github.com/cypheredvortex/mern-social-media-sub000/pkg/logger"
	"github.com/cypheredvortex/mern-social-media-sub000/pkg/storage"
	"github.com/cypheredvortex/mern-social-media-sub000/validators"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := logger.Initialize(cfg.LogLevel, cfg.LogFile); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	if !cfg.EnvFileLoaded {
		logger.Log.Info("No .env file found, using environment variables")
	}
	if err := cfg.Validate(); err != nil {
		logger.Log.Fatal("Invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize databases", zap.Error(err))
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	deps := router.Dependencies{
		Stores:             repositories.NewStores(db.Database, db.SQL),
		JWTSecret:          cfg.JWTSecret,
		TokenTTL:           cfg.TokenTTL,
		CacheTTL:           cfg.CacheTTL,
		MaxUploadSize:      cfg.MaxUploadSize,
		FeedCandidateLimit: cfg.FeedCandidateLimit,
	}

	if cfg.RedisAddr != "" {
		redisCache, err := cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			logger.Log.Warn("Redis unavailable, user directory runs uncached", zap.Error(err))
		} else {
			defer redisCache.Close()
			deps.Cache = redisCache
		}
	}

	if cfg.MinioEnabled() {
		objects, err := storage.InitMinio(ctx, storage.Options{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
		})
		if err != nil {
			logger.Log.Fatal("Failed to initialize MinIO", zap.Error(err))
		}
		deps.Objects = objects
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()

	// Setup global middleware
	router.SetupMiddleware(e, cfg.JWTSecret)

	// Setup routes and dependencies
	router.SetupRoutes(e, deps)

	metricsServer := &http.Server{
		Addr:              ":" + cfg.MetricsPort,
		Handler:           promhttp.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("Metrics server stopped", zap.Error(err))
		}
	}()

	// Start server
	go func() {
		logger.Log.Info("Server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("Server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server shutdown failed", zap.Error(err))
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Metrics server shutdown failed", zap.Error(err))
	}
}
