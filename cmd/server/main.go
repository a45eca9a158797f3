package main

import (
	"alcyxob/fitness-catalog/internal/api"
	"alcyxob/fitness-catalog/internal/catalog"
	"alcyxob/fitness-catalog/internal/config"
	"alcyxob/fitness-catalog/internal/repository/mongo"
	"alcyxob/fitness-catalog/internal/service"
	"alcyxob/fitness-catalog/internal/storage"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

const dbOperationTimeout = 10 * time.Second

// @title Exercise Catalog API
// @version 1.0
// @description Exercise catalog and program slot resolution.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("could not load config", "error", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Log, os.Stdout)
	if cfg.JWT.Secret == "" {
		logger.Error("jwt.secret is required")
		os.Exit(1)
	}
	logger.Info("configuration loaded", "address", cfg.Server.Address, "database", cfg.Database.Name, "snapshots", cfg.S3.Enabled)

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI, dbOperationTimeout)
	if err != nil {
		logger.Error("invalid MongoDB configuration", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := mongo.DisconnectDB(dbClient); err != nil {
			logger.Error("failed to disconnect MongoDB", "error", err)
		}
	}()
	// The catalog falls back when the store is down, so an unreachable server is not fatal.
	if err := mongo.Ping(dbClient); err != nil {
		logger.Warn("MongoDB not reachable at startup", "error", err)
	}
	appDB := dbClient.Database(cfg.Database.Name)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		mongo.EnsureIndexes(ctx, appDB)
		logger.Info("index creation process completed")
	}()

	// --- Catalog ---
	gateway := catalog.NewGateway(mongo.NewMongoExerciseRowRepository(appDB), catalog.GatewayConfig{
		PageSize: cfg.Catalog.PageSize,
		Logger:   logger,
	})
	cacheCfg := catalog.CacheConfig{
		StalenessWindow: cfg.Catalog.StalenessWindow,
		LoadTimeout:     cfg.Catalog.LoadTimeout,
		Logger:          logger,
	}
	if cfg.S3.Enabled {
		snapshots, err := storage.NewS3SnapshotStorage(context.Background(), cfg.S3)
		if err != nil {
			logger.Error("failed to initialize snapshot storage", "error", err)
			os.Exit(1)
		}
		cacheCfg.Snapshots = snapshots
	}
	cache := catalog.NewCache(gateway, catalog.MustLoadBundled(), cacheCfg)

	initCtx, cancelInit := context.WithTimeout(context.Background(), cfg.Catalog.LoadTimeout+5*time.Second)
	if err := cache.Initialize(initCtx); err != nil {
		logger.Warn("catalog not loaded at startup", "error", err)
	}
	cancelInit()
	st := cache.Status()
	logger.Info("catalog ready", "source", st.Source, "count", st.Count)

	if cfg.Catalog.RefreshSchedule != "" {
		scheduler, err := catalog.ScheduleRefresh(cache, cfg.Catalog.RefreshSchedule, logger)
		if err != nil {
			logger.Error("invalid catalog refresh schedule", "error", err)
			os.Exit(1)
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	// --- Services ---
	exerciseService := service.NewExerciseService(gateway, cache, logger)
	slotService := service.NewSlotService(cache, mongo.NewMongoSelectionRepository(appDB), logger)

	// --- HTTP ---
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), api.RequestIDMiddleware(), api.LoggerMiddleware(logger))
	api.SetupRoutes(router, cfg.JWT.Secret, exerciseService, slotService, cache)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.Catalog.LoadTimeout + 10*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("server starting", "address", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}
	logger.Info("server exiting")
}
