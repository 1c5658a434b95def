package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/profitlens/backend-go/internal/api"
	"github.com/profitlens/backend-go/internal/cache"
	"github.com/profitlens/backend-go/internal/config"
	"github.com/profitlens/backend-go/internal/insight"
	"github.com/profitlens/backend-go/internal/metrics"
	"github.com/profitlens/backend-go/internal/repository/postgres"
	"github.com/profitlens/backend-go/internal/service"
	"github.com/profitlens/backend-go/internal/storage"
	"github.com/profitlens/backend-go/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	dashboardCache, err := cache.NewDashboardCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("cache unavailable, continuing without it")
		dashboardCache = cache.NewNoopDashboardCache()
	}

	store, err := storage.NewMinioClient(cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}

	productRepo := postgres.NewProductRepository(db)
	settingsRepo := postgres.NewSettingsRepository(db)

	productService := service.NewProductService(productRepo, settingsRepo, dashboardCache, cfg.App.DefaultProfitGoal)
	dashboardService := service.NewDashboardService(productRepo, settingsRepo, dashboardCache, metrics.NewAggregator(nil))

	var insightService *insight.Service
	if cfg.Gemini.APIKey != "" {
		insightService = insight.NewService(insight.NewGeminiClient(cfg.Gemini))
	} else {
		logger.Log.Warn().Msg("no Gemini API key configured, AI endpoints disabled")
	}

	services := &api.Services{
		Products:  productService,
		Dashboard: dashboardService,
		Insights:  insightService,
		Storage:   objectStorage(store),
	}

	router := api.NewRouter(services, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}

// objectStorage keeps a disabled store as a nil interface, not a nil
// pointer inside a non-nil interface.
func objectStorage(store *storage.MinioClient) storage.ObjectStorage {
	if store == nil {
		return nil
	}
	return store
}
