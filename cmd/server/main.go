package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	httpAdapter "github.com/Dexuser/property-service/internal/adapter/http"
	natsAdapter "github.com/Dexuser/property-service/internal/adapter/messaging/nats"
	"github.com/Dexuser/property-service/internal/adapter/repository/postgres"
	redisAdapter "github.com/Dexuser/property-service/internal/adapter/repository/redis"
	"github.com/Dexuser/property-service/internal/adapter/storage/s3"
	"github.com/Dexuser/property-service/internal/config"
	"github.com/Dexuser/property-service/internal/platform/logger"
	"github.com/Dexuser/property-service/internal/platform/metrics"
	"github.com/Dexuser/property-service/internal/property/domain"
	"github.com/Dexuser/property-service/internal/property/usecase"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const serviceName = "property_service"

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("INFO: .env file not found or error loading: %v. Relying on OS environment variables.\n", err)
	}

	appLogger := logger.NewLogger()
	appLogger.Info("Application starting...", zap.String("service_name", serviceName))

	cfg, err := config.LoadConfig(appLogger)
	if err != nil {
		appLogger.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := postgres.Connect(cfg.PostgresDSN, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}

	codeAllocator, err := redisAdapter.NewCodeAllocator(cfg.RedisAddress, cfg.RedisPassword, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize Redis code allocator", zap.Error(err))
	}
	defer func() {
		if err := codeAllocator.Close(); err != nil {
			appLogger.Error("Error closing Redis connection", zap.Error(err))
		}
	}()

	mediaStore, err := s3.NewMediaStore(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOBucket, cfg.MinIOUseSSL, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize MinIO media store", zap.Error(err))
	}

	var events usecase.EventPublisher
	if cfg.NATSURL != "" {
		natsPublisher, err := natsAdapter.NewPublisher(cfg.NATSURL, appLogger, cfg.ServiceName)
		if err != nil {
			appLogger.Fatal("Failed to connect to NATS", zap.Error(err))
		}
		defer natsPublisher.Close()
		events = natsAdapter.NewPropertyEvents(natsPublisher)
	} else {
		appLogger.Info("NATS_URL not set, lifecycle events disabled")
	}

	propertyUsecase := usecase.NewPropertyUsecase(usecase.Deps{
		Repo:         postgres.NewPropertyRepository(db, appLogger),
		Types:        postgres.NewCatalogRepository[domain.PropertyType](db, appLogger),
		SaleTypes:    postgres.NewCatalogRepository[domain.SaleType](db, appLogger),
		Improvements: postgres.NewCatalogRepository[domain.Improvement](db, appLogger),
		Media:        mediaStore,
		Codes:        codeAllocator,
		Agents:       postgres.NewAgentRepository(db, appLogger),
		Favorites:    postgres.NewFavoriteRepository(db, appLogger),
		Publisher:    events,
		Logger:       appLogger,
	})

	metricsManager := metrics.NewMetricsManager(serviceName)
	go func() {
		if err := metrics.StartMetricsServer(cfg.PrometheusMetricsPort, appLogger, metricsManager.Registry); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Metrics server failed", zap.Error(err))
		}
	}()

	handler := httpAdapter.NewPropertyHandler(propertyUsecase, metricsManager, appLogger)
	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: httpAdapter.NewRouter(handler),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		appLogger.Info("HTTP server listening", zap.String("port", cfg.HTTPPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutdown signal received, draining...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP server shutdown failed", zap.Error(err))
	}

	appLogger.Info("Application stopped")
}
