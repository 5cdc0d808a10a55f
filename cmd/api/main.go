package main

// @title Parking Microservice API
// @version 1.0.0
// @description Микросервис для работы с данными о парковках Москвы из портала открытых данных. Предоставляет API для поиска парковок по координатам, названию и номеру (литере), а также синхронизацию данных с внешним источником.
// @description
// @description Основные возможности:
// @description - Поиск парковок в радиусе от точки с сортировкой по расстоянию
// @description - Текстовый поиск по русскому и английскому названию
// @description - Точный поиск по номеру парковки (литере)
// @description - Синхронизация данных с порталом открытых данных Москвы

// @contact.name API Support
// @contact.email support@parking-microservice.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:3847
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/parking-microservice/docs"
	"github.com/parking-microservice/internal/config"
	httpDelivery "github.com/parking-microservice/internal/delivery/http"
	"github.com/parking-microservice/internal/delivery/http/handler"
	"github.com/parking-microservice/internal/infrastructure/mosdata"
	"github.com/parking-microservice/internal/pkg/logger"
	"github.com/parking-microservice/internal/repository/cache"
	"github.com/parking-microservice/internal/repository/postgres"
	"github.com/parking-microservice/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Parking Microservice")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("source_url", cfg.DataSource.URL),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()
	log.Info("PostgreSQL connected")

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()
	log.Info("Redis connected")

	// 5. Health checks and schema
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}

	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	if err := db.EnsureSchema(ctx); err != nil {
		log.Fatal("Failed to ensure database schema", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize Repositories
	parkingRepo := postgres.NewParkingRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	parkingSource := mosdata.NewClient(&cfg.DataSource, log)

	log.Info("Repositories initialized")

	// 7. Initialize Use Cases
	searchUC := usecase.NewSearchUseCase(
		parkingRepo,
		cacheRepo,
		log,
		cfg.Cache.SearchCacheTTL,
		cfg.Sync.DefaultLimit,
	)

	syncUC := usecase.NewSyncUseCase(
		parkingRepo,
		parkingSource,
		cacheRepo,
		log,
		cfg.Sync.Timeout,
	)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP Handlers
	parkingHandler := handler.NewParkingHandler(searchUC, log)
	syncHandler := handler.NewSyncHandler(syncUC, log)

	log.Info("HTTP handlers initialized")

	// 9. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		parkingHandler,
		syncHandler,
	)

	log.Info("HTTP server initialized")

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if err := db.Close(); err != nil {
		log.Error("Failed to close database", zap.Error(err))
	}

	if err := redisClient.Close(); err != nil {
		log.Error("Failed to close Redis", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
