package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/parking-microservice/internal/config"
	"github.com/parking-microservice/internal/infrastructure/mosdata"
	"github.com/parking-microservice/internal/pkg/logger"
	"github.com/parking-microservice/internal/repository/cache"
	"github.com/parking-microservice/internal/repository/postgres"
	"github.com/parking-microservice/internal/usecase"
	"github.com/parking-microservice/internal/worker"
	syncWorker "github.com/parking-microservice/internal/worker/sync"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Check if worker is enabled
	if !cfg.Sync.WorkerEnabled {
		fmt.Println("Sync worker is disabled in configuration. Set SYNC_WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Parking Sync Worker")
	log.Info("Configuration loaded",
		zap.Duration("sync_interval", cfg.Sync.Interval),
		zap.Duration("sync_timeout", cfg.Sync.Timeout),
		zap.String("source_url", cfg.DataSource.URL))

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

	// Schema must exist before the first sync run
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := db.EnsureSchema(ctx); err != nil {
		cancel()
		log.Fatal("Failed to ensure database schema", zap.Error(err))
	}
	cancel()

	// 5. Initialize repositories
	parkingRepo := postgres.NewParkingRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	parkingSource := mosdata.NewClient(&cfg.DataSource, log)

	// 6. Initialize use cases
	syncUC := usecase.NewSyncUseCase(
		parkingRepo,
		parkingSource,
		cacheRepo,
		log,
		cfg.Sync.Timeout,
	)

	// 7. Initialize workers
	parkingSyncWorker := syncWorker.NewWorker(
		syncUC,
		cfg.Sync.Interval,
		log,
	)

	// 8. Create worker manager and register workers
	workerManager := worker.NewManager(log)
	workerManager.Register(parkingSyncWorker)

	// 9. Setup graceful shutdown
	runCtx, runCancel := context.WithCancel(context.Background())
	defer runCancel()

	// Start workers
	if err := workerManager.Start(runCtx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	// Cancel context to stop workers
	runCancel()

	// Stop worker manager
	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
