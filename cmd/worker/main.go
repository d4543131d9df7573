package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tripmap-microservice/internal/config"
	"github.com/tripmap-microservice/internal/domain"
	"github.com/tripmap-microservice/internal/pkg/logger"
	"github.com/tripmap-microservice/internal/provider"
	"github.com/tripmap-microservice/internal/repository/cache"
	"github.com/tripmap-microservice/internal/repository/postgres"
	redisRepo "github.com/tripmap-microservice/internal/repository/redis"
	"github.com/tripmap-microservice/internal/usecase"
	"github.com/tripmap-microservice/internal/worker"
	"github.com/tripmap-microservice/internal/worker/render"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Check if worker is enabled
	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Map Render Worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup))

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

	// 5. Initialize provider session (отдельная поверхность воркера,
	// прогрев снапшотов не трогает поверхности API-процесса)
	var runtime provider.Runtime
	if cfg.Kakao.AppKey != "" {
		runtime = provider.NewMemoryRuntime()
	} else {
		log.Warn("Kakao app key is not set, map provider is unavailable")
	}

	session := provider.NewSession(runtime, log)
	session.Initialize(context.Background())
	defer session.Close()

	// 6. Initialize repositories
	itineraryRepo := postgres.NewItineraryRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)

	// 7. Initialize use cases
	adapter := usecase.NewGeometryAdapter(log)
	renderUC := usecase.NewRenderUseCase(
		session,
		itineraryRepo,
		cacheRepo,
		adapter,
		log,
		cfg.Cache.SnapshotCacheTTL,
		domain.Coordinate{Lat: cfg.Map.DefaultCenterLat, Lon: cfg.Map.DefaultCenterLon},
		cfg.Map.DefaultZoomLevel,
	)

	// 8. Initialize workers
	renderWorker := render.NewRenderWorker(
		streamRepo,
		cacheRepo,
		renderUC,
		cfg.Worker.ConsumerGroup,
		log,
	)

	// 9. Create worker manager and register workers
	workerManager := worker.NewWorkerManager(log)
	workerManager.Register(renderWorker)

	// 10. Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	cancel()

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker stopped successfully")
}
