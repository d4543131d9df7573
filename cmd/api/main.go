package main

// @title Trip Map Microservice API
// @version 1.0.0
// @description Микросервис рендеринга карты маршрута поездки. Строит оверлеи (маркеры, полилинии, попапы) по элементам маршрута, подбирает viewport по геометрии и отдаёт снапшоты хост-экранам.
// @description
// @description Основные возможности:
// @description - Рендер-проход карты поездки: маркеры с цветом дня/категории, полилинии по дням
// @description - Фильтрация по выбранному дню со стабильной нумерацией маркеров
// @description - Поиск мест и обратное геокодирование через Kakao Local API
// @description - WebSocket-стрим рендер-снапшотов
// @description - CRUD поездок и элементов маршрута

// @contact.name API Support
// @contact.email support@tripmap-microservice.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/tripmap-microservice/docs/swagger"
	"github.com/tripmap-microservice/internal/config"
	httpDelivery "github.com/tripmap-microservice/internal/delivery/http"
	"github.com/tripmap-microservice/internal/delivery/http/handler"
	"github.com/tripmap-microservice/internal/domain"
	"github.com/tripmap-microservice/internal/infrastructure/kakao"
	"github.com/tripmap-microservice/internal/pkg/logger"
	"github.com/tripmap-microservice/internal/provider"
	"github.com/tripmap-microservice/internal/repository/cache"
	"github.com/tripmap-microservice/internal/repository/postgres"
	redisRepo "github.com/tripmap-microservice/internal/repository/redis"
	"github.com/tripmap-microservice/internal/usecase"
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

	log.Info("Starting Trip Map Microservice")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
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

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}

	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize provider session
	// Без ключа Kakao провайдер карты недоступен: сессия переходит в
	// unavailable, рендер-запросы отвечают снапшотом-заглушкой
	placeRepo := kakao.NewKakaoClient(&cfg.Kakao, log)

	var runtime provider.Runtime
	if placeRepo != nil {
		runtime = provider.NewMemoryRuntime()
	} else {
		log.Warn("Kakao app key is not set, map provider is unavailable")
	}

	session := provider.NewSession(runtime, log)
	session.Initialize(context.Background())
	defer session.Close()

	// 7. Initialize Repositories
	itineraryRepo := postgres.NewItineraryRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)

	log.Info("Repositories initialized")

	// 8. Initialize Use Cases
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

	placeUC := usecase.NewPlaceSearchUseCase(
		placeRepo,
		cacheRepo,
		session,
		log,
		cfg.Cache.SearchCacheTTL,
	)
	defer placeUC.Close()

	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)

	itineraryUC := usecase.NewItineraryUseCase(
		itineraryRepo,
		cacheRepo,
		streamRepo,
		log,
	)

	log.Info("Use cases initialized")

	// 9. Initialize HTTP Handlers
	mapHandler := handler.NewMapHandler(renderUC, log)
	placeHandler := handler.NewPlaceHandler(placeUC, log)
	tripHandler := handler.NewTripHandler(itineraryUC, log)

	log.Info("HTTP handlers initialized")

	// 10. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		mapHandler,
		placeHandler,
		tripHandler,
	)

	log.Info("HTTP server initialized")

	// 11. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 12. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
