package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"github.com/tripmap-microservice/internal/config"
	"github.com/tripmap-microservice/internal/delivery/http/handler"
	"github.com/tripmap-microservice/internal/delivery/http/middleware"
	"go.uber.org/zap"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	mapHandler   *handler.MapHandler
	placeHandler *handler.PlaceHandler
	tripHandler  *handler.TripHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	mapHandler *handler.MapHandler,
	placeHandler *handler.PlaceHandler,
	tripHandler *handler.TripHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Trip Map Microservice",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:          app,
		config:       cfg,
		logger:       logger,
		mapHandler:   mapHandler,
		placeHandler: placeHandler,
		tripHandler:  tripHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Map routes
	api.Get("/map/status", s.mapHandler.Status)
	api.Get("/trips/:id/map", s.mapHandler.RenderTrip)
	api.Post("/trips/:id/map/pins/:pin_id/click", s.mapHandler.ClickPin)

	// Snapshot stream (WebSocket)
	api.Use("/trips/:id/map/ws", handler.UpgradeRequired)
	api.Get("/trips/:id/map/ws", s.mapHandler.StreamSnapshots())

	// Place routes
	api.Get("/places/search", s.placeHandler.Search)
	api.Post("/places/resolve-click", s.placeHandler.ResolveClick)
	api.Post("/places/select", s.placeHandler.SelectResult)

	// Trip routes
	api.Post("/trips", s.tripHandler.CreateTrip)
	api.Get("/trips", s.tripHandler.ListTrips)
	api.Get("/trips/:id", s.tripHandler.GetTrip)
	api.Delete("/trips/:id", s.tripHandler.DeleteTrip)

	// Schedule routes
	api.Post("/trips/:id/schedules", s.tripHandler.CreateSchedule)
	api.Put("/schedules/:id", s.tripHandler.UpdateSchedule)
	api.Put("/schedules/:id/place", s.tripHandler.AttachPlace)
	api.Delete("/schedules/:id", s.tripHandler.DeleteSchedule)
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - кастомный обработчик ошибок
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "INTERNAL_SERVER_ERROR",
				"message": err.Error(),
			},
		})
	}
}
