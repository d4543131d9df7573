package handler

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"github.com/tripmap-microservice/internal/pkg/errors"
	"github.com/tripmap-microservice/internal/pkg/utils"
	"github.com/tripmap-microservice/internal/usecase"
	"github.com/tripmap-microservice/internal/usecase/dto"
	"go.uber.org/zap"
)

// snapshotPushInterval - период отправки снапшотов по WebSocket
const snapshotPushInterval = 2 * time.Second

// MapHandler - обработчик для рендеринга карты поездки
type MapHandler struct {
	renderUC *usecase.RenderUseCase
	logger   *zap.Logger
}

// NewMapHandler - создание нового MapHandler
func NewMapHandler(renderUC *usecase.RenderUseCase, logger *zap.Logger) *MapHandler {
	return &MapHandler{
		renderUC: renderUC,
		logger:   logger,
	}
}

// Status godoc
// @Summary Состояние сессии провайдера карты
// @Description Возвращает текущее состояние сессии (uninitialized, loading, ready, unavailable) и флаг готовности к рендерингу
// @Tags Map
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.MapStatusResponse}
// @Router /api/v1/map/status [get]
func (h *MapHandler) Status(c *fiber.Ctx) error {
	return utils.SendSuccess(c, h.renderUC.Status(), nil)
}

// RenderTrip godoc
// @Summary Рендеринг карты поездки
// @Description Выполняет рендер-проход для маршрута поездки: маркеры с цветом дня/категории, полилинии по дням, viewport по геометрии. При недоступном провайдере или пустой геометрии возвращает снапшот-заглушку.
// @Tags Map
// @Produce json
// @Param id path string true "ID поездки (UUID)"
// @Param day query int false "Выбранный день (0 = все дни)" default(0)
// @Param route query bool false "Показывать полилинии маршрута" default(false)
// @Success 200 {object} utils.SuccessResponse{data=dto.MapRenderResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/trips/{id}/map [get]
func (h *MapHandler) RenderTrip(c *fiber.Ctx) error {
	tripID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	selectedDay := c.QueryInt("day", 0)
	if selectedDay < 0 {
		return utils.SendError(c, errors.ErrInvalidDayNumber)
	}
	showRoute := c.QueryBool("route", false)

	snapshot, err := h.renderUC.RenderTrip(c.Context(), tripID, selectedDay, showRoute)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.MapRenderResponse{
		TripID:      tripID,
		SelectedDay: selectedDay,
		ShowRoute:   showRoute,
		Snapshot:    snapshot,
	}, nil)
}

// ClickPin godoc
// @Summary Клик по маркеру
// @Description Открывает попап над маркером; попап закрывается автоматически через 3 секунды
// @Tags Map
// @Produce json
// @Param id path string true "ID поездки (UUID)"
// @Param pin_id path string true "ID маркера"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/trips/{id}/map/pins/{pin_id}/click [post]
func (h *MapHandler) ClickPin(c *fiber.Ctx) error {
	tripID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := h.renderUC.ClickPin(tripID, c.Params("pin_id")); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{"opened": true}, nil)
}

// StreamSnapshots - WebSocket-стрим снапшотов карты поездки. Хост получает
// актуальный снапшот раз в snapshotPushInterval и может следить за
// состоянием рендеринга без поллинга.
func (h *MapHandler) StreamSnapshots() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		defer conn.Close()

		tripID, err := uuid.Parse(conn.Params("id"))
		if err != nil {
			h.logger.Warn("WebSocket: invalid trip id", zap.String("id", conn.Params("id")))
			return
		}

		selectedDay := 0
		if day, err := strconv.Atoi(conn.Query("day", "0")); err == nil && day >= 0 {
			selectedDay = day
		}
		showRoute := conn.Query("route", "false") == "true"

		ticker := time.NewTicker(snapshotPushInterval)
		defer ticker.Stop()

		// Канал закрытия: читаем входящие фреймы, чтобы заметить закрытие
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			snapshot, err := h.renderUC.RenderTrip(context.Background(), tripID, selectedDay, showRoute)
			if err != nil {
				h.logger.Warn("WebSocket: render failed",
					zap.String("trip_id", tripID.String()),
					zap.Error(err))
				return
			}

			payload, err := json.Marshal(dto.MapRenderResponse{
				TripID:      tripID,
				SelectedDay: selectedDay,
				ShowRoute:   showRoute,
				Snapshot:    snapshot,
			})
			if err != nil {
				return
			}

			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

			select {
			case <-done:
				return
			case <-ticker.C:
			}
		}
	})
}

// UpgradeRequired - пропускает только WebSocket-запросы на WS-маршруты
func UpgradeRequired(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}
