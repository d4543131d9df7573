package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/tripmap-microservice/internal/domain"
	"github.com/tripmap-microservice/internal/pkg/errors"
	"github.com/tripmap-microservice/internal/pkg/utils"
	"github.com/tripmap-microservice/internal/pkg/validator"
	"github.com/tripmap-microservice/internal/usecase"
	"github.com/tripmap-microservice/internal/usecase/dto"
	"go.uber.org/zap"
)

// TripHandler - обработчик CRUD поездок и элементов маршрута
type TripHandler struct {
	itineraryUC *usecase.ItineraryUseCase
	logger      *zap.Logger
}

// NewTripHandler - создание нового TripHandler
func NewTripHandler(itineraryUC *usecase.ItineraryUseCase, logger *zap.Logger) *TripHandler {
	return &TripHandler{
		itineraryUC: itineraryUC,
		logger:      logger,
	}
}

// CreateTrip godoc
// @Summary Создание поездки
// @Tags Trips
// @Accept json
// @Produce json
// @Param request body dto.CreateTripRequest true "Данные поездки"
// @Success 200 {object} utils.SuccessResponse{data=domain.Trip}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/trips [post]
func (h *TripHandler) CreateTrip(c *fiber.Ctx) error {
	var req dto.CreateTripRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	trip, err := h.itineraryUC.CreateTrip(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, trip, nil)
}

// GetTrip godoc
// @Summary Получение поездки с маршрутом
// @Tags Trips
// @Produce json
// @Param id path string true "ID поездки (UUID)"
// @Success 200 {object} utils.SuccessResponse{data=dto.TripResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/trips/{id} [get]
func (h *TripHandler) GetTrip(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	trip, err := h.itineraryUC.GetTrip(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, trip, nil)
}

// ListTrips godoc
// @Summary Список поездок
// @Tags Trips
// @Produce json
// @Param limit query int false "Максимальное количество" default(20)
// @Param offset query int false "Смещение" default(0)
// @Success 200 {object} utils.SuccessResponse{data=dto.TripListResponse}
// @Router /api/v1/trips [get]
func (h *TripHandler) ListTrips(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	result, err := h.itineraryUC.ListTrips(c.Context(), limit, offset)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{Total: result.Total})
}

// DeleteTrip godoc
// @Summary Удаление поездки
// @Tags Trips
// @Produce json
// @Param id path string true "ID поездки (UUID)"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/trips/{id} [delete]
func (h *TripHandler) DeleteTrip(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := h.itineraryUC.DeleteTrip(c.Context(), id); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{"deleted": true}, nil)
}

// CreateSchedule godoc
// @Summary Добавление элемента маршрута
// @Tags Schedules
// @Accept json
// @Produce json
// @Param id path string true "ID поездки (UUID)"
// @Param request body dto.CreateScheduleRequest true "Данные элемента"
// @Success 200 {object} utils.SuccessResponse{data=domain.ItineraryItem}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/trips/{id}/schedules [post]
func (h *TripHandler) CreateSchedule(c *fiber.Ctx) error {
	tripID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	var req dto.CreateScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	item, err := h.itineraryUC.CreateSchedule(c.Context(), tripID, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, item, nil)
}

// UpdateSchedule godoc
// @Summary Изменение элемента маршрута
// @Tags Schedules
// @Accept json
// @Produce json
// @Param id path string true "ID элемента (UUID)"
// @Param request body dto.UpdateScheduleRequest true "Данные элемента"
// @Success 200 {object} utils.SuccessResponse{data=domain.ItineraryItem}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/schedules/{id} [put]
func (h *TripHandler) UpdateSchedule(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	var req dto.UpdateScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	item, err := h.itineraryUC.UpdateSchedule(c.Context(), id, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, item, nil)
}

// AttachPlace godoc
// @Summary Привязка выбранного места к элементу маршрута
// @Description Записывает координату и адрес выбранного на карте места в элемент маршрута
// @Tags Schedules
// @Accept json
// @Produce json
// @Param id path string true "ID элемента (UUID)"
// @Param request body dto.SelectResultRequest true "Выбранное место"
// @Success 200 {object} utils.SuccessResponse{data=domain.ItineraryItem}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/schedules/{id}/place [put]
func (h *TripHandler) AttachPlace(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	var req dto.SelectResultRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	item, err := h.itineraryUC.AttachSelectedPlace(c.Context(), id, domain.SelectedPlace{
		Name:     req.Name,
		Address:  req.Address,
		Position: domain.Coordinate{Lat: req.Lat, Lon: req.Lon},
	})
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, item, nil)
}

// DeleteSchedule godoc
// @Summary Удаление элемента маршрута
// @Tags Schedules
// @Produce json
// @Param id path string true "ID элемента (UUID)"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/schedules/{id} [delete]
func (h *TripHandler) DeleteSchedule(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := h.itineraryUC.DeleteSchedule(c.Context(), id); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{"deleted": true}, nil)
}
