package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tripmap-microservice/internal/domain"
	"github.com/tripmap-microservice/internal/pkg/errors"
	"github.com/tripmap-microservice/internal/pkg/utils"
	"github.com/tripmap-microservice/internal/pkg/validator"
	"github.com/tripmap-microservice/internal/usecase"
	"github.com/tripmap-microservice/internal/usecase/dto"
	"go.uber.org/zap"
)

// PlaceHandler - обработчик поиска и выбора мест
type PlaceHandler struct {
	placeUC *usecase.PlaceSearchUseCase
	logger  *zap.Logger
}

// NewPlaceHandler - создание нового PlaceHandler
func NewPlaceHandler(placeUC *usecase.PlaceSearchUseCase, logger *zap.Logger) *PlaceHandler {
	return &PlaceHandler{
		placeUC: placeUC,
		logger:  logger,
	}
}

// Search godoc
// @Summary Поиск мест по ключевому слову
// @Description Ищет места через внешний геосервис. Подсказка (hint) добавляется к запросу для привязки к региону назначения. Возвращает не более 5 результатов; при ошибке внешнего сервиса - пустой список.
// @Tags Places
// @Produce json
// @Param q query string true "Ключевое слово"
// @Param hint query string false "Регион назначения для уточнения"
// @Success 200 {object} utils.SuccessResponse{data=dto.PlaceSearchResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/places/search [get]
func (h *PlaceHandler) Search(c *fiber.Ctx) error {
	var req dto.PlaceSearchRequest
	req.Keyword = c.Query("q")
	req.Hint = c.Query("hint")

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	results := h.placeUC.SearchByKeyword(c.Context(), req.Keyword, req.Hint)

	return utils.SendSuccess(c, dto.PlaceSearchResponse{
		Results: results,
		Total:   len(results),
	}, &utils.Meta{Total: len(results)})
}

// ResolveClick godoc
// @Summary Определение места по клику на карте
// @Description Обратное геокодирование координаты клика. Ставит маркер выбора и возвращает адрес. При сбое геокодера - тихий no-op (selected=false).
// @Tags Places
// @Accept json
// @Produce json
// @Param request body dto.ResolveClickRequest true "Координата клика"
// @Success 200 {object} utils.SuccessResponse{data=dto.SelectedPlaceResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/places/resolve-click [post]
func (h *PlaceHandler) ResolveClick(c *fiber.Ctx) error {
	var req dto.ResolveClickRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	place := h.placeUC.ResolveClick(c.Context(), domain.Coordinate{Lat: req.Lat, Lon: req.Lon})

	return utils.SendSuccess(c, dto.SelectedPlaceResponse{
		Selected: place != nil,
		Place:    place,
	}, nil)
}

// SelectResult godoc
// @Summary Выбор результата поиска
// @Description Ставит маркер на выбранный результат поиска, центрирует карту и открывает попап
// @Tags Places
// @Accept json
// @Produce json
// @Param request body dto.SelectResultRequest true "Выбранный результат"
// @Success 200 {object} utils.SuccessResponse{data=dto.SelectedPlaceResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/places/select [post]
func (h *PlaceHandler) SelectResult(c *fiber.Ctx) error {
	var req dto.SelectResultRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	place := h.placeUC.SelectResult(domain.PlaceResult{
		Name:     req.Name,
		Address:  req.Address,
		Position: domain.Coordinate{Lat: req.Lat, Lon: req.Lon},
	})

	return utils.SendSuccess(c, dto.SelectedPlaceResponse{
		Selected: place != nil,
		Place:    place,
	}, nil)
}
