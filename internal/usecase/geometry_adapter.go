package usecase

import (
	"github.com/tripmap-microservice/internal/domain"
	"go.uber.org/zap"
)

// GeometryAdapter транслирует снапшот элементов маршрута в список маркеров
// для рендерера. Пересчёт выполняется на каждый рендер-проход: триггерами
// служат изменение снапшота (события стрима), фильтра дня и флага маршрута.
type GeometryAdapter struct {
	logger *zap.Logger
}

// NewGeometryAdapter - создание нового GeometryAdapter
func NewGeometryAdapter(logger *zap.Logger) *GeometryAdapter {
	return &GeometryAdapter{logger: logger}
}

// BuildMarkers строит маркеры из элементов маршрута в их сохранённом порядке.
// Элементы без координаты (nil-компоненты или пара (0,0)) отбрасываются.
// SequenceOrder - сквозной счётчик по всему маршруту, присвоенный ДО
// какой-либо фильтрации по дню: номера маркеров не меняются, когда
// пользователь переключает отображаемый день.
func (a *GeometryAdapter) BuildMarkers(items []domain.ItineraryItem) []domain.RenderMarker {
	markers := make([]domain.RenderMarker, 0, len(items))

	seq := 0
	for _, item := range items {
		coord, ok := item.Coordinate()
		if !ok {
			continue
		}

		seq++
		markers = append(markers, domain.RenderMarker{
			Coordinate:    coord,
			Label:         item.PlaceName,
			Category:      item.Category,
			Day:           item.DayNumber,
			SequenceOrder: seq,
		})
	}

	if len(markers) < len(items) {
		a.logger.Debug("Skipped items without coordinates",
			zap.Int("total", len(items)),
			zap.Int("rendered", len(markers)))
	}

	return markers
}

// FilterByDay возвращает маркеры выбранного дня; day == 0 означает все дни.
// Фильтр идемпотентен: номера последовательности уже присвоены и не меняются.
func (a *GeometryAdapter) FilterByDay(markers []domain.RenderMarker, day int) []domain.RenderMarker {
	if day == 0 {
		return markers
	}

	filtered := make([]domain.RenderMarker, 0, len(markers))
	for _, m := range markers {
		if m.Day == day {
			filtered = append(filtered, m)
		}
	}
	return filtered
}
