// Package provider абстрагирует рантайм картографического провайдера:
// жизненный цикл подключения, поверхности карты и оверлеи. Логика рендеринга
// зависит только от этого контракта и тестируется без реального провайдера.
package provider

import (
	"context"
	"time"

	"github.com/tripmap-microservice/internal/domain"
)

// PopupAutoCloseDelay - время жизни инфо-попапа после открытия
const PopupAutoCloseDelay = 3 * time.Second

// Runtime - внешний рантайм провайдера карт
type Runtime interface {
	// Load выполняет одноразовую асинхронную инициализацию SDK
	Load(ctx context.Context) error

	// NewSurface создаёт живую поверхность карты в контейнере
	NewSurface(container string, center domain.Coordinate, zoomLevel int) (Surface, error)
}

// Surface - поверхность карты с ручным управлением жизненным циклом
// оверлеев: устаревшие оверлеи обязаны быть явно удалены, иначе они
// продолжают потреблять ресурсы рендеринга и диспетчеризации событий.
type Surface interface {
	Container() string

	// AddPin добавляет маркер; возвращённый ID используется для удаления
	AddPin(pin domain.Pin) (string, error)

	// AddPolyline добавляет линию маршрута
	AddPolyline(line domain.Polyline) (string, error)

	// RemoveOverlay явно открепляет оверлей (пин или полилинию) от поверхности
	RemoveOverlay(id string) error

	// OpenPopup открывает инфо-попап над пином; попап сам закрывается
	// через PopupAutoCloseDelay, повторное открытие перезапускает таймер
	OpenPopup(pinID string) error

	SetCenter(c domain.Coordinate)
	SetZoom(level int)
	FitBounds(bounds domain.BoundingBox, padding int)

	// Snapshot возвращает текущее состояние оверлеев поверхности
	Snapshot() domain.RenderSnapshot

	// Release открепляет все оверлеи, отменяет таймеры и слушатели.
	// После Release поверхность непригодна к использованию.
	Release()
}
