package dto

import (
	"github.com/google/uuid"
	"github.com/tripmap-microservice/internal/domain"
)

// MapStatusResponse - состояние сессии провайдера для хост-экранов
type MapStatusResponse struct {
	State string `json:"state"`
	Ready bool   `json:"ready"`
}

// RenderRequest - параметры рендер-прохода карты поездки
type RenderRequest struct {
	TripID      uuid.UUID `json:"trip_id" validate:"required"`
	SelectedDay int       `json:"selected_day" validate:"min=0"` // 0 = все дни
	ShowRoute   bool      `json:"show_route"`
}

// MapRenderResponse - результат рендер-прохода
type MapRenderResponse struct {
	TripID      uuid.UUID              `json:"trip_id"`
	SelectedDay int                    `json:"selected_day,omitempty"`
	ShowRoute   bool                   `json:"show_route"`
	Snapshot    *domain.RenderSnapshot `json:"snapshot"`
}
