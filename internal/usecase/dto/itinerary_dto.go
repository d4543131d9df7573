package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/tripmap-microservice/internal/domain"
)

// CreateTripRequest - создание поездки
type CreateTripRequest struct {
	Title       string   `json:"title" validate:"required,min=1,max=200"`
	Destination string   `json:"destination" validate:"required,min=1,max=200"`
	StartDate   string   `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     string   `json:"end_date" validate:"required,datetime=2006-01-02"`
	Budget      int64    `json:"budget" validate:"min=0"`
	Themes      []string `json:"themes" validate:"dive,oneof=HEALING ADVENTURE FOOD CULTURE SHOPPING NATURE"`
}

// TripResponse - поездка с элементами маршрута
type TripResponse struct {
	Trip      domain.Trip            `json:"trip"`
	Schedules []domain.ItineraryItem `json:"schedules,omitempty"`
}

// TripListResponse - страница списка поездок
type TripListResponse struct {
	Trips []domain.Trip `json:"trips"`
	Total int           `json:"total"`
}

// CreateScheduleRequest - добавление элемента маршрута
type CreateScheduleRequest struct {
	DayNumber   int      `json:"day_number" validate:"required,min=1"`
	Time        string   `json:"time" validate:"required,datetime=15:04"`
	PlaceName   string   `json:"place_name" validate:"required,min=1,max=200"`
	Category    string   `json:"category" validate:"required,oneof=TRANSPORT ACCOMMODATION RESTAURANT ATTRACTION ACTIVITY"`
	Description *string  `json:"description,omitempty"`
	Lat         *float64 `json:"lat,omitempty" validate:"omitempty,latitude"`
	Lon         *float64 `json:"lon,omitempty" validate:"omitempty,longitude"`
}

// UpdateScheduleRequest - изменение элемента маршрута
type UpdateScheduleRequest struct {
	DayNumber   int      `json:"day_number" validate:"required,min=1"`
	Time        string   `json:"time" validate:"required,datetime=15:04"`
	PlaceName   string   `json:"place_name" validate:"required,min=1,max=200"`
	Category    string   `json:"category" validate:"required,oneof=TRANSPORT ACCOMMODATION RESTAURANT ATTRACTION ACTIVITY"`
	Description *string  `json:"description,omitempty"`
	Lat         *float64 `json:"lat,omitempty" validate:"omitempty,latitude"`
	Lon         *float64 `json:"lon,omitempty" validate:"omitempty,longitude"`
}

// ToTrip преобразует запрос в доменную модель
func (r CreateTripRequest) ToTrip() (*domain.Trip, error) {
	start, err := time.Parse("2006-01-02", r.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := time.Parse("2006-01-02", r.EndDate)
	if err != nil {
		return nil, err
	}

	return &domain.Trip{
		Title:       r.Title,
		Destination: r.Destination,
		StartDate:   start,
		EndDate:     end,
		Budget:      r.Budget,
		Themes:      r.Themes,
	}, nil
}

// ToItem преобразует запрос в доменную модель
func (r CreateScheduleRequest) ToItem(tripID uuid.UUID) *domain.ItineraryItem {
	return &domain.ItineraryItem{
		TripID:      tripID,
		DayNumber:   r.DayNumber,
		Time:        r.Time,
		PlaceName:   r.PlaceName,
		Category:    domain.PlaceCategory(r.Category),
		Description: r.Description,
		Lat:         r.Lat,
		Lon:         r.Lon,
	}
}
