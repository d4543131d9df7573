package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/tripmap-microservice/internal/domain"
)

// ItineraryRepository - доступ к поездкам и элементам маршрута
type ItineraryRepository interface {
	CreateTrip(ctx context.Context, trip *domain.Trip) error
	GetTrip(ctx context.Context, id uuid.UUID) (*domain.Trip, error)
	ListTrips(ctx context.Context, limit, offset int) ([]domain.Trip, error)
	DeleteTrip(ctx context.Context, id uuid.UUID) error

	ListItems(ctx context.Context, tripID uuid.UUID) ([]domain.ItineraryItem, error)
	GetItem(ctx context.Context, id uuid.UUID) (*domain.ItineraryItem, error)
	CreateItem(ctx context.Context, item *domain.ItineraryItem) error
	UpdateItem(ctx context.Context, item *domain.ItineraryItem) error
	DeleteItem(ctx context.Context, id uuid.UUID) error
}
