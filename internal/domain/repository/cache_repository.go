package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tripmap-microservice/internal/domain"
)

// CacheRepository - кеш результатов поиска и рендер-снапшотов
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)

	GetSearchResults(ctx context.Context, query string) ([]domain.PlaceResult, error)
	SetSearchResults(ctx context.Context, query string, results []domain.PlaceResult, ttl time.Duration) error

	GetSnapshot(ctx context.Context, tripID uuid.UUID, day int, showRoute bool) (*domain.RenderSnapshot, error)
	SetSnapshot(ctx context.Context, tripID uuid.UUID, day int, showRoute bool, snapshot *domain.RenderSnapshot, ttl time.Duration) error
	InvalidateTrip(ctx context.Context, tripID uuid.UUID) error
}
