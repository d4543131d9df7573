package repository

import (
	"context"

	"github.com/tripmap-microservice/internal/domain"
)

// PlaceRepository - возможности провайдера по поиску мест и геокодированию
type PlaceRepository interface {
	// SearchKeyword выполняет поиск мест по ключевому слову,
	// возвращает не более limit результатов
	SearchKeyword(ctx context.Context, query string, limit int) ([]domain.PlaceResult, error)

	// ReverseGeocode возвращает адрес для координаты
	ReverseGeocode(ctx context.Context, coord domain.Coordinate) (string, error)
}
