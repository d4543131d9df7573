package dto

import "github.com/tripmap-microservice/internal/domain"

// PlaceSearchRequest - поиск мест по ключевому слову
type PlaceSearchRequest struct {
	Keyword string `json:"keyword" validate:"required,min=1"`
	Hint    string `json:"hint"` // регион назначения для уточнения результатов
}

// PlaceSearchResponse - результаты поиска мест
type PlaceSearchResponse struct {
	Results []domain.PlaceResult `json:"results"`
	Total   int                  `json:"total"`
}

// ResolveClickRequest - координата клика по карте
type ResolveClickRequest struct {
	Lat float64 `json:"lat" validate:"latitude"`
	Lon float64 `json:"lon" validate:"longitude"`
}

// SelectResultRequest - выбранный результат поиска
type SelectResultRequest struct {
	Name    string  `json:"name" validate:"required"`
	Address string  `json:"address"`
	Lat     float64 `json:"lat" validate:"latitude"`
	Lon     float64 `json:"lon" validate:"longitude"`
}

// SelectedPlaceResponse - результат выбора места. Selected=false означает
// тихий no-op (геокодер не ответил или провайдер недоступен).
type SelectedPlaceResponse struct {
	Selected bool                  `json:"selected"`
	Place    *domain.SelectedPlace `json:"place,omitempty"`
}
