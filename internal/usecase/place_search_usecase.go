package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/tripmap-microservice/internal/domain"
	"github.com/tripmap-microservice/internal/domain/repository"
	"github.com/tripmap-microservice/internal/provider"
	"go.uber.org/zap"
)

const (
	// searchResultLimit - максимум результатов поиска места
	searchResultLimit = 5

	// pinContainer - контейнер поверхности режима "поиск и пин":
	// независим от поверхностей маршрута, их OverlaySet не пересекаются
	pinContainer = "place-search"
)

// PlaceSelectedListener получает событие "place selected"
type PlaceSelectedListener func(place domain.SelectedPlace)

// PlaceSearchUseCase оборачивает поиск по ключевому слову и обратное
// геокодирование провайдера. Владеет собственной поверхностью с единственным
// маркером выбранного места.
type PlaceSearchUseCase struct {
	placeRepo repository.PlaceRepository // nil = провайдер недоступен
	cacheRepo repository.CacheRepository
	session   *provider.Session
	logger    *zap.Logger
	cacheTTL  time.Duration

	mu        sync.Mutex
	listeners []PlaceSelectedListener
	closed    bool
	pinID     string // текущий единственный маркер режима поиска
}

// NewPlaceSearchUseCase - создание нового PlaceSearchUseCase
func NewPlaceSearchUseCase(
	placeRepo repository.PlaceRepository,
	cacheRepo repository.CacheRepository,
	session *provider.Session,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *PlaceSearchUseCase {
	return &PlaceSearchUseCase{
		placeRepo: placeRepo,
		cacheRepo: cacheRepo,
		session:   session,
		logger:    logger,
		cacheTTL:  cacheTTL,
	}
}

// OnPlaceSelected регистрирует слушателя события "place selected"
func (uc *PlaceSearchUseCase) OnPlaceSelected(listener PlaceSelectedListener) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.listeners = append(uc.listeners, listener)
}

// Close помечает компонент размонтированным: запоздавшие результаты
// не доставляются слушателям
func (uc *PlaceSearchUseCase) Close() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.closed = true
}

// SearchByKeyword ищет места по ключевому слову. contextHint (регион
// назначения) добавляется перед запросом для смещения результатов.
// Сбой или пустой результат - пустой список, никогда не ошибка:
// поиск - исследовательский UI, он не должен прерывать пользователя.
func (uc *PlaceSearchUseCase) SearchByKeyword(ctx context.Context, keyword, contextHint string) []domain.PlaceResult {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" || uc.placeRepo == nil {
		return []domain.PlaceResult{}
	}

	query := keyword
	if contextHint != "" {
		query = contextHint + " " + keyword
	}

	if cached, err := uc.cacheRepo.GetSearchResults(ctx, query); err == nil && cached != nil {
		return cached
	}

	results, err := uc.placeRepo.SearchKeyword(ctx, query, searchResultLimit)
	if err != nil {
		uc.logger.Warn("Keyword search failed, returning empty result",
			zap.String("query", query),
			zap.Error(err))
		return []domain.PlaceResult{}
	}

	if len(results) > searchResultLimit {
		results = results[:searchResultLimit]
	}

	if err := uc.cacheRepo.SetSearchResults(ctx, query, results, uc.cacheTTL); err != nil {
		uc.logger.Warn("Failed to cache search results", zap.Error(err))
	}

	return results
}

// ResolveClick разрешает координату клика по карте в адрес. Успех - пин
// и событие "place selected" с пустым именем (у клика есть только адрес).
// Сбой геокодера - тихий no-op, пользователь может просто кликнуть ещё раз.
func (uc *PlaceSearchUseCase) ResolveClick(ctx context.Context, coord domain.Coordinate) *domain.SelectedPlace {
	if !coord.Valid() || uc.placeRepo == nil {
		return nil
	}

	address, err := uc.placeRepo.ReverseGeocode(ctx, coord)
	if err != nil {
		uc.logger.Debug("Reverse geocode failed, no place selected",
			zap.Float64("lat", coord.Lat),
			zap.Float64("lon", coord.Lon),
			zap.Error(err))
		return nil
	}

	place := domain.SelectedPlace{
		Name:     "",
		Address:  address,
		Position: coord,
	}

	uc.placePin(place, 0)
	uc.emit(place)
	return &place
}

// SelectResult выбирает результат поиска: карта центрируется на месте
// с близким зумом, единственный пин режима заменяется, поднимается
// событие "place selected"
func (uc *PlaceSearchUseCase) SelectResult(result domain.PlaceResult) *domain.SelectedPlace {
	place := domain.SelectedPlace{
		Name:     result.Name,
		Address:  result.Address,
		Position: result.Position,
	}

	uc.placePin(place, domain.ZoomPick)
	uc.emit(place)
	return &place
}

// placePin заменяет единственный маркер режима поиска; zoomLevel > 0
// дополнительно центрирует карту на месте
func (uc *PlaceSearchUseCase) placePin(place domain.SelectedPlace, zoomLevel int) {
	surface, err := uc.surface(place.Position)
	if err != nil {
		uc.logger.Debug("Pin surface unavailable", zap.Error(err))
		return
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.pinID != "" {
		if err := surface.RemoveOverlay(uc.pinID); err != nil {
			uc.logger.Warn("Failed to remove previous search pin", zap.Error(err))
		}
		uc.pinID = ""
	}

	title := place.Name
	if title == "" {
		title = place.Address
	}

	id, err := surface.AddPin(domain.Pin{
		Position: place.Position,
		Label:    "",
		Title:    title,
	})
	if err != nil {
		uc.logger.Warn("Failed to place search pin", zap.Error(err))
		return
	}
	uc.pinID = id

	surface.SetCenter(place.Position)
	if zoomLevel > 0 {
		surface.SetZoom(zoomLevel)
	}

	// Инфовиндоу открывается сразу при установке пина
	if err := surface.OpenPopup(id); err != nil {
		uc.logger.Warn("Failed to open search pin popup", zap.Error(err))
	}
}

func (uc *PlaceSearchUseCase) surface(center domain.Coordinate) (provider.Surface, error) {
	if surface, ok := uc.session.Surface(pinContainer); ok {
		return surface, nil
	}
	return uc.session.CreateSurface(pinContainer, center, domain.ZoomClose)
}

// emit доставляет событие зарегистрированным слушателям; после Close
// события не доставляются
func (uc *PlaceSearchUseCase) emit(place domain.SelectedPlace) {
	uc.mu.Lock()
	if uc.closed {
		uc.mu.Unlock()
		return
	}
	listeners := make([]PlaceSelectedListener, len(uc.listeners))
	copy(listeners, uc.listeners)
	uc.mu.Unlock()

	for _, listener := range listeners {
		listener(place)
	}
}
