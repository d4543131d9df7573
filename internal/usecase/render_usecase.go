package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tripmap-microservice/internal/domain"
	"github.com/tripmap-microservice/internal/domain/repository"
	"github.com/tripmap-microservice/internal/pkg/utils"
	"github.com/tripmap-microservice/internal/provider"
	"github.com/tripmap-microservice/internal/usecase/dto"
	"go.uber.org/zap"
)

// RenderUseCase - центральный компонент рендеринга: превращает список
// маркеров в консистентный набор оверлеев на поверхности карты.
// Набор пересоздаётся целиком на каждый проход: полный teardown старых
// оверлеев строго до создания новых.
type RenderUseCase struct {
	session       *provider.Session
	itineraryRepo repository.ItineraryRepository
	cacheRepo     repository.CacheRepository
	adapter       *GeometryAdapter
	logger        *zap.Logger
	snapshotTTL   time.Duration
	defaultCenter domain.Coordinate
	defaultZoom   int

	// mu сериализует рендер-проходы: teardown-before-create внутри одного
	// прохода - обязательный порядок, замена блокировкам событийной модели
	mu       sync.Mutex
	overlays map[string][]string // container -> ID живых оверлеев (OverlaySet)
}

// NewRenderUseCase - создание нового RenderUseCase
func NewRenderUseCase(
	session *provider.Session,
	itineraryRepo repository.ItineraryRepository,
	cacheRepo repository.CacheRepository,
	adapter *GeometryAdapter,
	logger *zap.Logger,
	snapshotTTL time.Duration,
	defaultCenter domain.Coordinate,
	defaultZoom int,
) *RenderUseCase {
	return &RenderUseCase{
		session:       session,
		itineraryRepo: itineraryRepo,
		cacheRepo:     cacheRepo,
		adapter:       adapter,
		logger:        logger,
		snapshotTTL:   snapshotTTL,
		defaultCenter: defaultCenter,
		defaultZoom:   defaultZoom,
		overlays:      make(map[string][]string),
	}
}

// Status возвращает состояние сессии провайдера (render-readiness флаг)
func (uc *RenderUseCase) Status() dto.MapStatusResponse {
	state := uc.session.State()
	return dto.MapStatusResponse{
		State: string(state),
		Ready: state == provider.StateReady,
	}
}

// RenderTrip выполняет рендер-проход карты поездки: читает снапшот
// элементов маршрута, строит маркеры и синхронизирует оверлеи поверхности.
// selectedDay == 0 - без фильтра. Результат кешируется (best-effort).
func (uc *RenderUseCase) RenderTrip(ctx context.Context, tripID uuid.UUID, selectedDay int, showRoute bool) (*domain.RenderSnapshot, error) {
	switch uc.session.State() {
	case provider.StateUnavailable:
		// Тихий деградированный режим: статичная заглушка вместо карты
		return &domain.RenderSnapshot{
			State:      domain.RenderStateUnavailable,
			RenderedAt: time.Now(),
		}, nil
	case provider.StateUninitialized, provider.StateLoading:
		return &domain.RenderSnapshot{
			State:      domain.RenderStateLoading,
			RenderedAt: time.Now(),
		}, nil
	}

	items, err := uc.itineraryRepo.ListItems(ctx, tripID)
	if err != nil {
		uc.logger.Error("Failed to load itinerary items",
			zap.String("trip_id", tripID.String()),
			zap.Error(err))
		return nil, err
	}

	markers := uc.adapter.BuildMarkers(items)

	snapshot, err := uc.Render(tripContainer(tripID), markers, selectedDay, showRoute)
	if err != nil {
		return nil, err
	}

	if err := uc.cacheRepo.SetSnapshot(ctx, tripID, selectedDay, showRoute, snapshot, uc.snapshotTTL); err != nil {
		uc.logger.Warn("Failed to cache render snapshot", zap.Error(err))
	}

	return snapshot, nil
}

// CachedSnapshot возвращает закешированный снапшот поездки, если он есть
func (uc *RenderUseCase) CachedSnapshot(ctx context.Context, tripID uuid.UUID, selectedDay int, showRoute bool) (*domain.RenderSnapshot, error) {
	return uc.cacheRepo.GetSnapshot(ctx, tripID, selectedDay, showRoute)
}

// Render выполняет один рендер-проход над поверхностью контейнера.
// Алгоритм: guard готовности -> полный teardown предыдущего OverlaySet ->
// фильтр по дню -> пины -> полилинии по дням -> viewport.
func (uc *RenderUseCase) Render(container string, markers []domain.RenderMarker, selectedDay int, showRoute bool) (*domain.RenderSnapshot, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if !uc.session.IsReady() {
		return &domain.RenderSnapshot{
			State:      domain.RenderStateLoading,
			RenderedAt: time.Now(),
		}, nil
	}

	if len(markers) == 0 {
		// EmptyGeodata: заглушка "нечего показать", поверхность не трогаем
		return &domain.RenderSnapshot{
			State:      domain.RenderStateEmpty,
			RenderedAt: time.Now(),
		}, nil
	}

	surface, err := uc.surfaceFor(container, markers)
	if err != nil {
		return nil, err
	}

	// Teardown строго до создания новых оверлеев: обратный порядок даёт
	// видимый двойной рендер и утечку оверлеев при быстрых повторных вызовах
	uc.teardown(surface, container)

	filtered := uc.adapter.FilterByDay(markers, selectedDay)
	if len(filtered) == 0 {
		// Пустой отфильтрованный набор: ни оверлеев, ни смены viewport
		return &domain.RenderSnapshot{
			State:      domain.RenderStateEmpty,
			RenderedAt: time.Now(),
		}, nil
	}

	var created []string

	// Пины в порядке входа; ошибка провайдера на одном маркере не
	// блокирует остальные (best-effort, никогда не фатально)
	for idx, m := range filtered {
		label := strconv.Itoa(m.SequenceOrder)
		if m.SequenceOrder == 0 {
			label = strconv.Itoa(idx + 1)
		}

		id, err := surface.AddPin(domain.Pin{
			Position: m.Coordinate,
			Color:    domain.MarkerColor(m),
			Label:    label,
			Day:      m.Day,
			Title:    popupContent(m),
		})
		if err != nil {
			uc.logger.Warn("Failed to create pin overlay, skipping marker",
				zap.String("container", container),
				zap.String("marker", m.Label),
				zap.Error(err))
			continue
		}
		created = append(created, id)
	}

	if showRoute && len(filtered) >= 2 {
		created = append(created, uc.renderRoutes(surface, container, filtered)...)
	}

	uc.overlays[container] = created

	// Подгонка viewport: одна точка центрируется напрямую - подгонка
	// bounding box вырождается на единственной точке
	coords := make([]domain.Coordinate, len(filtered))
	for i, m := range filtered {
		coords[i] = m.Coordinate
	}
	if viewport := utils.FitViewport(coords); viewport != nil {
		if viewport.Kind == domain.ViewportCenter {
			surface.SetCenter(viewport.Center)
			surface.SetZoom(viewport.ZoomLevel)
		} else {
			surface.FitBounds(*viewport.Bounds, viewport.Padding)
		}
	}

	snapshot := surface.Snapshot()
	snapshot.State = domain.RenderStateRendered

	uc.logger.Debug("Render pass complete",
		zap.String("container", container),
		zap.Int("markers", len(filtered)),
		zap.Int("overlays", len(created)))

	return &snapshot, nil
}

// ClickPin открывает инфо-попап пина; попап сам закрывается через 3 секунды,
// повторный клик до истечения просто перезапускает свежий попап
func (uc *RenderUseCase) ClickPin(tripID uuid.UUID, pinID string) error {
	surface, ok := uc.session.Surface(tripContainer(tripID))
	if !ok {
		return fmt.Errorf("no surface for trip %s", tripID)
	}
	return surface.OpenPopup(pinID)
}

// renderRoutes рисует полилинии маршрута: маркеры разбиваются по дням
// (без дня - день 1), полилиния создаётся для групп из 2+ точек,
// точки идут в порядке входа (сортировка по времени - забота вызывающего)
func (uc *RenderUseCase) renderRoutes(surface provider.Surface, container string, markers []domain.RenderMarker) []string {
	groups := make(map[int][]domain.Coordinate)
	for _, m := range markers {
		day := m.Day
		if day == 0 {
			day = 1
		}
		groups[day] = append(groups[day], m.Coordinate)
	}

	days := make([]int, 0, len(groups))
	for day := range groups {
		days = append(days, day)
	}
	sort.Ints(days)

	var created []string
	for _, day := range days {
		path := groups[day]
		if len(path) < 2 {
			continue
		}

		id, err := surface.AddPolyline(domain.Polyline{
			Day:   day,
			Color: domain.ColorForDay(day),
			Path:  path,
		})
		if err != nil {
			uc.logger.Warn("Failed to create polyline overlay, skipping day group",
				zap.String("container", container),
				zap.Int("day", day),
				zap.Error(err))
			continue
		}
		created = append(created, id)
	}
	return created
}

// teardown явно открепляет каждый оверлей предыдущего OverlaySet
func (uc *RenderUseCase) teardown(surface provider.Surface, container string) {
	prev := uc.overlays[container]
	for _, id := range prev {
		if err := surface.RemoveOverlay(id); err != nil {
			uc.logger.Warn("Failed to remove stale overlay",
				zap.String("container", container),
				zap.String("overlay_id", id),
				zap.Error(err))
		}
	}
	delete(uc.overlays, container)
}

// surfaceFor возвращает живую поверхность контейнера, создавая её при
// первом обращении с центром на первом маркере
func (uc *RenderUseCase) surfaceFor(container string, markers []domain.RenderMarker) (provider.Surface, error) {
	if surface, ok := uc.session.Surface(container); ok {
		return surface, nil
	}

	center := uc.defaultCenter
	if len(markers) > 0 {
		center = markers[0].Coordinate
	}

	return uc.session.CreateSurface(container, center, uc.defaultZoom)
}

func popupContent(m domain.RenderMarker) string {
	if m.Day > 0 {
		return fmt.Sprintf("%s (Day %d)", m.Label, m.Day)
	}
	return m.Label
}

func tripContainer(tripID uuid.UUID) string {
	return "trip:" + tripID.String()
}
