package provider

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tripmap-microservice/internal/domain"
)

// memoryRuntime - серверная реализация рантайма: оверлеи живут в памяти
// процесса, клиенты зеркалируют их на реальную карту по снапшотам
type memoryRuntime struct {
	popupDelay time.Duration
}

// NewMemoryRuntime создаёт рантайм с in-memory поверхностями
func NewMemoryRuntime() Runtime {
	return &memoryRuntime{popupDelay: PopupAutoCloseDelay}
}

// NewMemoryRuntimeWithPopupDelay - как NewMemoryRuntime, но с настраиваемым
// временем жизни попапа (для тестов)
func NewMemoryRuntimeWithPopupDelay(delay time.Duration) Runtime {
	return &memoryRuntime{popupDelay: delay}
}

func (r *memoryRuntime) Load(_ context.Context) error {
	return nil
}

func (r *memoryRuntime) NewSurface(container string, center domain.Coordinate, zoomLevel int) (Surface, error) {
	if container == "" {
		return nil, fmt.Errorf("container must not be empty")
	}
	return &memorySurface{
		container:  container,
		popupDelay: r.popupDelay,
		pins:       make(map[string]domain.Pin),
		polylines:  make(map[string]domain.Polyline),
		viewport: &domain.Viewport{
			Kind:      domain.ViewportCenter,
			Center:    center,
			ZoomLevel: zoomLevel,
		},
	}, nil
}

type memorySurface struct {
	container  string
	popupDelay time.Duration

	mu         sync.Mutex
	released   bool
	seq        int
	pins       map[string]domain.Pin
	pinOrder   []string
	polylines  map[string]domain.Polyline
	lineOrder  []string
	viewport   *domain.Viewport
	popup      *domain.Popup
	popupTimer *time.Timer
}

func (s *memorySurface) Container() string {
	return s.container
}

func (s *memorySurface) AddPin(pin domain.Pin) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released {
		return "", fmt.Errorf("surface %q is released", s.container)
	}
	if !pin.Position.Valid() {
		return "", fmt.Errorf("pin position is not a valid coordinate")
	}

	s.seq++
	id := fmt.Sprintf("pin-%d", s.seq)
	pin.ID = id
	s.pins[id] = pin
	s.pinOrder = append(s.pinOrder, id)
	return id, nil
}

func (s *memorySurface) AddPolyline(line domain.Polyline) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released {
		return "", fmt.Errorf("surface %q is released", s.container)
	}
	if len(line.Path) < 2 {
		return "", fmt.Errorf("polyline requires at least 2 points")
	}

	s.seq++
	id := fmt.Sprintf("line-%d", s.seq)
	line.ID = id
	s.polylines[id] = line
	s.lineOrder = append(s.lineOrder, id)
	return id, nil
}

func (s *memorySurface) RemoveOverlay(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pins[id]; ok {
		delete(s.pins, id)
		s.pinOrder = removeID(s.pinOrder, id)
		// попап открепляемого пина закрывается вместе с ним
		if s.popup != nil && s.popup.PinID == id {
			s.closePopupLocked()
		}
		return nil
	}
	if _, ok := s.polylines[id]; ok {
		delete(s.polylines, id)
		s.lineOrder = removeID(s.lineOrder, id)
		return nil
	}
	return fmt.Errorf("overlay %q not found", id)
}

// OpenPopup открывает инфо-попап пина. Предыдущий попап заменяется,
// его таймер отменяется; новый попап живёт popupDelay.
func (s *memorySurface) OpenPopup(pinID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released {
		return fmt.Errorf("surface %q is released", s.container)
	}
	pin, ok := s.pins[pinID]
	if !ok {
		return fmt.Errorf("pin %q not found", pinID)
	}

	s.closePopupLocked()

	s.popup = &domain.Popup{
		PinID:    pinID,
		Content:  pin.Title,
		OpenedAt: time.Now(),
	}
	s.popupTimer = time.AfterFunc(s.popupDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.popup != nil && s.popup.PinID == pinID {
			s.popup = nil
			s.popupTimer = nil
		}
	})
	return nil
}

// closePopupLocked закрывает попап и отменяет его таймер, чтобы висящий
// callback не трогал уже откреплённый оверлей. Вызывается под mu.
func (s *memorySurface) closePopupLocked() {
	if s.popupTimer != nil {
		s.popupTimer.Stop()
		s.popupTimer = nil
	}
	s.popup = nil
}

func (s *memorySurface) SetCenter(c domain.Coordinate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return
	}
	s.viewport = &domain.Viewport{
		Kind:      domain.ViewportCenter,
		Center:    c,
		ZoomLevel: s.currentZoomLocked(),
	}
}

func (s *memorySurface) SetZoom(level int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released || s.viewport == nil {
		return
	}
	s.viewport.ZoomLevel = level
}

func (s *memorySurface) FitBounds(bounds domain.BoundingBox, padding int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return
	}
	b := bounds
	s.viewport = &domain.Viewport{
		Kind:    domain.ViewportFit,
		Center:  b.Center(),
		Bounds:  &b,
		Padding: padding,
	}
}

func (s *memorySurface) Snapshot() domain.RenderSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := domain.RenderSnapshot{
		State:      domain.RenderStateRendered,
		RenderedAt: time.Now(),
	}
	for _, id := range s.pinOrder {
		snap.Pins = append(snap.Pins, s.pins[id])
	}
	for _, id := range s.lineOrder {
		snap.Polylines = append(snap.Polylines, s.polylines[id])
	}
	if s.viewport != nil {
		v := *s.viewport
		snap.Viewport = &v
	}
	if s.popup != nil {
		p := *s.popup
		snap.Popup = &p
	}
	return snap
}

func (s *memorySurface) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closePopupLocked()
	s.pins = make(map[string]domain.Pin)
	s.pinOrder = nil
	s.polylines = make(map[string]domain.Polyline)
	s.lineOrder = nil
	s.released = true
}

func (s *memorySurface) currentZoomLocked() int {
	if s.viewport != nil && s.viewport.ZoomLevel != 0 {
		return s.viewport.ZoomLevel
	}
	return domain.ZoomDefault
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
