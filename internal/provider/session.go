package provider

import (
	"context"
	"fmt"
	"sync"

	"github.com/tripmap-microservice/internal/domain"
	"go.uber.org/zap"
)

// State - состояние сессии провайдера
type State string

const (
	StateUninitialized State = "uninitialized"
	StateLoading       State = "loading"
	StateReady         State = "ready"
	StateUnavailable   State = "unavailable" // терминальное, без повторных попыток
)

// Session владеет жизненным циклом подключения к провайдеру карт:
// детект доступности, одноразовая асинхронная инициализация и выдача
// поверхностей после готовности.
type Session struct {
	runtime Runtime
	logger  *zap.Logger

	mu       sync.Mutex
	state    State
	surfaces map[string]Surface

	ready chan struct{} // закрывается при переходе в Ready или Unavailable
}

// NewSession создаёт сессию. runtime == nil означает, что рантайм провайдера
// отсутствует в окружении - сессия станет Unavailable при инициализации.
func NewSession(runtime Runtime, logger *zap.Logger) *Session {
	return &Session{
		runtime:  runtime,
		logger:   logger,
		state:    StateUninitialized,
		surfaces: make(map[string]Surface),
		ready:    make(chan struct{}),
	}
}

// Initialize запускает инициализацию. Повторные вызовы - no-op.
// Отсутствие рантайма - тихий деградированный режим, не ошибка:
// подсистема показывает статичную заглушку вместо карты.
func (s *Session) Initialize(ctx context.Context) {
	s.mu.Lock()
	if s.state != StateUninitialized {
		s.mu.Unlock()
		return
	}

	if s.runtime == nil {
		s.state = StateUnavailable
		s.mu.Unlock()
		close(s.ready)
		s.logger.Warn("Map provider runtime is missing, session is permanently unavailable")
		return
	}

	s.state = StateLoading
	s.mu.Unlock()

	go func() {
		if err := s.runtime.Load(ctx); err != nil {
			s.mu.Lock()
			s.state = StateUnavailable
			s.mu.Unlock()
			close(s.ready)
			s.logger.Error("Map provider load failed, session is permanently unavailable", zap.Error(err))
			return
		}

		s.mu.Lock()
		s.state = StateReady
		s.mu.Unlock()
		close(s.ready)
		s.logger.Info("Map provider session ready")
	}()
}

// State возвращает текущее состояние сессии
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// IsReady сообщает, готова ли сессия к созданию поверхностей
func (s *Session) IsReady() bool {
	return s.State() == StateReady
}

// WaitReady блокирует до завершения инициализации (Ready или Unavailable)
// либо отмены контекста
func (s *Session) WaitReady(ctx context.Context) error {
	select {
	case <-s.ready:
		if s.State() != StateReady {
			return fmt.Errorf("map provider is unavailable")
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// CreateSurface создаёт поверхность карты. Валидно только в Ready.
// Идемпотентно per container: существующая поверхность контейнера
// освобождается (оверлеи, таймеры, слушатели) до создания новой.
func (s *Session) CreateSurface(container string, center domain.Coordinate, zoomLevel int) (Surface, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateReady {
		return nil, fmt.Errorf("cannot create surface in state %q", s.state)
	}

	if prev, ok := s.surfaces[container]; ok {
		prev.Release()
		delete(s.surfaces, container)
		s.logger.Debug("Released previous surface for container", zap.String("container", container))
	}

	surface, err := s.runtime.NewSurface(container, center, zoomLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create surface: %w", err)
	}

	s.surfaces[container] = surface
	return surface, nil
}

// Surface возвращает живую поверхность контейнера, если она существует
func (s *Session) Surface(container string) (Surface, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	surface, ok := s.surfaces[container]
	return surface, ok
}

// Close освобождает все поверхности сессии
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for container, surface := range s.surfaces {
		surface.Release()
		delete(s.surfaces, container)
	}
}
