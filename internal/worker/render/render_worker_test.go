package render_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/tripmap-microservice/internal/domain"
	"github.com/tripmap-microservice/internal/provider"
	"github.com/tripmap-microservice/internal/usecase"
	"github.com/tripmap-microservice/internal/worker/render"
)

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, count int) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

func (m *MockStreamRepository) Publish(ctx context.Context, stream string, data []byte) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheRepository) GetSearchResults(ctx context.Context, query string) ([]domain.PlaceResult, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PlaceResult), args.Error(1)
}

func (m *MockCacheRepository) SetSearchResults(ctx context.Context, query string, results []domain.PlaceResult, ttl time.Duration) error {
	args := m.Called(ctx, query, results, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) GetSnapshot(ctx context.Context, tripID uuid.UUID, day int, showRoute bool) (*domain.RenderSnapshot, error) {
	args := m.Called(ctx, tripID, day, showRoute)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RenderSnapshot), args.Error(1)
}

func (m *MockCacheRepository) SetSnapshot(ctx context.Context, tripID uuid.UUID, day int, showRoute bool, snapshot *domain.RenderSnapshot, ttl time.Duration) error {
	args := m.Called(ctx, tripID, day, showRoute, snapshot, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) InvalidateTrip(ctx context.Context, tripID uuid.UUID) error {
	args := m.Called(ctx, tripID)
	return args.Error(0)
}

// newWorker builds a RenderWorker whose render passes hit an unavailable
// provider: refreshTrip still invalidates the cache, the warm-up render
// returns a placeholder without touching any repository
func newWorker(streamRepo *MockStreamRepository, cacheRepo *MockCacheRepository) *render.RenderWorker {
	session := provider.NewSession(nil, zap.NewNop())
	session.Initialize(context.Background())

	renderUC := usecase.NewRenderUseCase(
		session,
		nil, // itinerary repository is not reached in unavailable state
		cacheRepo,
		usecase.NewGeometryAdapter(zap.NewNop()),
		zap.NewNop(),
		time.Minute,
		domain.Coordinate{Lat: 37.5665, Lon: 126.978},
		domain.ZoomDefault,
	)

	return render.NewRenderWorker(streamRepo, cacheRepo, renderUC, "map-render-workers", zap.NewNop())
}

func TestRenderWorker_Name(t *testing.T) {
	worker := newWorker(&MockStreamRepository{}, &MockCacheRepository{})
	assert.Equal(t, "map-render", worker.Name())
}

func TestRenderWorker_ProcessesChangeEvents(t *testing.T) {
	streamRepo := &MockStreamRepository{}
	cacheRepo := &MockCacheRepository{}
	worker := newWorker(streamRepo, cacheRepo)

	tripID := uuid.New()
	payload, _ := json.Marshal(domain.ItineraryChangedEvent{
		TripID:     tripID,
		ChangeType: domain.ChangeUpdated,
		OccurredAt: time.Now(),
	})

	batch := []domain.StreamMessage{
		{ID: "1-0", Data: string(payload)},
		{ID: "1-1", Data: "not json"}, // broken message is acked and skipped
	}

	streamRepo.On("CreateConsumerGroup", mock.Anything, domain.StreamItineraryChanged, "map-render-workers").Return(nil)
	streamRepo.On("ConsumeBatch", mock.Anything, domain.StreamItineraryChanged, "map-render-workers", mock.Anything, 20).
		Return(batch, nil).Once()
	streamRepo.On("ConsumeBatch", mock.Anything, domain.StreamItineraryChanged, "map-render-workers", mock.Anything, 20).
		Return([]domain.StreamMessage{}, nil)
	streamRepo.On("AckMessage", mock.Anything, domain.StreamItineraryChanged, "map-render-workers", mock.Anything).Return(nil)
	cacheRepo.On("InvalidateTrip", mock.Anything, tripID).Return(nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = worker.Start(context.Background())
	}()

	// Both messages end up acknowledged, the trip cache is invalidated
	assert.Eventually(t, func() bool {
		return len(streamRepo.Calls) > 0 &&
			countCalls(streamRepo, "AckMessage") == 2
	}, time.Second, 10*time.Millisecond)

	cacheRepo.AssertCalled(t, "InvalidateTrip", mock.Anything, tripID)

	assert.NoError(t, worker.Stop())
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestRenderWorker_StopsOnContextCancel(t *testing.T) {
	streamRepo := &MockStreamRepository{}
	worker := newWorker(streamRepo, &MockCacheRepository{})

	streamRepo.On("CreateConsumerGroup", mock.Anything, domain.StreamItineraryChanged, "map-render-workers").Return(nil)
	streamRepo.On("ConsumeBatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.StreamMessage{}, nil)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- worker.Start(ctx)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("worker did not observe context cancellation")
	}
}

func countCalls(m *MockStreamRepository, method string) int {
	count := 0
	for _, call := range m.Calls {
		if call.Method == method {
			count++
		}
	}
	return count
}
