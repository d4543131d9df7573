package usecase_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tripmap-microservice/internal/domain"
	apperrors "github.com/tripmap-microservice/internal/pkg/errors"
	"github.com/tripmap-microservice/internal/usecase"
	"github.com/tripmap-microservice/internal/usecase/dto"
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

func newItineraryUseCase(itineraryRepo *MockItineraryRepository, cacheRepo *MockCacheRepository, streamRepo *MockStreamRepository) *usecase.ItineraryUseCase {
	return usecase.NewItineraryUseCase(itineraryRepo, cacheRepo, streamRepo, zap.NewNop())
}

func TestCreateTrip(t *testing.T) {
	itineraryRepo := &MockItineraryRepository{}
	uc := newItineraryUseCase(itineraryRepo, &MockCacheRepository{}, &MockStreamRepository{})

	req := dto.CreateTripRequest{
		Title:       "Jeju getaway",
		Destination: "Jeju",
		StartDate:   "2026-10-01",
		EndDate:     "2026-10-03",
		Budget:      500000,
		Themes:      []string{"NATURE", "FOOD"},
	}

	itineraryRepo.On("CreateTrip", mock.Anything, mock.Anything).Return(nil)

	trip, err := uc.CreateTrip(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "Jeju getaway", trip.Title)
	assert.Equal(t, "Jeju", trip.Destination)
	itineraryRepo.AssertExpectations(t)
}

func TestCreateTrip_EndBeforeStart(t *testing.T) {
	itineraryRepo := &MockItineraryRepository{}
	uc := newItineraryUseCase(itineraryRepo, &MockCacheRepository{}, &MockStreamRepository{})

	req := dto.CreateTripRequest{
		Title:       "backwards",
		Destination: "Busan",
		StartDate:   "2026-10-05",
		EndDate:     "2026-10-01",
	}

	_, err := uc.CreateTrip(context.Background(), req)

	assert.Error(t, err)
	itineraryRepo.AssertNotCalled(t, "CreateTrip", mock.Anything, mock.Anything)
}

func TestGetTrip_IncludesSchedules(t *testing.T) {
	itineraryRepo := &MockItineraryRepository{}
	uc := newItineraryUseCase(itineraryRepo, &MockCacheRepository{}, &MockStreamRepository{})

	tripID := uuid.New()
	trip := &domain.Trip{ID: tripID, Title: "Seoul weekend"}
	items := threeDayItems()

	itineraryRepo.On("GetTrip", mock.Anything, tripID).Return(trip, nil)
	itineraryRepo.On("ListItems", mock.Anything, tripID).Return(items, nil)

	resp, err := uc.GetTrip(context.Background(), tripID)

	require.NoError(t, err)
	assert.Equal(t, "Seoul weekend", resp.Trip.Title)
	assert.Len(t, resp.Schedules, len(items))
}

func TestGetTrip_NotFound(t *testing.T) {
	itineraryRepo := &MockItineraryRepository{}
	uc := newItineraryUseCase(itineraryRepo, &MockCacheRepository{}, &MockStreamRepository{})

	tripID := uuid.New()
	itineraryRepo.On("GetTrip", mock.Anything, tripID).Return(nil, apperrors.ErrTripNotFound)

	_, err := uc.GetTrip(context.Background(), tripID)

	assert.ErrorIs(t, err, error(apperrors.ErrTripNotFound))
}

func TestCreateSchedule_PublishesChangeEvent(t *testing.T) {
	itineraryRepo := &MockItineraryRepository{}
	cacheRepo := &MockCacheRepository{}
	streamRepo := &MockStreamRepository{}
	uc := newItineraryUseCase(itineraryRepo, cacheRepo, streamRepo)

	tripID := uuid.New()
	itineraryRepo.On("GetTrip", mock.Anything, tripID).Return(&domain.Trip{ID: tripID}, nil)
	itineraryRepo.On("CreateItem", mock.Anything, mock.Anything).Return(nil)
	cacheRepo.On("InvalidateTrip", mock.Anything, tripID).Return(nil)
	streamRepo.On("Publish", mock.Anything, domain.StreamItineraryChanged, mock.Anything).Return(nil)

	req := dto.CreateScheduleRequest{
		DayNumber: 1,
		Time:      "10:00",
		PlaceName: "Gyeongbokgung",
		Category:  "ATTRACTION",
		Lat:       floatPtr(37.5796),
		Lon:       floatPtr(126.977),
	}

	item, err := uc.CreateSchedule(context.Background(), tripID, req)

	require.NoError(t, err)
	assert.Equal(t, tripID, item.TripID)
	assert.Equal(t, "Gyeongbokgung", item.PlaceName)

	// The published event names the trip and the change type
	streamRepo.AssertCalled(t, "Publish", mock.Anything, domain.StreamItineraryChanged,
		mock.MatchedBy(func(data []byte) bool {
			var event domain.ItineraryChangedEvent
			if err := json.Unmarshal(data, &event); err != nil {
				return false
			}
			return event.TripID == tripID && event.ChangeType == domain.ChangeCreated
		}))
	cacheRepo.AssertExpectations(t)
}

func TestCreateSchedule_TripMustExist(t *testing.T) {
	itineraryRepo := &MockItineraryRepository{}
	streamRepo := &MockStreamRepository{}
	uc := newItineraryUseCase(itineraryRepo, &MockCacheRepository{}, streamRepo)

	tripID := uuid.New()
	itineraryRepo.On("GetTrip", mock.Anything, tripID).Return(nil, apperrors.ErrTripNotFound)

	_, err := uc.CreateSchedule(context.Background(), tripID, dto.CreateScheduleRequest{
		DayNumber: 1,
		Time:      "10:00",
		PlaceName: "somewhere",
		Category:  "ATTRACTION",
	})

	assert.Error(t, err)
	streamRepo.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateSchedule_InvalidatesAndPublishes(t *testing.T) {
	itineraryRepo := &MockItineraryRepository{}
	cacheRepo := &MockCacheRepository{}
	streamRepo := &MockStreamRepository{}
	uc := newItineraryUseCase(itineraryRepo, cacheRepo, streamRepo)

	tripID := uuid.New()
	itemID := uuid.New()
	existing := &domain.ItineraryItem{ID: itemID, TripID: tripID, DayNumber: 1, PlaceName: "old name"}

	itineraryRepo.On("GetItem", mock.Anything, itemID).Return(existing, nil)
	itineraryRepo.On("UpdateItem", mock.Anything, mock.Anything).Return(nil)
	cacheRepo.On("InvalidateTrip", mock.Anything, tripID).Return(nil)
	streamRepo.On("Publish", mock.Anything, domain.StreamItineraryChanged, mock.Anything).Return(nil)

	item, err := uc.UpdateSchedule(context.Background(), itemID, dto.UpdateScheduleRequest{
		DayNumber: 2,
		Time:      "14:30",
		PlaceName: "new name",
		Category:  "RESTAURANT",
	})

	require.NoError(t, err)
	assert.Equal(t, 2, item.DayNumber)
	assert.Equal(t, "new name", item.PlaceName)
	assert.Equal(t, domain.CategoryRestaurant, item.Category)

	cacheRepo.AssertExpectations(t)
	streamRepo.AssertExpectations(t)
}

func TestDeleteSchedule_PublishFailureIsNotFatal(t *testing.T) {
	itineraryRepo := &MockItineraryRepository{}
	cacheRepo := &MockCacheRepository{}
	streamRepo := &MockStreamRepository{}
	uc := newItineraryUseCase(itineraryRepo, cacheRepo, streamRepo)

	tripID := uuid.New()
	itemID := uuid.New()

	itineraryRepo.On("GetItem", mock.Anything, itemID).Return(&domain.ItineraryItem{ID: itemID, TripID: tripID}, nil)
	itineraryRepo.On("DeleteItem", mock.Anything, itemID).Return(nil)
	cacheRepo.On("InvalidateTrip", mock.Anything, tripID).Return(nil)
	streamRepo.On("Publish", mock.Anything, domain.StreamItineraryChanged, mock.Anything).
		Return(fmt.Errorf("redis down"))

	// Event publication is best-effort: the delete itself succeeds
	assert.NoError(t, uc.DeleteSchedule(context.Background(), itemID))
}

func TestDeleteTrip_InvalidatesSnapshots(t *testing.T) {
	itineraryRepo := &MockItineraryRepository{}
	cacheRepo := &MockCacheRepository{}
	streamRepo := &MockStreamRepository{}
	uc := newItineraryUseCase(itineraryRepo, cacheRepo, streamRepo)

	tripID := uuid.New()
	itineraryRepo.On("DeleteTrip", mock.Anything, tripID).Return(nil)
	cacheRepo.On("InvalidateTrip", mock.Anything, tripID).Return(nil)
	streamRepo.On("Publish", mock.Anything, domain.StreamItineraryChanged, mock.Anything).Return(nil)

	require.NoError(t, uc.DeleteTrip(context.Background(), tripID))

	cacheRepo.AssertExpectations(t)
}

func TestAttachSelectedPlace(t *testing.T) {
	itineraryRepo := &MockItineraryRepository{}
	cacheRepo := &MockCacheRepository{}
	streamRepo := &MockStreamRepository{}
	uc := newItineraryUseCase(itineraryRepo, cacheRepo, streamRepo)

	tripID := uuid.New()
	itemID := uuid.New()
	existing := &domain.ItineraryItem{ID: itemID, TripID: tripID, PlaceName: "placeholder"}

	itineraryRepo.On("GetItem", mock.Anything, itemID).Return(existing, nil)
	itineraryRepo.On("UpdateItem", mock.Anything, mock.Anything).Return(nil)
	cacheRepo.On("InvalidateTrip", mock.Anything, tripID).Return(nil)
	streamRepo.On("Publish", mock.Anything, domain.StreamItineraryChanged, mock.Anything).Return(nil)

	place := domain.SelectedPlace{
		Name:     "Hallasan",
		Address:  "Jeju",
		Position: domain.Coordinate{Lat: 33.3617, Lon: 126.5292},
	}

	item, err := uc.AttachSelectedPlace(context.Background(), itemID, place)

	require.NoError(t, err)
	assert.Equal(t, "Hallasan", item.PlaceName)
	require.NotNil(t, item.Lat)
	require.NotNil(t, item.Lon)
	assert.Equal(t, 33.3617, *item.Lat)
	assert.Equal(t, 126.5292, *item.Lon)
}
