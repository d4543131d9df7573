package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/tripmap-microservice/internal/domain"
	"github.com/tripmap-microservice/internal/domain/repository"
	"github.com/tripmap-microservice/internal/pkg/errors"
	"github.com/tripmap-microservice/internal/usecase/dto"
	"go.uber.org/zap"
)

// ItineraryUseCase - CRUD поездок и элементов маршрута. Каждое изменение
// маршрута публикует событие в стрим и инвалидирует закешированные
// снапшоты - триггер пересчёта геометрии.
type ItineraryUseCase struct {
	itineraryRepo repository.ItineraryRepository
	cacheRepo     repository.CacheRepository
	streamRepo    repository.StreamRepository
	logger        *zap.Logger
}

// NewItineraryUseCase - создание нового ItineraryUseCase
func NewItineraryUseCase(
	itineraryRepo repository.ItineraryRepository,
	cacheRepo repository.CacheRepository,
	streamRepo repository.StreamRepository,
	logger *zap.Logger,
) *ItineraryUseCase {
	return &ItineraryUseCase{
		itineraryRepo: itineraryRepo,
		cacheRepo:     cacheRepo,
		streamRepo:    streamRepo,
		logger:        logger,
	}
}

// CreateTrip создаёт поездку
func (uc *ItineraryUseCase) CreateTrip(ctx context.Context, req dto.CreateTripRequest) (*domain.Trip, error) {
	trip, err := req.ToTrip()
	if err != nil {
		return nil, errors.ErrInvalidRequest
	}
	if trip.EndDate.Before(trip.StartDate) {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"reason": "end_date is before start_date",
		})
	}

	if err := uc.itineraryRepo.CreateTrip(ctx, trip); err != nil {
		return nil, errors.ErrDatabaseError
	}

	uc.logger.Info("Trip created",
		zap.String("trip_id", trip.ID.String()),
		zap.String("destination", trip.Destination))

	return trip, nil
}

// GetTrip возвращает поездку вместе с элементами маршрута
func (uc *ItineraryUseCase) GetTrip(ctx context.Context, id uuid.UUID) (*dto.TripResponse, error) {
	trip, err := uc.itineraryRepo.GetTrip(ctx, id)
	if err != nil {
		return nil, err
	}

	items, err := uc.itineraryRepo.ListItems(ctx, id)
	if err != nil {
		return nil, errors.ErrDatabaseError
	}

	return &dto.TripResponse{
		Trip:      *trip,
		Schedules: items,
	}, nil
}

// ListTrips возвращает страницу списка поездок
func (uc *ItineraryUseCase) ListTrips(ctx context.Context, limit, offset int) (*dto.TripListResponse, error) {
	trips, err := uc.itineraryRepo.ListTrips(ctx, limit, offset)
	if err != nil {
		return nil, errors.ErrDatabaseError
	}

	return &dto.TripListResponse{
		Trips: trips,
		Total: len(trips),
	}, nil
}

// DeleteTrip удаляет поездку и инвалидирует её снапшоты
func (uc *ItineraryUseCase) DeleteTrip(ctx context.Context, id uuid.UUID) error {
	if err := uc.itineraryRepo.DeleteTrip(ctx, id); err != nil {
		return err
	}

	uc.invalidate(ctx, id)
	uc.publishChange(ctx, id, nil, domain.ChangeDeleted)
	return nil
}

// CreateSchedule добавляет элемент маршрута
func (uc *ItineraryUseCase) CreateSchedule(ctx context.Context, tripID uuid.UUID, req dto.CreateScheduleRequest) (*domain.ItineraryItem, error) {
	// Поездка должна существовать
	if _, err := uc.itineraryRepo.GetTrip(ctx, tripID); err != nil {
		return nil, err
	}

	item := req.ToItem(tripID)
	if err := uc.itineraryRepo.CreateItem(ctx, item); err != nil {
		return nil, errors.ErrDatabaseError
	}

	uc.invalidate(ctx, tripID)
	uc.publishChange(ctx, tripID, &item.ID, domain.ChangeCreated)

	return item, nil
}

// UpdateSchedule изменяет элемент маршрута
func (uc *ItineraryUseCase) UpdateSchedule(ctx context.Context, id uuid.UUID, req dto.UpdateScheduleRequest) (*domain.ItineraryItem, error) {
	item, err := uc.itineraryRepo.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	item.DayNumber = req.DayNumber
	item.Time = req.Time
	item.PlaceName = req.PlaceName
	item.Category = domain.PlaceCategory(req.Category)
	item.Description = req.Description
	item.Lat = req.Lat
	item.Lon = req.Lon

	if err := uc.itineraryRepo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}

	uc.invalidate(ctx, item.TripID)
	uc.publishChange(ctx, item.TripID, &item.ID, domain.ChangeUpdated)

	return item, nil
}

// DeleteSchedule удаляет элемент маршрута
func (uc *ItineraryUseCase) DeleteSchedule(ctx context.Context, id uuid.UUID) error {
	item, err := uc.itineraryRepo.GetItem(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.itineraryRepo.DeleteItem(ctx, id); err != nil {
		return err
	}

	uc.invalidate(ctx, item.TripID)
	uc.publishChange(ctx, item.TripID, &id, domain.ChangeDeleted)
	return nil
}

// AttachSelectedPlace применяет событие "place selected" к элементу
// маршрута: координата и адрес выбранного места попадают в элемент
func (uc *ItineraryUseCase) AttachSelectedPlace(ctx context.Context, itemID uuid.UUID, place domain.SelectedPlace) (*domain.ItineraryItem, error) {
	item, err := uc.itineraryRepo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	lat, lon := place.Position.Lat, place.Position.Lon
	item.Lat = &lat
	item.Lon = &lon
	if place.Name != "" {
		item.PlaceName = place.Name
	}
	if place.Address != "" {
		address := place.Address
		item.Description = &address
	}

	if err := uc.itineraryRepo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}

	uc.invalidate(ctx, item.TripID)
	uc.publishChange(ctx, item.TripID, &item.ID, domain.ChangeUpdated)

	return item, nil
}

// invalidate сбрасывает закешированные снапшоты поездки (best-effort)
func (uc *ItineraryUseCase) invalidate(ctx context.Context, tripID uuid.UUID) {
	if err := uc.cacheRepo.InvalidateTrip(ctx, tripID); err != nil {
		uc.logger.Warn("Failed to invalidate trip snapshots",
			zap.String("trip_id", tripID.String()),
			zap.Error(err))
	}
}

// publishChange публикует событие изменения маршрута (best-effort)
func (uc *ItineraryUseCase) publishChange(ctx context.Context, tripID uuid.UUID, scheduleID *uuid.UUID, changeType string) {
	event := domain.ItineraryChangedEvent{
		TripID:     tripID,
		ScheduleID: scheduleID,
		ChangeType: changeType,
		OccurredAt: time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		uc.logger.Error("Failed to marshal itinerary change event", zap.Error(err))
		return
	}

	if err := uc.streamRepo.Publish(ctx, domain.StreamItineraryChanged, data); err != nil {
		uc.logger.Warn("Failed to publish itinerary change event",
			zap.String("trip_id", tripID.String()),
			zap.Error(err))
	}
}
