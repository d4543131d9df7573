package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/tripmap-microservice/internal/domain"
	"github.com/tripmap-microservice/internal/domain/repository"
	apperrors "github.com/tripmap-microservice/internal/pkg/errors"
	"go.uber.org/zap"
)

type itineraryRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewItineraryRepository создает репозиторий поездок и элементов маршрута
func NewItineraryRepository(db *DB) repository.ItineraryRepository {
	return &itineraryRepository{
		db:     db,
		logger: db.logger,
	}
}

// tripRow - строка таблицы trips; themes хранится как text[]
type tripRow struct {
	domain.Trip
	Themes pq.StringArray `db:"themes"`
}

func (r *itineraryRepository) CreateTrip(ctx context.Context, trip *domain.Trip) error {
	if trip.ID == uuid.Nil {
		trip.ID = uuid.New()
	}
	if trip.Status == "" {
		trip.Status = "PLANNING"
	}

	query := `
		INSERT INTO trips (id, title, destination, start_date, end_date, budget, themes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`

	err := r.db.QueryRowxContext(ctx, query,
		trip.ID,
		trip.Title,
		trip.Destination,
		trip.StartDate,
		trip.EndDate,
		trip.Budget,
		pq.Array(trip.Themes),
		trip.Status,
	).Scan(&trip.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to insert trip", zap.Error(err))
		return fmt.Errorf("failed to insert trip: %w", err)
	}

	return nil
}

func (r *itineraryRepository) GetTrip(ctx context.Context, id uuid.UUID) (*domain.Trip, error) {
	query := `
		SELECT id, title, destination, start_date, end_date, budget, themes, status, created_at
		FROM trips
		WHERE id = $1`

	var row tripRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrTripNotFound
		}
		r.logger.Error("Failed to get trip", zap.String("trip_id", id.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}

	trip := row.Trip
	trip.Themes = row.Themes
	return &trip, nil
}

func (r *itineraryRepository) ListTrips(ctx context.Context, limit, offset int) ([]domain.Trip, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, title, destination, start_date, end_date, budget, themes, status, created_at
		FROM trips
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	var rows []tripRow
	if err := r.db.SelectContext(ctx, &rows, query, limit, offset); err != nil {
		r.logger.Error("Failed to list trips", zap.Error(err))
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}

	trips := make([]domain.Trip, 0, len(rows))
	for _, row := range rows {
		trip := row.Trip
		trip.Themes = row.Themes
		trips = append(trips, trip)
	}
	return trips, nil
}

func (r *itineraryRepository) DeleteTrip(ctx context.Context, id uuid.UUID) error {
	// trip_schedules удаляются каскадно по FK
	res, err := r.db.ExecContext(ctx, `DELETE FROM trips WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete trip", zap.String("trip_id", id.String()), zap.Error(err))
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.ErrTripNotFound
	}
	return nil
}

func (r *itineraryRepository) ListItems(ctx context.Context, tripID uuid.UUID) ([]domain.ItineraryItem, error) {
	query := `
		SELECT id, trip_id, day_number, time, place_name, category, description, lat, lon, created_at
		FROM trip_schedules
		WHERE trip_id = $1
		ORDER BY day_number, time, created_at`

	var items []domain.ItineraryItem
	if err := r.db.SelectContext(ctx, &items, query, tripID); err != nil {
		r.logger.Error("Failed to list itinerary items",
			zap.String("trip_id", tripID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list itinerary items: %w", err)
	}
	return items, nil
}

func (r *itineraryRepository) GetItem(ctx context.Context, id uuid.UUID) (*domain.ItineraryItem, error) {
	query := `
		SELECT id, trip_id, day_number, time, place_name, category, description, lat, lon, created_at
		FROM trip_schedules
		WHERE id = $1`

	var item domain.ItineraryItem
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrScheduleNotFound
		}
		r.logger.Error("Failed to get itinerary item", zap.String("item_id", id.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to get itinerary item: %w", err)
	}
	return &item, nil
}

func (r *itineraryRepository) CreateItem(ctx context.Context, item *domain.ItineraryItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}

	query := `
		INSERT INTO trip_schedules (id, trip_id, day_number, time, place_name, category, description, lat, lon)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at`

	err := r.db.QueryRowxContext(ctx, query,
		item.ID,
		item.TripID,
		item.DayNumber,
		item.Time,
		item.PlaceName,
		item.Category,
		item.Description,
		item.Lat,
		item.Lon,
	).Scan(&item.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to insert itinerary item", zap.Error(err))
		return fmt.Errorf("failed to insert itinerary item: %w", err)
	}

	return nil
}

func (r *itineraryRepository) UpdateItem(ctx context.Context, item *domain.ItineraryItem) error {
	query := `
		UPDATE trip_schedules
		SET day_number = $2, time = $3, place_name = $4, category = $5,
		    description = $6, lat = $7, lon = $8
		WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query,
		item.ID,
		item.DayNumber,
		item.Time,
		item.PlaceName,
		item.Category,
		item.Description,
		item.Lat,
		item.Lon,
	)
	if err != nil {
		r.logger.Error("Failed to update itinerary item", zap.String("item_id", item.ID.String()), zap.Error(err))
		return fmt.Errorf("failed to update itinerary item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.ErrScheduleNotFound
	}
	return nil
}

func (r *itineraryRepository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM trip_schedules WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete itinerary item", zap.String("item_id", id.String()), zap.Error(err))
		return fmt.Errorf("failed to delete itinerary item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.ErrScheduleNotFound
	}
	return nil
}
