package render

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/tripmap-microservice/internal/domain"
	"github.com/tripmap-microservice/internal/domain/repository"
	"github.com/tripmap-microservice/internal/usecase"
	"github.com/tripmap-microservice/internal/worker"
	"go.uber.org/zap"
)

const (
	maxBatchSize    = 20                     // максимум сообщений за раз
	emptyQueueSleep = 100 * time.Millisecond // пауза если очередь пуста
)

// RenderWorker обрабатывает события изменения маршрута: сбрасывает
// закешированные снапшоты поездки и прогревает рендер полного маршрута
type RenderWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	cacheRepo    repository.CacheRepository
	renderUC     *usecase.RenderUseCase
	consumerName string
}

// NewRenderWorker создает новый RenderWorker
func NewRenderWorker(
	streamRepo repository.StreamRepository,
	cacheRepo repository.CacheRepository,
	renderUC *usecase.RenderUseCase,
	consumerGroup string,
	logger *zap.Logger,
) *RenderWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	return &RenderWorker{
		BaseWorker:   worker.NewBaseWorker("map-render", consumerGroup, logger),
		streamRepo:   streamRepo,
		cacheRepo:    cacheRepo,
		renderUC:     renderUC,
		consumerName: consumerName,
	}
}

// Start запускает воркер
func (w *RenderWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting RenderWorker (batch mode)",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Int("max_batch_size", maxBatchSize))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamItineraryChanged, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		default:
			processed, err := w.processBatch(ctx)
			if err != nil {
				logger.Error("Failed to process batch", zap.Error(err))
				time.Sleep(time.Second) // пауза при ошибке
				continue
			}

			if processed == 0 {
				time.Sleep(emptyQueueSleep)
			}
		}
	}
}

// processBatch читает и обрабатывает batch сообщений.
// Возвращает количество обработанных сообщений
func (w *RenderWorker) processBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.streamRepo.ConsumeBatch(
		ctx,
		domain.StreamItineraryChanged,
		w.ConsumerGroup(),
		w.consumerName,
		maxBatchSize,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}

	if len(messages) == 0 {
		return 0, nil // очередь пуста
	}

	logger.Info("Processing batch", zap.Int("message_count", len(messages)))

	// Собираем уникальные trip_id: несколько событий одной поездки
	// схлопываются в один проход инвалидации/прогрева
	tripIDs := make(map[uuid.UUID]struct{})
	ackIDs := make([]string, 0, len(messages))

	for _, msg := range messages {
		event, err := w.parseMessage(msg)
		if err != nil {
			logger.Warn("Failed to parse message, skipping",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			// ACK битое сообщение чтобы не застревало
			_ = w.streamRepo.AckMessage(ctx, domain.StreamItineraryChanged, w.ConsumerGroup(), msg.ID)
			continue
		}

		tripIDs[event.TripID] = struct{}{}
		ackIDs = append(ackIDs, msg.ID)
	}

	for tripID := range tripIDs {
		w.refreshTrip(ctx, tripID)
	}

	for _, id := range ackIDs {
		if err := w.streamRepo.AckMessage(ctx, domain.StreamItineraryChanged, w.ConsumerGroup(), id); err != nil {
			logger.Warn("Failed to ack message",
				zap.String("message_id", id),
				zap.Error(err))
		}
	}

	return len(messages), nil
}

// refreshTrip сбрасывает снапшоты поездки и прогревает рендер полного
// маршрута (все дни, с полилиниями). Ошибки не прерывают batch.
func (w *RenderWorker) refreshTrip(ctx context.Context, tripID uuid.UUID) {
	logger := w.Logger()

	if err := w.cacheRepo.InvalidateTrip(ctx, tripID); err != nil {
		logger.Warn("Failed to invalidate trip snapshots",
			zap.String("trip_id", tripID.String()),
			zap.Error(err))
	}

	if _, err := w.renderUC.RenderTrip(ctx, tripID, 0, true); err != nil {
		logger.Warn("Failed to warm render snapshot",
			zap.String("trip_id", tripID.String()),
			zap.Error(err))
		return
	}

	logger.Debug("Trip snapshot refreshed", zap.String("trip_id", tripID.String()))
}

// parseMessage разбирает сообщение стрима в событие
func (w *RenderWorker) parseMessage(msg domain.StreamMessage) (*domain.ItineraryChangedEvent, error) {
	var event domain.ItineraryChangedEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}

	if event.TripID == uuid.Nil {
		return nil, fmt.Errorf("event has empty trip_id")
	}

	return &event, nil
}
