package repository

import (
	"context"

	"github.com/tripmap-microservice/internal/domain"
)

// StreamRepository - работа с Redis Streams
type StreamRepository interface {
	// CreateConsumerGroup создаёт consumer group для стрима
	CreateConsumerGroup(ctx context.Context, stream, group string) error

	// ConsumeBatch читает до count сообщений без блокировки
	ConsumeBatch(ctx context.Context, stream, group, consumer string, count int) ([]domain.StreamMessage, error)

	// AckMessage подтверждает обработку сообщения
	AckMessage(ctx context.Context, stream, group, messageID string) error

	// Publish публикует событие в стрим
	Publish(ctx context.Context, stream string, data []byte) error
}
