package domain

import (
	"time"

	"github.com/google/uuid"
)

// Stream names (должны совпадать с публикующим сервисом)
const (
	StreamItineraryChanged = "stream:itinerary:changed"
)

// Change types
const (
	ChangeCreated = "created"
	ChangeUpdated = "updated"
	ChangeDeleted = "deleted"
)

// ItineraryChangedEvent - событие изменения маршрута; триггер пересчёта
// геометрии и инвалидации закешированных снапшотов
type ItineraryChangedEvent struct {
	TripID     uuid.UUID  `json:"trip_id"`
	ScheduleID *uuid.UUID `json:"schedule_id,omitempty"`
	ChangeType string     `json:"change_type"`
	OccurredAt time.Time  `json:"occurred_at"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
