//go:build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type ItineraryChangedEvent struct {
	TripID     uuid.UUID  `json:"trip_id"`
	ScheduleID *uuid.UUID `json:"schedule_id,omitempty"`
	ChangeType string     `json:"change_type"`
	OccurredAt time.Time  `json:"occurred_at"`
}

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	tripID := flag.String("trip", "", "Trip ID (random if empty)")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	// Проверка подключения
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	id := uuid.New()
	if *tripID != "" {
		parsed, err := uuid.Parse(*tripID)
		if err != nil {
			log.Fatalf("Invalid trip ID: %v", err)
		}
		id = parsed
	}

	scheduleID := uuid.New()
	event := ItineraryChangedEvent{
		TripID:     id,
		ScheduleID: &scheduleID,
		ChangeType: "updated",
		OccurredAt: time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	// Публикация в стрим
	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: "stream:itinerary:changed",
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("✅ Event published successfully!\n")
	fmt.Printf("   Stream: stream:itinerary:changed\n")
	fmt.Printf("   Message ID: %s\n", result)
	fmt.Printf("   Trip ID: %s\n", event.TripID)
	fmt.Printf("   Change type: %s\n", event.ChangeType)
	fmt.Printf("\nWatch the render worker logs to see the snapshot refresh.\n")
}
