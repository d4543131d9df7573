package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/tripmap-microservice/internal/domain"
	"github.com/tripmap-microservice/internal/domain/repository"
	"go.uber.org/zap"
)

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

func (r *cacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	val, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		r.logger.Error("Failed to check cache existence", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("cache exists error: %w", err)
	}

	return val > 0, nil
}

// GetSearchResults получает закешированные результаты поиска мест
func (r *cacheRepository) GetSearchResults(ctx context.Context, query string) ([]domain.PlaceResult, error) {
	data, err := r.Get(ctx, searchKey(query))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil // Cache miss
	}

	var results []domain.PlaceResult
	if err := json.Unmarshal(data, &results); err != nil {
		r.logger.Warn("Failed to unmarshal cached search results", zap.Error(err))
		return nil, nil
	}
	return results, nil
}

// SetSearchResults кеширует результаты поиска мест
func (r *cacheRepository) SetSearchResults(ctx context.Context, query string, results []domain.PlaceResult, ttl time.Duration) error {
	data, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to marshal search results: %w", err)
	}
	return r.Set(ctx, searchKey(query), data, ttl)
}

// GetSnapshot получает закешированный рендер-снапшот
func (r *cacheRepository) GetSnapshot(ctx context.Context, tripID uuid.UUID, day int, showRoute bool) (*domain.RenderSnapshot, error) {
	data, err := r.Get(ctx, snapshotKey(tripID, day, showRoute))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil // Cache miss
	}

	var snapshot domain.RenderSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		r.logger.Warn("Failed to unmarshal cached snapshot", zap.Error(err))
		return nil, nil
	}
	return &snapshot, nil
}

// SetSnapshot кеширует рендер-снапшот
func (r *cacheRepository) SetSnapshot(ctx context.Context, tripID uuid.UUID, day int, showRoute bool, snapshot *domain.RenderSnapshot, ttl time.Duration) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return r.Set(ctx, snapshotKey(tripID, day, showRoute), data, ttl)
}

// InvalidateTrip удаляет все снапшоты поездки (все комбинации day/route)
func (r *cacheRepository) InvalidateTrip(ctx context.Context, tripID uuid.UUID) error {
	pattern := fmt.Sprintf("map:snapshot:%s:*", tripID)

	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			r.logger.Error("Failed to scan snapshot keys", zap.String("pattern", pattern), zap.Error(err))
			return fmt.Errorf("cache scan error: %w", err)
		}

		if len(keys) > 0 {
			if err := r.client.Del(ctx, keys...).Err(); err != nil {
				r.logger.Error("Failed to delete snapshot keys", zap.Error(err))
				return fmt.Errorf("cache delete error: %w", err)
			}
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	r.logger.Debug("Trip snapshots invalidated", zap.String("trip_id", tripID.String()))
	return nil
}

func searchKey(query string) string {
	return fmt.Sprintf("places:search:%s", query)
}

func snapshotKey(tripID uuid.UUID, day int, showRoute bool) string {
	return fmt.Sprintf("map:snapshot:%s:%d:%t", tripID, day, showRoute)
}
