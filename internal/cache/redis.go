package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stemsi/roomgrid-backend/internal/config"
	"github.com/stemsi/roomgrid-backend/internal/ingest"
	"github.com/stemsi/roomgrid-backend/internal/model"
)

// RedisStore caches course sets and legacy inventories in Redis.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore creates a RedisStore. A zero ttl keeps entries until refreshed.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

// GetCourses returns the cached course set of a term and the URL it came from.
func (s *RedisStore) GetCourses(ctx context.Context, termCode string) (*ingest.Result, string, error) {
	data, err := s.rdb.Get(ctx, config.CacheKey.TermCoursesKey(termCode)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, "", ErrMiss
		}
		return nil, "", fmt.Errorf("get courses: %w", err)
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, "", fmt.Errorf("unmarshal courses: %w", err)
	}
	return e.Result, e.Source, nil
}

// SetCourses caches a term's course set.
func (s *RedisStore) SetCourses(ctx context.Context, termCode string, res *ingest.Result, source string) error {
	data, err := json.Marshal(entry{Result: res, Source: source})
	if err != nil {
		return fmt.Errorf("marshal courses: %w", err)
	}
	if err := s.rdb.Set(ctx, config.CacheKey.TermCoursesKey(termCode), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("cache courses: %w", err)
	}
	return nil
}

// GetInventory returns the cached merged inventory of a legacy term set.
func (s *RedisStore) GetInventory(ctx context.Context, termCodes []string) (model.RoomInventory, error) {
	data, err := s.rdb.Get(ctx, config.CacheKey.LegacyInventoryKey(termCodes)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}

	var e inventoryEntry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("unmarshal inventory: %w", err)
	}
	return e.Inventory, nil
}

// SetInventory caches the merged inventory of a legacy term set.
func (s *RedisStore) SetInventory(ctx context.Context, termCodes []string, inv model.RoomInventory) error {
	data, err := json.Marshal(inventoryEntry{Inventory: inv})
	if err != nil {
		return fmt.Errorf("marshal inventory: %w", err)
	}
	return s.rdb.Set(ctx, config.CacheKey.LegacyInventoryKey(termCodes), data, s.ttl).Err()
}

// InvalidateInventories drops every cached legacy inventory.
func (s *RedisStore) InvalidateInventories(ctx context.Context) error {
	iter := s.rdb.Scan(ctx, 0, config.CacheKey.LegacyInventoryPattern(), 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan inventories: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return s.rdb.Del(ctx, keys...).Err()
}

// EnqueueRefresh pushes a term code onto the refresh queue.
func (s *RedisStore) EnqueueRefresh(ctx context.Context, termCode string) error {
	return s.rdb.RPush(ctx, config.WorkerKey.RefreshTermsQueue, termCode).Err()
}
