package store

import (
	"context"
	"encoding/json"
	"fmt"

	"foodfacts/explorer/internal/domain"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the cart snapshot under one fixed Redis key, for
// setups where the cart should survive across machines.
type RedisStore struct {
	redisClient *redis.Client
	key         string
}

func NewRedisStore(redisClient *redis.Client) *RedisStore {
	return &RedisStore{
		redisClient: redisClient,
		key:         "foodcart:cart",
	}
}

func (s *RedisStore) Load(ctx context.Context) ([]domain.LineItem, error) {
	val, err := s.redisClient.Get(ctx, s.key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // no snapshot saved yet
		}
		return nil, fmt.Errorf("failed to get cart snapshot: %w", err)
	}

	var items []domain.LineItem
	if err := json.Unmarshal([]byte(val), &items); err != nil {
		return nil, fmt.Errorf("failed to parse cart snapshot: %w", err)
	}

	return items, nil
}

func (s *RedisStore) Save(ctx context.Context, items []domain.LineItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to serialize cart snapshot: %w", err)
	}

	if err := s.redisClient.Set(ctx, s.key, data, 0).Err(); err != nil { // no expiration
		return fmt.Errorf("failed to set cart snapshot: %w", err)
	}

	return nil
}
