package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCartStorage is a Redis implementation of CartStorage.
type RedisCartStorage struct {
	client *redis.Client
	ttl    time.Duration // 0 keeps carts forever
}

// NewRedisCartStorage creates a new instance of RedisCartStorage.
func NewRedisCartStorage(client *redis.Client, ttl time.Duration) *RedisCartStorage {
	return &RedisCartStorage{
		client: client,
		ttl:    ttl,
	}
}

// Get retrieves the value stored under key.
func (s *RedisCartStorage) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get failed: %w", err)
	}
	return v, true, nil
}

// Set stores value under key.
func (s *RedisCartStorage) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}
