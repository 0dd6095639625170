package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shashiranjanraj/kashvi-shop/config"
	"github.com/shashiranjanraj/kashvi-shop/pkg/metrics"
)

// RedisStore is a Store backed by go-redis.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// Connect opens a Redis client from cfg and verifies it with a ping.
func Connect(ctx context.Context, cfg config.RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cache: redis ping: %w", err)
	}
	return NewRedisStore(client, "shop:"), nil
}

// NewRedisStore wraps an existing client; every key is namespaced by prefix.
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) Get(ctx context.Context, key string, dest any) error {
	val, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.CacheMisses.WithLabelValues("redis").Inc()
		return ErrMiss
	}
	if err != nil {
		return fmt.Errorf("cache: redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(val, dest); err != nil {
		return fmt.Errorf("cache: decode %s: %w", key, err)
	}
	metrics.CacheHits.WithLabelValues("redis").Inc()
	return nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: encode %s: %w", key, err)
	}
	return s.client.Set(ctx, s.prefix+key, data, ttl).Err()
}

func (s *RedisStore) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = s.prefix + k
	}
	return s.client.Del(ctx, prefixed...).Err()
}

// Close releases the client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
