// Package cache stores JSON-encoded values under string keys.
//
// Two drivers exist: RedisStore for shared deployments and MemoryStore for
// single-process runs and tests. Both satisfy Store.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache: miss")

// Store is a TTL key/value cache of JSON-encodable values.
type Store interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Remember returns the cached value for key, or calls load, caches its
// result for ttl and returns it. Cache failures never fail the call.
func Remember(ctx context.Context, s Store, key string, ttl time.Duration, dest any, load func() error) error {
	if s != nil {
		if err := s.Get(ctx, key, dest); err == nil {
			return nil
		}
	}
	if err := load(); err != nil {
		return err
	}
	if s != nil {
		_ = s.Set(ctx, key, dest, ttl)
	}
	return nil
}
