package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/shashiranjanraj/kashvi-shop/pkg/metrics"
)

type memoryItem struct {
	data      []byte
	expiresAt time.Time
}

// MemoryStore is an in-process Store. Values round-trip through JSON so
// callers observe the same copy semantics as with Redis.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]memoryItem
	now   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]memoryItem), now: time.Now}
}

func (m *MemoryStore) Get(_ context.Context, key string, dest any) error {
	m.mu.RLock()
	item, ok := m.items[key]
	m.mu.RUnlock()

	if !ok || (!item.expiresAt.IsZero() && m.now().After(item.expiresAt)) {
		metrics.CacheMisses.WithLabelValues("memory").Inc()
		return ErrMiss
	}
	if err := json.Unmarshal(item.data, dest); err != nil {
		return err
	}
	metrics.CacheHits.WithLabelValues("memory").Inc()
	return nil
}

func (m *MemoryStore) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	item := memoryItem{data: data}
	if ttl > 0 {
		item.expiresAt = m.now().Add(ttl)
	}

	m.mu.Lock()
	m.items[key] = item
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Del(_ context.Context, keys ...string) error {
	m.mu.Lock()
	for _, k := range keys {
		delete(m.items, k)
	}
	m.mu.Unlock()
	return nil
}
