// Package orm is a thin fluent layer over gorm used by repositories. It adds
// pagination windows and read-through caching on top of an injected *gorm.DB.
package orm

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/kashvi-shop/pkg/cache"
)

// Query wraps a *gorm.DB; every builder call returns a new Query.
type Query struct {
	db    *gorm.DB
	store cache.Store
}

// Use starts a query on db. store may be nil to disable caching.
func Use(db *gorm.DB, store cache.Store) *Query {
	return &Query{db: db, store: store}
}

func (q *Query) with(db *gorm.DB) *Query {
	return &Query{db: db, store: q.store}
}

func (q *Query) Model(v any) *Query {
	return q.with(q.db.Model(v))
}

func (q *Query) Where(query any, args ...any) *Query {
	return q.with(q.db.Where(query, args...))
}

func (q *Query) Order(v any) *Query {
	return q.with(q.db.Order(v))
}

// Window applies offset/limit.
func (q *Query) Window(w Window) *Query {
	return q.with(q.db.Offset(w.Skip).Limit(w.Limit))
}

func (q *Query) Get(dest any) error {
	return q.db.Find(dest).Error
}

func (q *Query) First(dest any) error {
	return q.db.First(dest).Error
}

// Remember loads a single record through the cache under key.
func (q *Query) Remember(ctx context.Context, key string, ttl time.Duration, dest any) error {
	return cache.Remember(ctx, q.store, key, ttl, dest, func() error {
		return q.db.First(dest).Error
	})
}

// IsNotFound reports whether err means the record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// Window is a skip/limit page request.
type Window struct {
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
}

// NewWindow clamps skip to >= 0 and limit to 1..MaxLimit, defaulting to
// DefaultLimit when limit is not positive.
func NewWindow(skip, limit int) Window {
	if skip < 0 {
		skip = 0
	}
	switch {
	case limit <= 0:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}
	return Window{Skip: skip, Limit: limit}
}
