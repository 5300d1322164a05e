package repositories

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when no record matches the id or filter.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a write violates a unique index.
	ErrDuplicate = errors.New("record already exists")
)

// Filter is a conjunction of equality conditions keyed by stored field name.
// A value of type In matches any of its elements. The "$or" key takes a []Filter.
type Filter map[string]any

// In matches a field against a set of values.
type In []any

// Fields names the stored fields to replace on update.
type Fields map[string]any

// ListOptions controls List. A zero Limit returns every match.
type ListOptions struct {
	Filter      Filter
	OldestFirst bool
	Skip        int64
	Limit       int64
}

// Store is the persistence contract shared by every entity.
type Store[T any] interface {
	List(ctx context.Context, opts ListOptions) ([]T, error)
	FindOne(ctx context.Context, filter Filter) (*T, error)
	GetByID(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, doc *T) error
	Update(ctx context.Context, id string, fields Fields) (*T, error)
	UpdateWhere(ctx context.Context, filter Filter, fields Fields) (int64, error)
	Delete(ctx context.Context, id string) (*T, error)
	DeleteKeys(ctx context.Context, keys []string) (int64, error)
	Restore(ctx context.Context, docs []T) error
	Count(ctx context.Context, filter Filter) (int64, error)
}

// CounterStore is a Store whose documents carry counters maintained by atomic increments.
type CounterStore[T any] interface {
	Store[T]
	// Increment adds delta to field and reports whether the counter changed. A negative
	// delta that would take the counter below zero leaves it untouched.
	Increment(ctx context.Context, id string, field string, delta int) (bool, error)
}

// SearchStore is a Store that supports case-insensitive substring search.
type SearchStore[T any] interface {
	Store[T]
	Search(ctx context.Context, query string, fields ...string) ([]T, error)
}
