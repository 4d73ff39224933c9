// Package repository holds the storage-agnostic contracts shared by the domain
// packages and the gorm-backed implementations in gormrepo.
package repository

import (
	"context"
	"errors"
)

const (
	DefaultLimit = 100
	MaxLimit     = 100
)

// ErrUniqueViolation is reported when the store rejects a write on a unique column.
var ErrUniqueViolation = errors.New("unique constraint violation")

// Entity is a persisted record addressed by an integer primary key.
type Entity interface {
	GetID() int64
}

// Fields maps column names to new values for a partial update.
// Only the keys present are written.
type Fields map[string]any

// Page selects a window of a listing.
type Page struct {
	Skip  int
	Limit int
}

// Normalize fills defaults: skip below zero becomes 0, a non-positive limit becomes
// DefaultLimit and anything above MaxLimit is capped.
func (p Page) Normalize() Page {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// CRUD is the entity-agnostic contract every concrete repository satisfies.
// Absence is reported as a nil entity (or false for Delete), never as an error.
type CRUD[T Entity] interface {
	Get(ctx context.Context, id int64) (*T, error)
	GetAll(ctx context.Context, page Page) ([]T, error)
	Create(ctx context.Context, entity *T) (*T, error)
	Update(ctx context.Context, entity *T, fields Fields) (*T, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
