// Package gormrepo implements the repository contracts on top of gorm. It works
// with any dialect the storage package opens (PostgreSQL over pgx, SQLite).
package gormrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/drelaann/simple-ecommerce-api/pkg/repository"
)

// Base is the entity-agnostic CRUD implementation. Concrete repositories embed it.
type Base[T repository.Entity] struct {
	db *gorm.DB
}

func NewBase[T repository.Entity](db *gorm.DB) *Base[T] {
	return &Base[T]{db: db}
}

// DB returns a handle scoped to ctx.
func (r *Base[T]) DB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *Base[T]) Get(ctx context.Context, id int64) (*T, error) {
	var e T
	if err := r.DB(ctx).First(&e, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %T %d: %w", e, id, err)
	}
	return &e, nil
}

func (r *Base[T]) GetAll(ctx context.Context, page repository.Page) ([]T, error) {
	return r.Find(r.DB(ctx), page)
}

// Find runs q with pagination applied, ordered by primary key.
func (r *Base[T]) Find(q *gorm.DB, page repository.Page) ([]T, error) {
	page = page.Normalize()
	res := make([]T, 0)
	if err := q.Order("id").Offset(page.Skip).Limit(page.Limit).Find(&res).Error; err != nil {
		var zero T
		return nil, fmt.Errorf("list %T: %w", zero, err)
	}
	return res, nil
}

// First returns the first row matching q, or nil.
func (r *Base[T]) First(q *gorm.DB) (*T, error) {
	var e T
	if err := q.Take(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("lookup %T: %w", e, err)
	}
	return &e, nil
}

func (r *Base[T]) Create(ctx context.Context, entity *T) (*T, error) {
	if err := r.DB(ctx).Create(entity).Error; err != nil {
		return nil, fmt.Errorf("create %T: %w", *entity, translateError(err))
	}
	// re-read so store-side defaults are reflected
	return r.Get(ctx, (*entity).GetID())
}

// Update writes only the given columns and returns the refreshed row.
// An empty field set writes nothing.
func (r *Base[T]) Update(ctx context.Context, entity *T, fields repository.Fields) (*T, error) {
	id := (*entity).GetID()
	if len(fields) > 0 {
		// gorm only lets hooks add columns to a plain map
		values := make(map[string]any, len(fields))
		for k, v := range fields {
			values[k] = v
		}
		if err := r.DB(ctx).Model(entity).Updates(values).Error; err != nil {
			return nil, fmt.Errorf("update %T %d: %w", *entity, id, translateError(err))
		}
	}
	return r.Get(ctx, id)
}

func (r *Base[T]) Delete(ctx context.Context, id int64) (bool, error) {
	var zero T
	res := r.DB(ctx).Delete(&zero, id)
	if res.Error != nil {
		return false, fmt.Errorf("delete %T %d: %w", zero, id, res.Error)
	}
	return res.RowsAffected > 0, nil
}

func translateError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return repository.ErrUniqueViolation
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
		return repository.ErrUniqueViolation
	}
	return err
}
