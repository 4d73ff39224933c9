// Package storagetest opens throwaway migrated SQLite stores for tests.
package storagetest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/drelaann/simple-ecommerce-api/pkg/storage"
)

// NewDB returns a migrated store in t's temp dir, closed when the test ends.
func NewDB(t testing.TB) *storage.DB {
	t.Helper()
	ctx := context.Background()
	db, err := storage.Open(ctx, "sqlite:"+filepath.Join(t.TempDir(), "shop.db"), storage.Options{})
	require.NoError(t, err)
	t.Cleanup(db.Close)

	_, err = db.Migrate(ctx)
	require.NoError(t, err)
	return db
}

// NewGorm is NewDB for callers that only need the gorm handle.
func NewGorm(t testing.TB) *gorm.DB {
	t.Helper()
	return NewDB(t).Gorm
}
