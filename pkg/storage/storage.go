// Package storage opens the relational store behind the repositories and applies
// schema migrations. PostgreSQL runs on a pgx pool; SQLite is the file-based default.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/drelaann/simple-ecommerce-api/migrations"
	"github.com/drelaann/simple-ecommerce-api/pkg/storage/postgres"
	"github.com/drelaann/simple-ecommerce-api/pkg/storage/sqlite"
)

type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

var ErrUnsupportedURL = errors.New("unsupported database url")

// Options tune the connection.
type Options struct {
	MaxConns int32
	// Debug logs every SQL statement.
	Debug bool
}

// DB is an open store.
type DB struct {
	Gorm    *gorm.DB
	Dialect Dialect

	sql  *sql.DB
	pool *pgxpool.Pool
}

// ParseURL splits a database URL into dialect and driver DSN.
// Accepted forms: postgres://..., postgresql://..., sqlite:path, sqlite:///relative/path,
// sqlite:////absolute/path.
func ParseURL(url string) (Dialect, string, error) {
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return Postgres, url, nil
	case strings.HasPrefix(url, "sqlite:"):
		path := strings.TrimPrefix(url, "sqlite:")
		if strings.HasPrefix(path, "//") {
			path = strings.TrimPrefix(path[2:], "/")
		}
		if path == "" {
			return "", "", fmt.Errorf("%w: empty sqlite path", ErrUnsupportedURL)
		}
		return SQLite, path, nil
	default:
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedURL, url)
	}
}

// Open connects to the store named by url.
func Open(ctx context.Context, url string, opts Options) (*DB, error) {
	dialect, dsn, err := ParseURL(url)
	if err != nil {
		return nil, err
	}
	cfg := &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	}
	if opts.Debug {
		cfg.Logger = gormlogger.Default.LogMode(gormlogger.Info)
	}

	out := &DB{Dialect: dialect}
	switch dialect {
	case Postgres:
		pool, err := postgres.Connect(ctx, dsn, opts.MaxConns)
		if err != nil {
			return nil, err
		}
		out.pool = pool
		out.Gorm, err = postgres.Open(pool, cfg)
		if err != nil {
			pool.Close()
			return nil, err
		}
	case SQLite:
		out.Gorm, err = sqlite.Open(dsn, cfg)
		if err != nil {
			return nil, err
		}
	}

	out.sql, err = out.Gorm.DB()
	if err != nil {
		out.Close()
		return nil, err
	}
	return out, nil
}

// Ping checks the store is reachable.
func (d *DB) Ping(ctx context.Context) error {
	if d.pool != nil {
		return d.pool.Ping(ctx)
	}
	return d.sql.PingContext(ctx)
}

// Migrate applies pending migrations for the dialect and returns the versions applied.
func (d *DB) Migrate(ctx context.Context) ([]int64, error) {
	fsys, err := fs.Sub(migrations.FS, string(d.Dialect))
	if err != nil {
		return nil, err
	}
	gooseDialect := goose.DialectPostgres
	if d.Dialect == SQLite {
		gooseDialect = goose.DialectSQLite3
	}
	provider, err := goose.NewProvider(gooseDialect, d.sql, fsys)
	if err != nil {
		return nil, fmt.Errorf("goose provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return nil, fmt.Errorf("migrate %s: %w", d.Dialect, err)
	}
	applied := make([]int64, 0, len(results))
	for _, r := range results {
		applied = append(applied, r.Source.Version)
	}
	return applied, nil
}

func (d *DB) Close() {
	if d.sql != nil {
		_ = d.sql.Close()
	}
	if d.pool != nil {
		d.pool.Close()
	}
}

// SQL is the database/sql handle under gorm, for pool statistics.
func (d *DB) SQL() *sql.DB { return d.sql }
