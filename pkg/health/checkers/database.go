package checkers

import (
	"context"
	"time"
)

// Pinger is satisfied by *storage.DB.
type Pinger interface {
	Ping(ctx context.Context) error
}

type DatabaseChecker struct {
	name string
	db   Pinger
}

func NewDatabaseChecker(name string, db Pinger) *DatabaseChecker {
	return &DatabaseChecker{name: name, db: db}
}

func (c *DatabaseChecker) Name() string { return c.name }

func (c *DatabaseChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	return c.db.Ping(ctx)
}
