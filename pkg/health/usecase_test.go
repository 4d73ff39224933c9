package health_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drelaann/simple-ecommerce-api/pkg/health"
	"github.com/drelaann/simple-ecommerce-api/pkg/health/checkers"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestReady_AllHealthy(t *testing.T) {
	ok := pingFunc(func(context.Context) error { return nil })
	svc := health.NewService(checkers.NewDatabaseChecker("db", ok))
	require.NoError(t, svc.Ready(context.Background()))
}

func TestReady_NamesFailingChecker(t *testing.T) {
	down := errors.New("connection refused")
	ok := pingFunc(func(context.Context) error { return nil })
	bad := pingFunc(func(context.Context) error { return down })

	svc := health.NewService(
		checkers.NewDatabaseChecker("cache", ok),
		checkers.NewDatabaseChecker("sqlite", bad),
	)
	err := svc.Ready(context.Background())
	require.ErrorIs(t, err, down)
	assert.Contains(t, err.Error(), "sqlite")
}

func TestDatabaseChecker_AppliesDeadline(t *testing.T) {
	var hasDeadline bool
	p := pingFunc(func(ctx context.Context) error {
		_, hasDeadline = ctx.Deadline()
		return nil
	})
	require.NoError(t, checkers.NewDatabaseChecker("db", p).Check(context.Background()))
	assert.True(t, hasDeadline)
}
