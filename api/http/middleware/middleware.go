package middleware

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/drelaann/simple-ecommerce-api/pkg/logger"
	"github.com/drelaann/simple-ecommerce-api/pkg/metrics"
)

// RequestLogger tags each request with an id (X-Request-ID, generated when absent),
// puts a scoped logger into the user context and logs the outcome.
func RequestLogger(base *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		rid := c.Get(fiber.HeaderXRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(fiber.HeaderXRequestID, rid)

		l := base.With(zap.String("request_id", rid))
		c.SetUserContext(logger.ToContext(c.UserContext(), l))

		err := c.Next()
		l.Info("http request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", statusOf(c, err)),
			zap.Duration("latency", time.Since(start)),
		)
		return err
	}
}

// Metrics records request counts, latency and in-flight requests per route.
func Metrics(m *metrics.HTTP) fiber.Handler {
	return func(c *fiber.Ctx) error {
		m.Inflight.Inc()
		defer m.Inflight.Dec()
		start := time.Now()

		err := c.Next()

		// route template keeps label cardinality bounded
		path := c.Route().Path
		m.RequestDuration.WithLabelValues(c.Method(), path).Observe(time.Since(start).Seconds())
		m.RequestsTotal.WithLabelValues(c.Method(), path, strconv.Itoa(statusOf(c, err))).Inc()
		return err
	}
}

// statusOf predicts the status the error handler will write for err.
func statusOf(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}
