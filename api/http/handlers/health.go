package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/drelaann/simple-ecommerce-api/pkg/health"
)

// HealthHandler serves the welcome page and the liveness and readiness probes.
type HealthHandler struct {
	svc     health.ReadinessUseCase
	project string
	version string
}

func NewHealthHandler(svc health.ReadinessUseCase, project, version string) *HealthHandler {
	return &HealthHandler{svc: svc, project: project, version: version}
}

// Root greets the caller.
// @Summary Welcome
// @Tags    health
// @Produce json
// @Success 200 {object} map[string]string
// @Router  / [get]
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Welcome to " + h.project,
		"version": h.version,
	})
}

// Health: basic liveness check.
// @Summary Liveness probe
// @Tags    health
// @Produce json
// @Success 200 {object} map[string]string
// @Router  /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
}

// Ready: readiness check with DB ping.
// @Summary Readiness probe
// @Tags    health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router  /ready [get]
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 1*time.Second)
	defer cancel()
	if err := h.svc.Ready(ctx); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":  "not_ready",
			"details": err.Error(),
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ready"})
}
