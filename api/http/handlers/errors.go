package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/drelaann/simple-ecommerce-api/api/http/presenter"
	"github.com/drelaann/simple-ecommerce-api/pkg/logger"
)

// internalError logs the cause with the request-scoped logger and hides it from the client.
func internalError(c *fiber.Ctx, message string, err error) error {
	logger.From(c.UserContext()).Error(message, zap.Error(err))
	return presenter.Error(c, http.StatusInternalServerError, message)
}
