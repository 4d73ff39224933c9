package presenter

import "github.com/gofiber/fiber/v2"

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, ErrorResponse{Message: message})
}

// Invalid reports request validation failures, one entry per problem.
func Invalid(c *fiber.Ctx, problems []string) error {
	return JSON(c, fiber.StatusBadRequest, ErrorResponse{Message: "validation failed", Details: problems})
}
