package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/drelaann/simple-ecommerce-api/pkg/repository"
)

// parsePage reads skip (>= 0, default 0) and limit (1..100, default 100).
// Out-of-range or malformed values are rejected rather than clamped.
func parsePage(c *fiber.Ctx) (repository.Page, error) {
	page := repository.Page{Skip: 0, Limit: repository.DefaultLimit}
	if v := strings.TrimSpace(c.Query("skip")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return page, fmt.Errorf("skip must be an integer >= 0")
		}
		page.Skip = n
	}
	if v := strings.TrimSpace(c.Query("limit")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > repository.MaxLimit {
			return page, fmt.Errorf("limit must be an integer between 1 and %d", repository.MaxLimit)
		}
		page.Limit = n
	}
	return page, nil
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("id must be a positive integer")
	}
	return id, nil
}
