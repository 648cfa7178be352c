package middleware

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"blogfront/internal/logger"
)

// ErrorHandler is the app-level fiber error handler; it logs the error
// and answers with a plain status-text body
func ErrorHandler(c *fiber.Ctx, err error) error {
	// Default status code
	code := fiber.StatusInternalServerError

	// Check if it's a fiber error
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	// Log the error
	logger.Get().Error().
		Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", code).
		Msg("HTTP error")

	return c.Status(code).SendString(http.StatusText(code))
}
