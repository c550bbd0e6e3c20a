package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
)

// probePrefix marks routes polled by orchestrators; they are not logged.
const probePrefix = "/health/"

// ============================================================
// Logger Middleware
// ============================================================

// Logger returns the access log middleware. Lines carry the request ID set
// by RequestID, so it must be registered after it.
func Logger() fiber.Handler {
	return logger.New(logger.Config{
		Next: func(c fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), probePrefix)
		},
		Format:     "[${time}] ${status} - ${latency} ${method} ${path} | req=${respHeader:X-Request-ID}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	})
}
