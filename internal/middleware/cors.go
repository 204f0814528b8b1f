package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
)

// NewCORS returns the CORS middleware for the moderation API. The admin
// dashboard is a browser app on a separate origin, so production deployments
// set CORS_ORIGINS to that origin; "*" is the development default.
func NewCORS(corsOrigins string) fiber.Handler {
	cfg := cors.Config{
		AllowOrigins: splitOrigins(corsOrigins),
		AllowMethods: []string{
			fiber.MethodGet,
			fiber.MethodPost,
			fiber.MethodPut,
			fiber.MethodDelete,
			fiber.MethodOptions,
		},
		// X-User-ID carries the caller principal on every authenticated call.
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "X-User-ID"},
		ExposeHeaders: []string{
			"X-RateLimit-Limit",
			"X-RateLimit-Remaining",
			"X-RateLimit-Reset",
		},
		MaxAge: 3600,
	}
	return cors.New(cfg)
}

func splitOrigins(raw string) []string {
	if raw == "" || raw == "*" {
		return []string{"*"}
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
