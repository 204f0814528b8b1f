package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/caffeinepub/streamhub-2/internal/model"
)

// PrincipalHeader carries the caller's opaque identity, already verified by
// the fronting identity provider. This service never authenticates; it only
// authorizes.
const PrincipalHeader = "X-User-ID"

// CallerPrincipal extracts the caller's principal from the request. Returns
// the zero principal when the header is missing or malformed.
func CallerPrincipal(c fiber.Ctx) model.Principal {
	raw := strings.TrimSpace(c.Get(PrincipalHeader))
	if raw == "" || len(raw) > MaxPrincipalLen {
		return ""
	}
	for _, r := range raw {
		if r < 0x21 || r > 0x7e {
			return ""
		}
	}
	return model.Principal(raw)
}
