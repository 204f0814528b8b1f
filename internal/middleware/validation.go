package middleware

import (
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v3"
)

// Field length limits matching database schema expectations.
const (
	MaxVideoIDLen   = 64
	MaxPrincipalLen = 128
	MaxReasonLen    = 500
	MaxSearchLen    = 100
	MaxActivityLog  = 1000
)

// videoIDRe matches content ids: alphanumeric, dash, underscore.
var videoIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateVideoID checks that a video ID is well-formed. Returns the
// normalized id and an empty message, or an error message.
func ValidateVideoID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "videoId is required"
	}
	if len(id) > MaxVideoIDLen {
		return "", "videoId must be at most 64 characters"
	}
	if !videoIDRe.MatchString(id) {
		return "", "videoId contains invalid characters"
	}
	return id, ""
}

// ValidateReason trims a reason and enforces the length cap. Emptiness is a
// domain rule, checked by the engine, not here.
func ValidateReason(reason string) (string, string) {
	reason = strings.TrimSpace(reason)
	if len(reason) > MaxReasonLen {
		return "", "reason must be at most 500 characters"
	}
	return reason, ""
}

// ValidatePrincipalParam checks a principal appearing as a path parameter.
func ValidatePrincipalParam(p string) (string, string) {
	p = strings.TrimSpace(p)
	if p == "" {
		return "", "user id is required"
	}
	if len(p) > MaxPrincipalLen {
		return "", "user id must be at most 128 characters"
	}
	return p, ""
}

// ValidateSearchTerm trims and bounds a search term.
func ValidateSearchTerm(term string) (string, string) {
	term = strings.TrimSpace(term)
	if term == "" {
		return "", "search term is required"
	}
	if len(term) > MaxSearchLen {
		return "", "search term must be at most 100 characters"
	}
	return term, ""
}

// ClampLimit bounds a requested page size. Negative values collapse to zero;
// oversized requests are capped rather than rejected.
func ClampLimit(limit int) int {
	if limit < 0 {
		return 0
	}
	if limit > MaxActivityLog {
		return MaxActivityLog
	}
	return limit
}
