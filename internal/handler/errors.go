package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5"

	"github.com/caffeinepub/streamhub-2/internal/middleware"
	"github.com/caffeinepub/streamhub-2/internal/model"
)

// respondError translates domain errors into the API error envelope.
// Authorization and validation failures are deterministic and re-issuable;
// storage failures surface as a generic operation-failed signal.
func respondError(c fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, model.ErrNotAuthorized):
		return middleware.ErrorResponse(c, fiber.StatusForbidden, "NOT_AUTHORIZED",
			"Caller is not authorized for this action")
	case errors.Is(err, model.ErrInvalidTransition):
		return middleware.ErrorResponse(c, fiber.StatusConflict, "INVALID_TRANSITION",
			"The requested status transition is not allowed")
	case errors.Is(err, model.ErrMissingReason):
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "MISSING_REASON",
			"A reason is required for this action")
	case errors.Is(err, model.ErrEmptyReason):
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "EMPTY_REASON",
			"Report reason must not be empty")
	case errors.Is(err, model.ErrNotFound), errors.Is(err, pgx.ErrNoRows):
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND",
			"The requested resource does not exist")
	default:
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}

// missingIdentity is the 401 for requests without a usable X-User-ID header.
func missingIdentity(c fiber.Ctx) error {
	return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "MISSING_IDENTITY",
		"A valid X-User-ID header is required")
}
