package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/caffeinepub/streamhub-2/internal/middleware"
	"github.com/caffeinepub/streamhub-2/internal/model"
	"github.com/caffeinepub/streamhub-2/internal/service"
)

type ProfileHandler struct {
	svc *service.ProfileService
}

func NewProfileHandler(svc *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

// Save handles PUT /api/profile — upserts the caller's own profile.
func (h *ProfileHandler) Save(c fiber.Ctx) error {
	caller := middleware.CallerPrincipal(c)
	if caller.IsZero() {
		return missingIdentity(c)
	}

	var req model.UserProfile
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	saved, err := h.svc.Save(c.Context(), caller, req)
	if err != nil {
		return respondError(c, err, "Failed to save profile")
	}
	return c.JSON(saved)
}

// Get handles GET /api/users/:userId/profile
func (h *ProfileHandler) Get(c fiber.Ctx) error {
	principal, errMsg := middleware.ValidatePrincipalParam(c.Params("userId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	profile, err := h.svc.Lookup(c.Context(), model.Principal(principal))
	if err != nil {
		return respondError(c, err, "Failed to look up profile")
	}
	return c.JSON(profile)
}

// Search handles GET /api/users?search=term
func (h *ProfileHandler) Search(c fiber.Ctx) error {
	term, errMsg := middleware.ValidateSearchTerm(fiber.Query[string](c, "search"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	profiles, err := h.svc.Search(c.Context(), term)
	if err != nil {
		return respondError(c, err, "Failed to search users")
	}
	return c.JSON(profiles)
}
