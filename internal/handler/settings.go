package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/caffeinepub/streamhub-2/internal/middleware"
	"github.com/caffeinepub/streamhub-2/internal/model"
	"github.com/caffeinepub/streamhub-2/internal/service"
)

type SettingsHandler struct {
	svc *service.ModerationService
}

func NewSettingsHandler(svc *service.ModerationService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

// Get handles GET /api/admin/settings
func (h *SettingsHandler) Get(c fiber.Ctx) error {
	settings, err := h.svc.Settings(c.Context())
	if err != nil {
		return respondError(c, err, "Failed to fetch settings")
	}
	return c.JSON(settings)
}

// Update handles PUT /api/admin/settings
func (h *SettingsHandler) Update(c fiber.Ctx) error {
	caller := middleware.CallerPrincipal(c)
	if caller.IsZero() {
		return missingIdentity(c)
	}

	var req model.PlatformSettings
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}
	if req.MaxVideoSizeMB <= 0 {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", "maxVideoSizeMB must be positive")
	}

	if err := h.svc.UpdateSettings(c.Context(), caller, req); err != nil {
		return respondError(c, err, "Failed to update settings")
	}
	return c.JSON(req)
}
