package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/caffeinepub/streamhub-2/internal/service"
)

type StatsHandler struct {
	svc *service.ModerationService
}

func NewStatsHandler(svc *service.ModerationService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

// Get handles GET /api/stats
func (h *StatsHandler) Get(c fiber.Ctx) error {
	stats, err := h.svc.PlatformStats(c.Context())
	if err != nil {
		return respondError(c, err, "Failed to fetch statistics")
	}
	return c.JSON(stats)
}
