package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/caffeinepub/streamhub-2/internal/middleware"
	"github.com/caffeinepub/streamhub-2/internal/model"
	"github.com/caffeinepub/streamhub-2/internal/service"
)

// ReportHandler serves report filing and the report queries.
type ReportHandler struct {
	svc *service.ModerationService
}

func NewReportHandler(svc *service.ModerationService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// File handles POST /api/videos/:videoId/report
func (h *ReportHandler) File(c fiber.Ctx) error {
	reporter := middleware.CallerPrincipal(c)
	if reporter.IsZero() {
		return missingIdentity(c)
	}

	videoID, errMsg := middleware.ValidateVideoID(c.Params("videoId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	var req model.ReportRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}
	reason, errMsg := middleware.ValidateReason(req.Reason)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	report, err := h.svc.ReportVideo(c.Context(), reporter, videoID, reason)
	if err != nil {
		return respondError(c, err, "Failed to file report")
	}

	Metrics.ReportsFiled.Inc()
	return c.Status(fiber.StatusCreated).JSON(report)
}

// ForVideo handles GET /api/videos/:videoId/reports
func (h *ReportHandler) ForVideo(c fiber.Ctx) error {
	videoID, errMsg := middleware.ValidateVideoID(c.Params("videoId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	reports, err := h.svc.VideoReports(c.Context(), videoID)
	if err != nil {
		return respondError(c, err, "Failed to fetch reports")
	}
	return c.JSON(reports)
}

// All handles GET /api/admin/reports — the moderation queue.
func (h *ReportHandler) All(c fiber.Ctx) error {
	grouped, err := h.svc.AllReports(c.Context())
	if err != nil {
		return respondError(c, err, "Failed to fetch reports")
	}
	if grouped == nil {
		grouped = []model.VideoReports{}
	}
	return c.JSON(grouped)
}
