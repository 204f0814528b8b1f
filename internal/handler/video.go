package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/caffeinepub/streamhub-2/internal/middleware"
	"github.com/caffeinepub/streamhub-2/internal/model"
	"github.com/caffeinepub/streamhub-2/internal/service"
)

// VideoHandler serves the content-level moderation operations.
type VideoHandler struct {
	svc *service.ModerationService
}

func NewVideoHandler(svc *service.ModerationService) *VideoHandler {
	return &VideoHandler{svc: svc}
}

// Remove handles DELETE /api/admin/videos/:videoId
func (h *VideoHandler) Remove(c fiber.Ctx) error {
	caller := middleware.CallerPrincipal(c)
	if caller.IsZero() {
		return missingIdentity(c)
	}

	videoID, errMsg := middleware.ValidateVideoID(c.Params("videoId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	if err := h.svc.RemoveReportedVideo(c.Context(), caller, videoID); err != nil {
		return respondError(c, err, "Failed to remove video")
	}

	Metrics.ModerationActions.WithLabelValues("remove_video").Inc()
	return c.JSON(fiber.Map{"success": true})
}

// BulkRemove handles POST /api/admin/videos/bulk-remove
func (h *VideoHandler) BulkRemove(c fiber.Ctx) error {
	return h.bulk(c, service.BulkRemove)
}

// BulkHide handles POST /api/admin/videos/bulk-hide
func (h *VideoHandler) BulkHide(c fiber.Ctx) error {
	return h.bulk(c, service.BulkHide)
}

// BulkFeature handles POST /api/admin/videos/bulk-feature
func (h *VideoHandler) BulkFeature(c fiber.Ctx) error {
	return h.bulk(c, service.BulkFeature)
}

func (h *VideoHandler) bulk(c fiber.Ctx, action service.BulkAction) error {
	caller := middleware.CallerPrincipal(c)
	if caller.IsZero() {
		return missingIdentity(c)
	}

	var req model.BulkRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}
	if len(req.VideoIDs) == 0 {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "MISSING_FIELDS", "videoIds is required")
	}
	for _, id := range req.VideoIDs {
		if _, errMsg := middleware.ValidateVideoID(id); errMsg != "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
		}
	}

	var (
		result *model.BulkResult
		err    error
	)
	switch action {
	case service.BulkRemove:
		result, err = h.svc.BulkRemoveVideos(c.Context(), caller, req.VideoIDs)
	case service.BulkHide:
		result, err = h.svc.BulkHideVideos(c.Context(), caller, req.VideoIDs)
	default:
		result, err = h.svc.BulkFeatureVideos(c.Context(), caller, req.VideoIDs)
	}
	if err != nil {
		return respondError(c, err, "Failed to apply bulk action")
	}

	Metrics.BulkItems.WithLabelValues(string(action), "applied").Add(float64(len(result.Applied)))
	Metrics.BulkItems.WithLabelValues(string(action), "skipped").Add(float64(len(result.Skipped)))
	return c.JSON(result)
}

// Featured handles GET /api/videos/featured
func (h *VideoHandler) Featured(c fiber.Ctx) error {
	videos, err := h.svc.FeaturedVideos(c.Context())
	if err != nil {
		return respondError(c, err, "Failed to fetch featured videos")
	}
	return c.JSON(videos)
}
