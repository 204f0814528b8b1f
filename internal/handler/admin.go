package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/caffeinepub/streamhub-2/internal/middleware"
	"github.com/caffeinepub/streamhub-2/internal/model"
	"github.com/caffeinepub/streamhub-2/internal/service"
)

// AdminHandler serves the user-standing operations and the audit views.
type AdminHandler struct {
	svc *service.ModerationService
}

func NewAdminHandler(svc *service.ModerationService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// Suspend handles POST /api/admin/users/:userId/suspend
func (h *AdminHandler) Suspend(c fiber.Ctx) error {
	return h.applyStatus(c, model.StatusSuspended)
}

// Ban handles POST /api/admin/users/:userId/ban
func (h *AdminHandler) Ban(c fiber.Ctx) error {
	return h.applyStatus(c, model.StatusBanned)
}

// Restore handles POST /api/admin/users/:userId/restore
func (h *AdminHandler) Restore(c fiber.Ctx) error {
	return h.applyStatus(c, model.StatusActive)
}

func (h *AdminHandler) applyStatus(c fiber.Ctx, target model.UserStatus) error {
	caller := middleware.CallerPrincipal(c)
	if caller.IsZero() {
		return missingIdentity(c)
	}

	subjectRaw, errMsg := middleware.ValidatePrincipalParam(c.Params("userId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	subject := model.Principal(subjectRaw)

	var reason string
	if target != model.StatusActive {
		var req model.ReasonRequest
		if err := c.Bind().JSON(&req); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		}
		reason, errMsg = middleware.ValidateReason(req.Reason)
		if errMsg != "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
		}
	}

	var (
		rec *model.UserStatusRecord
		err error
	)
	switch target {
	case model.StatusSuspended:
		rec, err = h.svc.SuspendUser(c.Context(), caller, subject, reason)
	case model.StatusBanned:
		rec, err = h.svc.BanUser(c.Context(), caller, subject, reason)
	default:
		rec, err = h.svc.RestoreUser(c.Context(), caller, subject)
	}
	if err != nil {
		return respondError(c, err, "Failed to update user status")
	}

	Metrics.ModerationActions.WithLabelValues(string(target)).Inc()
	return c.JSON(rec)
}

// Status handles GET /api/users/:userId/status
func (h *AdminHandler) Status(c fiber.Ctx) error {
	subjectRaw, errMsg := middleware.ValidatePrincipalParam(c.Params("userId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	resp, err := h.svc.UserStatus(c.Context(), model.Principal(subjectRaw))
	if err != nil {
		return respondError(c, err, "Failed to look up user status")
	}
	return c.JSON(resp)
}

// UsersByStatus handles GET /api/admin/users?status=suspended
func (h *AdminHandler) UsersByStatus(c fiber.Ctx) error {
	status, err := model.ParseUserStatus(fiber.Query[string](c, "status"))
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD",
			"status must be one of: active, suspended, banned")
	}

	recs, err := h.svc.UsersByStatus(c.Context(), status)
	if err != nil {
		return respondError(c, err, "Failed to list users")
	}
	if recs == nil {
		recs = []model.UserStatusRecord{}
	}
	return c.JSON(recs)
}

// Activity handles GET /api/admin/activity?limit=N
func (h *AdminHandler) Activity(c fiber.Ctx) error {
	limit := 50
	if raw := fiber.Query[string](c, "limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", "limit must be an integer")
		}
		limit = parsed
	}

	actions, err := h.svc.ActivityLog(c.Context(), middleware.ClampLimit(limit))
	if err != nil {
		return respondError(c, err, "Failed to fetch activity log")
	}
	return c.JSON(actions)
}

// AssignRole handles POST /api/admin/users/:userId/role
func (h *AdminHandler) AssignRole(c fiber.Ctx) error {
	caller := middleware.CallerPrincipal(c)
	if caller.IsZero() {
		return missingIdentity(c)
	}

	subjectRaw, errMsg := middleware.ValidatePrincipalParam(c.Params("userId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	var req model.RoleRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	err := h.svc.AssignRole(c.Context(), caller, model.Principal(subjectRaw), model.UserRole(req.Role))
	if err != nil {
		return respondError(c, err, "Failed to assign role")
	}
	return c.JSON(fiber.Map{"success": true})
}
