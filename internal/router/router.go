package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/caffeinepub/streamhub-2/internal/handler"
	"github.com/caffeinepub/streamhub-2/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Admin    *handler.AdminHandler
	Report   *handler.ReportHandler
	Video    *handler.VideoHandler
	Stats    *handler.StatsHandler
	Settings *handler.SettingsHandler
	Profile  *handler.ProfileHandler
	Health   *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(handler.MetricsMiddleware())
	app.Use(middleware.NewCORS(corsOrigins))

	// Probes and metrics (no auth, before the API group)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	api := app.Group("/api")

	// Public video surface
	reportLimiter := middleware.NewReportLimiter()
	api.Post("/videos/:videoId/report", h.Report.File, reportLimiter.Handler())
	api.Get("/videos/:videoId/reports", h.Report.ForVideo)
	api.Get("/videos/featured", h.Video.Featured)

	// Stats
	api.Get("/stats", h.Stats.Get)

	// User surface
	api.Get("/users", h.Profile.Search)
	api.Get("/users/:userId/status", h.Admin.Status)
	api.Get("/users/:userId/profile", h.Profile.Get)
	api.Put("/profile", h.Profile.Save)

	// Admin surface. Authorization is enforced by the moderation engine, not
	// the router: every mutating handler passes the caller principal down.
	admin := api.Group("/admin")
	admin.Post("/users/:userId/suspend", h.Admin.Suspend)
	admin.Post("/users/:userId/ban", h.Admin.Ban)
	admin.Post("/users/:userId/restore", h.Admin.Restore)
	admin.Post("/users/:userId/role", h.Admin.AssignRole)
	admin.Get("/users", h.Admin.UsersByStatus)
	admin.Get("/reports", h.Report.All)
	admin.Get("/activity", h.Admin.Activity)
	admin.Delete("/videos/:videoId", h.Video.Remove)
	admin.Post("/videos/bulk-remove", h.Video.BulkRemove)
	admin.Post("/videos/bulk-hide", h.Video.BulkHide)
	admin.Post("/videos/bulk-feature", h.Video.BulkFeature)
	admin.Get("/settings", h.Settings.Get)
	admin.Put("/settings", h.Settings.Update)
}
