package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"

	"github.com/caffeinepub/streamhub-2/internal/config"
	"github.com/caffeinepub/streamhub-2/internal/db"
	"github.com/caffeinepub/streamhub-2/internal/handler"
	"github.com/caffeinepub/streamhub-2/internal/middleware"
	"github.com/caffeinepub/streamhub-2/internal/repository"
	"github.com/caffeinepub/streamhub-2/internal/router"
	"github.com/caffeinepub/streamhub-2/internal/service"
)

func main() {
	cfg := config.Load()
	middleware.InitLogger(cfg.LogLevel, "streamhub-moderation")

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		log.Fatalf("failed to apply schema: %v", err)
	}

	cache := service.NewCacheService(cfg.RedisURL)
	defer cache.Close()

	handler.InitMetrics(pool)

	// Repositories
	statusRepo := repository.NewStatusRepo(pool)
	reportRepo := repository.NewReportRepo(pool)
	auditRepo := repository.NewAuditRepo(pool)
	videoRepo := repository.NewVideoRepo(pool)
	roleRepo := repository.NewRoleRepo(pool)
	profileRepo := repository.NewProfileRepo(pool)
	settingsRepo := repository.NewSettingsRepo(pool)
	statsRepo := repository.NewStatsRepo(pool)

	if err := roleRepo.EnsureAdmins(ctx, cfg.BootstrapAdmins); err != nil {
		log.Fatalf("failed to bootstrap admins: %v", err)
	}

	// Services
	bulkSvc := service.NewBulkService(videoRepo, reportRepo, auditRepo)
	moderationSvc := service.NewModerationService(
		statusRepo, reportRepo, auditRepo, videoRepo,
		roleRepo, settingsRepo, statsRepo, bulkSvc, cache,
	)
	profileSvc := service.NewProfileService(profileRepo)

	app := fiber.New(fiber.Config{
		AppName:      "StreamHub Moderation API",
		ServerHeader: "StreamHub",
	})

	h := &router.Handlers{
		Admin:    handler.NewAdminHandler(moderationSvc),
		Report:   handler.NewReportHandler(moderationSvc),
		Video:    handler.NewVideoHandler(moderationSvc),
		Stats:    handler.NewStatsHandler(moderationSvc),
		Settings: handler.NewSettingsHandler(moderationSvc),
		Profile:  handler.NewProfileHandler(profileSvc),
		Health:   handler.NewHealthHandler(pool, cache.Client()),
	}
	router.Setup(app, h, cfg.CORSOrigins)

	// Graceful shutdown on SIGINT/SIGTERM.
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		log.Println("shutting down")
		_ = app.Shutdown()
	}()

	log.Printf("StreamHub moderation backend starting on :%s (env=%s)", cfg.Port, cfg.Environment)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
