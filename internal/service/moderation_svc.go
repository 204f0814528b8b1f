package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/caffeinepub/streamhub-2/internal/model"
)

// ModerationService is the composition root of the trust and moderation
// engine. It enforces authorization and transition rules, orchestrates the
// stores, and owns all write access to them. Reads are snapshot-consistent;
// writes either complete with their audit entry or not at all.
type ModerationService struct {
	status   StatusStore
	reports  ReportStore
	audit    AuditStore
	content  ContentStore
	identity IdentityStore
	settings SettingsStore
	stats    StatsSource
	bulk     *BulkService
	cache    *CacheService
}

func NewModerationService(status StatusStore, reports ReportStore, audit AuditStore, content ContentStore, identity IdentityStore, settings SettingsStore, stats StatsSource, bulk *BulkService, cache *CacheService) *ModerationService {
	return &ModerationService{
		status:   status,
		reports:  reports,
		audit:    audit,
		content:  content,
		identity: identity,
		settings: settings,
		stats:    stats,
		bulk:     bulk,
		cache:    cache,
	}
}

// requireAdmin rejects the call before any mutation when the caller does not
// hold admin rights. A rejected call leaves no trace in the audit log.
func (s *ModerationService) requireAdmin(ctx context.Context, caller model.Principal) error {
	if caller.IsZero() {
		return model.ErrNotAuthorized
	}
	ok, err := s.identity.IsAdmin(ctx, caller)
	if err != nil {
		return fmt.Errorf("admin check: %w", err)
	}
	if !ok {
		return model.ErrNotAuthorized
	}
	return nil
}

// SuspendUser moves a user to suspended. Requires admin and a reason.
func (s *ModerationService) SuspendUser(ctx context.Context, caller, subject model.Principal, reason string) (*model.UserStatusRecord, error) {
	return s.transition(ctx, caller, subject, model.StatusSuspended, reason, model.ActionSuspendUser)
}

// BanUser moves a user to banned. Requires admin and a reason. Banning is
// allowed from both active and suspended.
func (s *ModerationService) BanUser(ctx context.Context, caller, subject model.Principal, reason string) (*model.UserStatusRecord, error) {
	return s.transition(ctx, caller, subject, model.StatusBanned, reason, model.ActionBanUser)
}

// RestoreUser returns a suspended or banned user to active standing.
func (s *ModerationService) RestoreUser(ctx context.Context, caller, subject model.Principal) (*model.UserStatusRecord, error) {
	return s.transition(ctx, caller, subject, model.StatusActive, "", model.ActionRestoreUser)
}

func (s *ModerationService) transition(ctx context.Context, caller, subject model.Principal, newStatus model.UserStatus, reason string, actionType model.ActionType) (*model.UserStatusRecord, error) {
	if err := s.requireAdmin(ctx, caller); err != nil {
		return nil, err
	}
	if model.RequiresReason(newStatus) && strings.TrimSpace(reason) == "" {
		return nil, model.ErrMissingReason
	}

	details := reason
	if newStatus == model.StatusActive {
		details = "restored to active standing"
	}

	rec, _, err := s.status.Set(ctx, subject, newStatus, caller, reason, actionType, details)
	if err != nil {
		return nil, err
	}

	s.invalidateStats(ctx)
	return rec, nil
}

// UserStatus looks up a principal's standing. Principals with no record are
// reported as active.
func (s *ModerationService) UserStatus(ctx context.Context, subject model.Principal) (*model.StatusResponse, error) {
	rec, err := s.status.Get(ctx, subject)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return &model.StatusResponse{Subject: subject, Status: model.StatusActive}, nil
	}
	return &model.StatusResponse{
		Subject:   rec.Subject,
		Status:    rec.Status,
		Admin:     rec.ActingAdmin,
		Reason:    rec.Reason,
		Timestamp: &rec.UpdatedAt,
	}, nil
}

// UsersByStatus lists the users currently in a status, in the order of the
// transitions that put them there.
func (s *ModerationService) UsersByStatus(ctx context.Context, status model.UserStatus) ([]model.UserStatusRecord, error) {
	return s.status.ListByStatus(ctx, status)
}

// ReportVideo files a report on behalf of any identified caller. Reports are
// user actions, not admin actions, so nothing is written to the audit log.
func (s *ModerationService) ReportVideo(ctx context.Context, reporter model.Principal, videoID, reason string) (*model.Report, error) {
	if reporter.IsZero() {
		return nil, model.ErrNotAuthorized
	}
	if strings.TrimSpace(reason) == "" {
		return nil, model.ErrEmptyReason
	}

	rep, err := s.reports.File(ctx, videoID, reporter, reason)
	if err != nil {
		return nil, err
	}
	s.invalidateStats(ctx)
	return rep, nil
}

// VideoReports returns the reports filed against one video, in filing order.
func (s *ModerationService) VideoReports(ctx context.Context, videoID string) ([]model.Report, error) {
	return s.reports.For(ctx, videoID)
}

// AllReports returns the moderation queue: every report grouped by video,
// videos ordered by first report received.
func (s *ModerationService) AllReports(ctx context.Context) ([]model.VideoReports, error) {
	return s.reports.All(ctx)
}

// RemoveReportedVideo deletes the content, clears its reports, and appends
// one REMOVE_VIDEO audit entry. Requires admin; unknown ids are NotFound.
func (s *ModerationService) RemoveReportedVideo(ctx context.Context, caller model.Principal, videoID string) error {
	if err := s.requireAdmin(ctx, caller); err != nil {
		return err
	}

	deleted, err := s.content.Delete(ctx, videoID)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: video %s", model.ErrNotFound, videoID)
	}

	if _, err := s.reports.ClearWithAudit(ctx, videoID, caller, model.ActionRemoveVideo, "removed reported video"); err != nil {
		return err
	}

	s.invalidateStats(ctx)
	s.invalidateFeatured(ctx)
	return nil
}

// BulkRemoveVideos removes a set of videos, best-effort per item.
func (s *ModerationService) BulkRemoveVideos(ctx context.Context, caller model.Principal, videoIDs []string) (*model.BulkResult, error) {
	return s.applyBulk(ctx, caller, BulkRemove, videoIDs)
}

// BulkHideVideos hides a set of videos, best-effort per item.
func (s *ModerationService) BulkHideVideos(ctx context.Context, caller model.Principal, videoIDs []string) (*model.BulkResult, error) {
	return s.applyBulk(ctx, caller, BulkHide, videoIDs)
}

// BulkFeatureVideos features a set of videos, best-effort per item.
func (s *ModerationService) BulkFeatureVideos(ctx context.Context, caller model.Principal, videoIDs []string) (*model.BulkResult, error) {
	return s.applyBulk(ctx, caller, BulkFeature, videoIDs)
}

func (s *ModerationService) applyBulk(ctx context.Context, caller model.Principal, action BulkAction, videoIDs []string) (*model.BulkResult, error) {
	if err := s.requireAdmin(ctx, caller); err != nil {
		return nil, err
	}

	result, err := s.bulk.Apply(ctx, action, videoIDs, caller)
	if err != nil {
		return nil, err
	}

	s.invalidateStats(ctx)
	s.invalidateFeatured(ctx)
	return result, nil
}

// ActivityLog returns the limit most recent audit entries, newest first.
func (s *ModerationService) ActivityLog(ctx context.Context, limit int) ([]model.AdminAction, error) {
	return s.audit.Recent(ctx, limit)
}

// PlatformStats serves the aggregate figures, cache-aside with a short TTL.
// The cache is advisory only; the stores stay the source of truth.
func (s *ModerationService) PlatformStats(ctx context.Context) (*model.PlatformStats, error) {
	if cached, err := s.cache.GetStats(ctx); err == nil && cached != nil {
		return cached, nil
	}

	stats, err := s.stats.Collect(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetStats(ctx, stats); err != nil {
		log.Printf("cache: set stats error: %v", err)
	}
	return stats, nil
}

// FeaturedVideos returns the featured listing, cache-aside.
func (s *ModerationService) FeaturedVideos(ctx context.Context) ([]model.Video, error) {
	if cached, err := s.cache.GetFeatured(ctx); err == nil && cached != nil {
		return cached, nil
	}

	videos, err := s.content.ListFeatured(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetFeatured(ctx, videos); err != nil {
		log.Printf("cache: set featured error: %v", err)
	}
	return videos, nil
}

// Settings returns the current platform settings.
func (s *ModerationService) Settings(ctx context.Context) (*model.PlatformSettings, error) {
	return s.settings.Get(ctx)
}

// UpdateSettings replaces the platform settings and audits the change.
func (s *ModerationService) UpdateSettings(ctx context.Context, caller model.Principal, settings model.PlatformSettings) error {
	if err := s.requireAdmin(ctx, caller); err != nil {
		return err
	}

	details := fmt.Sprintf("max size %d MB, %d categories", settings.MaxVideoSizeMB, len(settings.AllowedCategories))
	_, err := s.settings.UpdateWithAudit(ctx, settings, caller, details)
	return err
}

// AssignRole grants or replaces a user's platform role and audits the grant.
func (s *ModerationService) AssignRole(ctx context.Context, caller, subject model.Principal, role model.UserRole) error {
	if err := s.requireAdmin(ctx, caller); err != nil {
		return err
	}
	if !model.ValidRoles[role] {
		return fmt.Errorf("%w: unknown role %q", model.ErrNotFound, role)
	}

	if err := s.identity.AssignRole(ctx, subject, role, caller); err != nil {
		return err
	}
	_, err := s.audit.Append(ctx, caller, model.ActionAssignRole, subject.String(), fmt.Sprintf("role set to %s", role))
	return err
}

func (s *ModerationService) invalidateStats(ctx context.Context) {
	if err := s.cache.InvalidateStats(ctx); err != nil {
		log.Printf("cache: invalidate stats error: %v", err)
	}
}

func (s *ModerationService) invalidateFeatured(ctx context.Context) {
	if err := s.cache.InvalidateFeatured(ctx); err != nil {
		log.Printf("cache: invalidate featured error: %v", err)
	}
}
