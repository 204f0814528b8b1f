package service

import (
	"context"

	"github.com/caffeinepub/streamhub-2/internal/model"
)

// Store interfaces consumed by the moderation engine. The pgx repositories
// in internal/repository are the production implementations; tests swap in
// in-memory fakes.

// StatusStore is the user status store. Set couples the transition with its
// audit entry: implementations must commit both or neither.
type StatusStore interface {
	Get(ctx context.Context, subject model.Principal) (*model.UserStatusRecord, error)
	Set(ctx context.Context, subject model.Principal, newStatus model.UserStatus, admin model.Principal, reason string, actionType model.ActionType, details string) (*model.UserStatusRecord, *model.AdminAction, error)
	ListByStatus(ctx context.Context, status model.UserStatus) ([]model.UserStatusRecord, error)
}

// ReportStore aggregates user reports per video.
type ReportStore interface {
	File(ctx context.Context, videoID string, reporter model.Principal, reason string) (*model.Report, error)
	For(ctx context.Context, videoID string) ([]model.Report, error)
	All(ctx context.Context) ([]model.VideoReports, error)
	Clear(ctx context.Context, videoID string) error
	ClearWithAudit(ctx context.Context, videoID string, admin model.Principal, actionType model.ActionType, details string) (*model.AdminAction, error)
}

// AuditStore is the append-only administrative action log.
type AuditStore interface {
	Append(ctx context.Context, admin model.Principal, actionType model.ActionType, resource, details string) (*model.AdminAction, error)
	Recent(ctx context.Context, limit int) ([]model.AdminAction, error)
}

// ContentStore is the external content collaborator. Delete/SetHidden/
// SetFeatured return false (not an error) for unknown ids: bulk actions are
// best-effort per item.
type ContentStore interface {
	Exists(ctx context.Context, videoID string) (bool, error)
	Delete(ctx context.Context, videoID string) (bool, error)
	SetHidden(ctx context.Context, videoID string, hidden bool) (bool, error)
	SetFeatured(ctx context.Context, videoID string, featured bool) (bool, error)
	ListFeatured(ctx context.Context) ([]model.Video, error)
}

// IdentityStore is the identity collaborator.
type IdentityStore interface {
	IsAdmin(ctx context.Context, p model.Principal) (bool, error)
	AssignRole(ctx context.Context, subject model.Principal, role model.UserRole, grantedBy model.Principal) error
}

// SettingsStore persists the single platform settings row.
type SettingsStore interface {
	Get(ctx context.Context) (*model.PlatformSettings, error)
	UpdateWithAudit(ctx context.Context, s model.PlatformSettings, admin model.Principal, details string) (*model.AdminAction, error)
}

// StatsSource computes platform aggregates on demand.
type StatsSource interface {
	Collect(ctx context.Context) (*model.PlatformStats, error)
}
