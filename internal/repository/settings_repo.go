package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/caffeinepub/streamhub-2/internal/model"
)

type SettingsRepo struct {
	pool *pgxpool.Pool
}

func NewSettingsRepo(pool *pgxpool.Pool) *SettingsRepo {
	return &SettingsRepo{pool: pool}
}

// Get returns the platform settings row (seeded by the schema migration).
func (r *SettingsRepo) Get(ctx context.Context) (*model.PlatformSettings, error) {
	var s model.PlatformSettings
	err := r.pool.QueryRow(ctx, `
		SELECT max_video_size_mb, allowed_categories, moderation_policies
		FROM platform_settings
		WHERE id = 1`,
	).Scan(&s.MaxVideoSizeMB, &s.AllowedCategories, &s.ModerationPolicies)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// UpdateWithAudit replaces the settings row and appends the UPDATE_SETTINGS
// audit entry in one transaction.
func (r *SettingsRepo) UpdateWithAudit(ctx context.Context, s model.PlatformSettings, admin model.Principal, details string) (*model.AdminAction, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("update settings: %w: %w", model.ErrStorageFailure, err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		UPDATE platform_settings
		SET max_video_size_mb = $1, allowed_categories = $2, moderation_policies = $3
		WHERE id = 1`,
		s.MaxVideoSizeMB, s.AllowedCategories, s.ModerationPolicies)
	if err != nil {
		return nil, fmt.Errorf("update settings: %w: %w", model.ErrStorageFailure, err)
	}

	action, err := insertAction(ctx, tx, admin, model.ActionUpdateSettings, "platform_settings", details)
	if err != nil {
		return nil, fmt.Errorf("update settings: %w: %w", model.ErrStorageFailure, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("update settings: %w: %w", model.ErrStorageFailure, err)
	}
	return action, nil
}
