package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/caffeinepub/streamhub-2/internal/model"
)

type StatusRepo struct {
	pool *pgxpool.Pool
}

func NewStatusRepo(pool *pgxpool.Pool) *StatusRepo {
	return &StatusRepo{pool: pool}
}

// Get returns the status record for a principal, or nil if the principal has
// never been actioned. Unseen principals are implicitly active; no row is
// materialized for mere reads.
func (r *StatusRepo) Get(ctx context.Context, subject model.Principal) (*model.UserStatusRecord, error) {
	var rec model.UserStatusRecord
	err := r.pool.QueryRow(ctx, `
		SELECT subject, status, acting_admin, reason, action_id, updated_at
		FROM user_status
		WHERE subject = $1`, subject.String(),
	).Scan(&rec.Subject, &rec.Status, &rec.ActingAdmin, &rec.Reason, &rec.ActionID, &rec.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Set applies a status transition and appends its audit entry in one
// transaction: neither commits without the other. The FOR UPDATE lock
// linearizes concurrent transitions on the same subject, and the transition
// check runs under that lock so racing admins cannot both apply an edge.
func (r *StatusRepo) Set(ctx context.Context, subject model.Principal, newStatus model.UserStatus, admin model.Principal, reason string, actionType model.ActionType, details string) (*model.UserStatusRecord, *model.AdminAction, error) {
	if model.RequiresReason(newStatus) && strings.TrimSpace(reason) == "" {
		return nil, nil, model.ErrMissingReason
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("set status: %w: %w", model.ErrStorageFailure, err)
	}
	defer tx.Rollback(ctx)

	current := model.StatusActive
	err = tx.QueryRow(ctx,
		`SELECT status FROM user_status WHERE subject = $1 FOR UPDATE`, subject.String(),
	).Scan(&current)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, fmt.Errorf("set status: %w: %w", model.ErrStorageFailure, err)
	}

	if !model.CanTransition(current, newStatus) {
		return nil, nil, fmt.Errorf("%w: %s -> %s", model.ErrInvalidTransition, current, newStatus)
	}

	action, err := insertAction(ctx, tx, admin, actionType, subject.String(), details)
	if err != nil {
		return nil, nil, fmt.Errorf("set status: %w: %w", model.ErrStorageFailure, err)
	}

	var rec model.UserStatusRecord
	err = tx.QueryRow(ctx, `
		INSERT INTO user_status (subject, status, acting_admin, reason, action_id, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (subject) DO UPDATE
		SET status = EXCLUDED.status, acting_admin = EXCLUDED.acting_admin,
		    reason = EXCLUDED.reason, action_id = EXCLUDED.action_id, updated_at = NOW()
		RETURNING subject, status, acting_admin, reason, action_id, updated_at`,
		subject.String(), string(newStatus), admin.String(), reason, action.ID,
	).Scan(&rec.Subject, &rec.Status, &rec.ActingAdmin, &rec.Reason, &rec.ActionID, &rec.UpdatedAt)
	if err != nil {
		return nil, nil, fmt.Errorf("set status: %w: %w", model.ErrStorageFailure, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("set status: %w: %w", model.ErrStorageFailure, err)
	}
	return &rec, action, nil
}

// ListByStatus returns all records currently in the given status, ordered by
// the transition that put them there (oldest first).
func (r *StatusRepo) ListByStatus(ctx context.Context, status model.UserStatus) ([]model.UserStatusRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT subject, status, acting_admin, reason, action_id, updated_at
		FROM user_status
		WHERE status = $1
		ORDER BY action_id`, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []model.UserStatusRecord
	for rows.Next() {
		var rec model.UserStatusRecord
		if err := rows.Scan(&rec.Subject, &rec.Status, &rec.ActingAdmin, &rec.Reason, &rec.ActionID, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
