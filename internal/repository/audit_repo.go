package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/caffeinepub/streamhub-2/internal/model"
)

// querier is the subset of pgx shared by pools and transactions, so the
// audit helpers below can run inside another repo's transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type AuditRepo struct {
	pool *pgxpool.Pool
}

func NewAuditRepo(pool *pgxpool.Pool) *AuditRepo {
	return &AuditRepo{pool: pool}
}

// nextActionID allocates the next audit entry id. The single-row UPDATE is
// the one serialization point for all audit writers: concurrent transactions
// queue on the row lock, and a rollback returns the id slot with the
// transaction, keeping the sequence gap-free.
func nextActionID(ctx context.Context, q querier) (int64, error) {
	var id int64
	err := q.QueryRow(ctx,
		`UPDATE audit_seq SET next_id = next_id + 1 WHERE id = 1 RETURNING next_id - 1`,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("allocate action id: %w", err)
	}
	return id, nil
}

// insertAction appends one audit row within the caller's transaction.
func insertAction(ctx context.Context, q querier, admin model.Principal, actionType model.ActionType, resource, details string) (*model.AdminAction, error) {
	id, err := nextActionID(ctx, q)
	if err != nil {
		return nil, err
	}

	var a model.AdminAction
	err = q.QueryRow(ctx, `
		INSERT INTO admin_actions (id, admin, action_type, affected_resource, details)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, admin, action_type, affected_resource, details, created_at`,
		id, admin.String(), string(actionType), resource, details,
	).Scan(&a.ID, &a.Admin, &a.ActionType, &a.AffectedResource, &a.Details, &a.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert admin action: %w", err)
	}
	return &a, nil
}

// Append records one administrative action in its own transaction.
func (r *AuditRepo) Append(ctx context.Context, admin model.Principal, actionType model.ActionType, resource, details string) (*model.AdminAction, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("append action: %w: %w", model.ErrStorageFailure, err)
	}
	defer tx.Rollback(ctx)

	a, err := insertAction(ctx, tx, admin, actionType, resource, details)
	if err != nil {
		return nil, fmt.Errorf("append action: %w: %w", model.ErrStorageFailure, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("append action: %w: %w", model.ErrStorageFailure, err)
	}
	return a, nil
}

// Recent returns up to limit entries, most-recent-first. A limit of zero
// (or less) yields an empty slice, not an error.
func (r *AuditRepo) Recent(ctx context.Context, limit int) ([]model.AdminAction, error) {
	if limit <= 0 {
		return []model.AdminAction{}, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, admin, action_type, affected_resource, details, created_at
		FROM admin_actions
		ORDER BY id DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	actions := make([]model.AdminAction, 0, limit)
	for rows.Next() {
		var a model.AdminAction
		if err := rows.Scan(&a.ID, &a.Admin, &a.ActionType, &a.AffectedResource, &a.Details, &a.CreatedAt); err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}
	return actions, rows.Err()
}
