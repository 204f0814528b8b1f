package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/caffeinepub/streamhub-2/internal/model"
)

// RoleRepo backs the identity collaborator's isAdmin check with a roles
// table. Principals without a row are plain users.
type RoleRepo struct {
	pool *pgxpool.Pool
}

func NewRoleRepo(pool *pgxpool.Pool) *RoleRepo {
	return &RoleRepo{pool: pool}
}

// IsAdmin reports whether a principal holds the admin role.
func (r *RoleRepo) IsAdmin(ctx context.Context, p model.Principal) (bool, error) {
	var one int
	err := r.pool.QueryRow(ctx,
		`SELECT 1 FROM user_roles WHERE principal = $1 AND role = 'admin'`, p.String(),
	).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// AssignRole grants or replaces a principal's role.
func (r *RoleRepo) AssignRole(ctx context.Context, subject model.Principal, role model.UserRole, grantedBy model.Principal) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO user_roles (principal, role, granted_by)
		VALUES ($1, $2, $3)
		ON CONFLICT (principal) DO UPDATE
		SET role = EXCLUDED.role, granted_by = EXCLUDED.granted_by, granted_at = NOW()`,
		subject.String(), string(role), grantedBy.String())
	if err != nil {
		return fmt.Errorf("assign role: %w: %w", model.ErrStorageFailure, err)
	}
	return nil
}

// EnsureAdmins grants the admin role to the bootstrap principals from
// configuration. Existing rows are overwritten so a demoted bootstrap admin
// regains access on restart.
func (r *RoleRepo) EnsureAdmins(ctx context.Context, principals []string) error {
	for _, p := range principals {
		if err := r.AssignRole(ctx, model.Principal(p), model.RoleAdmin, "bootstrap"); err != nil {
			return err
		}
	}
	return nil
}
