package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/caffeinepub/streamhub-2/internal/model"
)

type ProfileRepo struct {
	pool *pgxpool.Pool
}

func NewProfileRepo(pool *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

// Save upserts a profile for the given principal.
func (r *ProfileRepo) Save(ctx context.Context, p model.UserProfile) (*model.UserProfile, error) {
	var saved model.UserProfile
	err := r.pool.QueryRow(ctx, `
		INSERT INTO user_profiles (principal, username, email, bio)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (principal) DO UPDATE
		SET username = EXCLUDED.username, email = EXCLUDED.email, bio = EXCLUDED.bio
		RETURNING principal, username, email, bio, created_at`,
		p.Principal.String(), p.Username, p.Email, p.Bio,
	).Scan(&saved.Principal, &saved.Username, &saved.Email, &saved.Bio, &saved.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("save profile: %w: %w", model.ErrStorageFailure, err)
	}
	return &saved, nil
}

// Get returns a profile by principal; pgx.ErrNoRows when none exists.
func (r *ProfileRepo) Get(ctx context.Context, principal model.Principal) (*model.UserProfile, error) {
	var p model.UserProfile
	err := r.pool.QueryRow(ctx, `
		SELECT principal, username, email, bio, created_at
		FROM user_profiles
		WHERE principal = $1`, principal.String(),
	).Scan(&p.Principal, &p.Username, &p.Email, &p.Bio, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Search matches profiles by username or email substring.
func (r *ProfileRepo) Search(ctx context.Context, term string) ([]model.UserProfile, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT principal, username, email, bio, created_at
		FROM user_profiles
		WHERE username ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%'
		ORDER BY username
		LIMIT 100`, term)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := []model.UserProfile{}
	for rows.Next() {
		var p model.UserProfile
		if err := rows.Scan(&p.Principal, &p.Username, &p.Email, &p.Bio, &p.CreatedAt); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}
