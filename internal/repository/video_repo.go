package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/caffeinepub/streamhub-2/internal/model"
)

// VideoRepo is the content-store collaborator as the moderation engine sees
// it: existence checks, deletion, and the hidden/featured flags. Upload and
// playback live elsewhere.
type VideoRepo struct {
	pool *pgxpool.Pool
}

func NewVideoRepo(pool *pgxpool.Pool) *VideoRepo {
	return &VideoRepo{pool: pool}
}

// Exists reports whether a video id is known to the content store.
func (r *VideoRepo) Exists(ctx context.Context, videoID string) (bool, error) {
	var one int
	err := r.pool.QueryRow(ctx, `SELECT 1 FROM videos WHERE video_id = $1`, videoID).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes a video record. Returns false when no such video existed.
func (r *VideoRepo) Delete(ctx context.Context, videoID string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM videos WHERE video_id = $1`, videoID)
	if err != nil {
		return false, fmt.Errorf("delete video: %w: %w", model.ErrStorageFailure, err)
	}
	return tag.RowsAffected() > 0, nil
}

// SetHidden flips the hidden flag. Returns false when no such video existed.
func (r *VideoRepo) SetHidden(ctx context.Context, videoID string, hidden bool) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE videos SET hidden = $2 WHERE video_id = $1`, videoID, hidden)
	if err != nil {
		return false, fmt.Errorf("set hidden: %w: %w", model.ErrStorageFailure, err)
	}
	return tag.RowsAffected() > 0, nil
}

// SetFeatured flips the featured flag. Returns false when no such video existed.
func (r *VideoRepo) SetFeatured(ctx context.Context, videoID string, featured bool) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE videos SET featured = $2 WHERE video_id = $1`, videoID, featured)
	if err != nil {
		return false, fmt.Errorf("set featured: %w: %w", model.ErrStorageFailure, err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListFeatured returns the featured, non-hidden videos, newest first.
func (r *VideoRepo) ListFeatured(ctx context.Context) ([]model.Video, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT video_id, title, description, category, uploader, featured, hidden, views, uploaded_at
		FROM videos
		WHERE featured = TRUE AND hidden = FALSE
		ORDER BY uploaded_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	videos := []model.Video{}
	for rows.Next() {
		var v model.Video
		err := rows.Scan(&v.VideoID, &v.Title, &v.Description, &v.Category,
			&v.Uploader, &v.Featured, &v.Hidden, &v.Views, &v.UploadedAt)
		if err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}
