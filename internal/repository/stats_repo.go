package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/caffeinepub/streamhub-2/internal/model"
)

type StatsRepo struct {
	pool *pgxpool.Pool
}

func NewStatsRepo(pool *pgxpool.Pool) *StatsRepo {
	return &StatsRepo{pool: pool}
}

// Collect computes the platform aggregates in one round trip, straight from
// the source-of-truth tables. No counter is stored anywhere, so the figures
// cannot drift from the records they summarize.
func (r *StatsRepo) Collect(ctx context.Context) (*model.PlatformStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM user_profiles) AS total_users,
			(SELECT COUNT(*) FROM videos) AS total_videos,
			(SELECT COUNT(*) FROM reports) AS total_reports,
			(SELECT COUNT(*) FROM user_status WHERE status = 'suspended') AS suspended_users,
			(SELECT COUNT(*) FROM user_status WHERE status = 'banned') AS banned_users`

	var stats model.PlatformStats
	err := r.pool.QueryRow(ctx, query).Scan(
		&stats.TotalUsers, &stats.TotalVideos, &stats.TotalReports,
		&stats.SuspendedUsers, &stats.BannedUsers,
	)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
