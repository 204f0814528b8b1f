package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/caffeinepub/streamhub-2/internal/model"
)

type ReportRepo struct {
	pool *pgxpool.Pool
}

func NewReportRepo(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// File appends a report against a video. Repeat reports from the same
// reporter are all retained — the platform counts raw report volume, not
// distinct reporters.
func (r *ReportRepo) File(ctx context.Context, videoID string, reporter model.Principal, reason string) (*model.Report, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, model.ErrEmptyReason
	}

	var rep model.Report
	err := r.pool.QueryRow(ctx, `
		INSERT INTO reports (video_id, reporter, reason)
		VALUES ($1, $2, $3)
		RETURNING id, video_id, reporter, reason, filed_at`,
		videoID, reporter.String(), reason,
	).Scan(&rep.ID, &rep.VideoID, &rep.Reporter, &rep.Reason, &rep.FiledAt)
	if err != nil {
		return nil, fmt.Errorf("file report: %w: %w", model.ErrStorageFailure, err)
	}
	return &rep, nil
}

// For returns the reports filed against one video, in filing order.
func (r *ReportRepo) For(ctx context.Context, videoID string) ([]model.Report, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, video_id, reporter, reason, filed_at
		FROM reports
		WHERE video_id = $1
		ORDER BY id`, videoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reports := []model.Report{}
	for rows.Next() {
		var rep model.Report
		if err := rows.Scan(&rep.ID, &rep.VideoID, &rep.Reporter, &rep.Reason, &rep.FiledAt); err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}
	return reports, rows.Err()
}

// All returns every report grouped by video. Videos appear in the order
// their first report arrived; reports within a video stay in filing order.
func (r *ReportRepo) All(ctx context.Context) ([]model.VideoReports, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, video_id, reporter, reason, filed_at
		FROM reports
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byVideo := make(map[string]int)
	var grouped []model.VideoReports
	for rows.Next() {
		var rep model.Report
		if err := rows.Scan(&rep.ID, &rep.VideoID, &rep.Reporter, &rep.Reason, &rep.FiledAt); err != nil {
			return nil, err
		}
		idx, ok := byVideo[rep.VideoID]
		if !ok {
			idx = len(grouped)
			byVideo[rep.VideoID] = idx
			grouped = append(grouped, model.VideoReports{VideoID: rep.VideoID})
		}
		grouped[idx].Reports = append(grouped[idx].Reports, rep)
	}
	return grouped, rows.Err()
}

// Clear removes all reports for a video. Clearing a video with no reports
// is a no-op.
func (r *ReportRepo) Clear(ctx context.Context, videoID string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM reports WHERE video_id = $1`, videoID); err != nil {
		return fmt.Errorf("clear reports: %w: %w", model.ErrStorageFailure, err)
	}
	return nil
}

// ClearWithAudit removes a video's reports and appends the matching audit
// entry in one transaction (single-video removal path).
func (r *ReportRepo) ClearWithAudit(ctx context.Context, videoID string, admin model.Principal, actionType model.ActionType, details string) (*model.AdminAction, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("clear reports: %w: %w", model.ErrStorageFailure, err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM reports WHERE video_id = $1`, videoID); err != nil {
		return nil, fmt.Errorf("clear reports: %w: %w", model.ErrStorageFailure, err)
	}

	action, err := insertAction(ctx, tx, admin, actionType, videoID, details)
	if err != nil {
		return nil, fmt.Errorf("clear reports: %w: %w", model.ErrStorageFailure, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("clear reports: %w: %w", model.ErrStorageFailure, err)
	}
	return action, nil
}
