package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/caffeinepub/streamhub-2/internal/model"
)

// BulkAction is a content-level action applied to a set of video ids.
type BulkAction string

const (
	BulkRemove  BulkAction = "remove"
	BulkHide    BulkAction = "hide"
	BulkFeature BulkAction = "feature"
)

// AuditType maps a bulk action to its audit log action type.
func (a BulkAction) AuditType() model.ActionType {
	switch a {
	case BulkRemove:
		return model.ActionBulkRemove
	case BulkHide:
		return model.ActionBulkHide
	default:
		return model.ActionBulkFeature
	}
}

// BulkService executes content-level actions over sets of videos,
// best-effort per item.
type BulkService struct {
	content ContentStore
	reports ReportStore
	audit   AuditStore
}

func NewBulkService(content ContentStore, reports ReportStore, audit AuditStore) *BulkService {
	return &BulkService{content: content, reports: reports, audit: audit}
}

// Apply runs the action against every id independently. Ids unknown to the
// content store land in Skipped rather than failing the call. Exactly one
// audit entry is appended per invocation, summarizing counts, so the log
// grows with administrative decisions rather than fan-out size.
func (s *BulkService) Apply(ctx context.Context, action BulkAction, videoIDs []string, admin model.Principal) (*model.BulkResult, error) {
	result := &model.BulkResult{Applied: []string{}, Skipped: []string{}}

	for _, id := range videoIDs {
		ok, err := s.applyOne(ctx, action, id)
		if err != nil {
			log.Printf("bulk %s: %s: %v", action, id, err)
		}
		if err != nil || !ok {
			result.Skipped = append(result.Skipped, id)
			continue
		}

		if action == BulkRemove {
			// The content is gone; its reports no longer point at anything.
			if err := s.reports.Clear(ctx, id); err != nil {
				log.Printf("bulk remove: clear reports for %s: %v", id, err)
			}
		}
		result.Applied = append(result.Applied, id)
	}

	details := fmt.Sprintf("%d applied, %d skipped of %d requested",
		len(result.Applied), len(result.Skipped), len(videoIDs))
	if _, err := s.audit.Append(ctx, admin, action.AuditType(), summarizeIDs(videoIDs), details); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *BulkService) applyOne(ctx context.Context, action BulkAction, videoID string) (bool, error) {
	switch action {
	case BulkRemove:
		return s.content.Delete(ctx, videoID)
	case BulkHide:
		return s.content.SetHidden(ctx, videoID, true)
	case BulkFeature:
		return s.content.SetFeatured(ctx, videoID, true)
	}
	return false, fmt.Errorf("unknown bulk action %q", action)
}

// summarizeIDs keeps the affected-resource field bounded for large batches.
func summarizeIDs(ids []string) string {
	const maxListed = 10
	if len(ids) <= maxListed {
		return strings.Join(ids, ",")
	}
	return fmt.Sprintf("%s,... (%d total)", strings.Join(ids[:maxListed], ","), len(ids))
}
