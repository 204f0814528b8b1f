package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/caffeinepub/streamhub-2/internal/model"
)

func TestBulkRemoveMixedBatch(t *testing.T) {
	f := newEngineFixture("vid-1", "vid-2", "vid-3")
	ctx := context.Background()

	if _, err := f.engine.ReportVideo(ctx, userR, "vid-1", "spam"); err != nil {
		t.Fatalf("report: %v", err)
	}

	result, err := f.engine.BulkRemoveVideos(ctx, adminA, []string{"vid-1", "ghost-1", "vid-3", "ghost-2"})
	if err != nil {
		t.Fatalf("BulkRemoveVideos: %v", err)
	}

	if len(result.Applied) != 2 || result.Applied[0] != "vid-1" || result.Applied[1] != "vid-3" {
		t.Errorf("applied = %v, want [vid-1 vid-3]", result.Applied)
	}
	if len(result.Skipped) != 2 || result.Skipped[0] != "ghost-1" || result.Skipped[1] != "ghost-2" {
		t.Errorf("skipped = %v, want [ghost-1 ghost-2]", result.Skipped)
	}

	if exists, _ := f.content.Exists(ctx, "vid-1"); exists {
		t.Error("vid-1 still exists after bulk remove")
	}
	if exists, _ := f.content.Exists(ctx, "vid-2"); !exists {
		t.Error("vid-2 removed although not in the batch")
	}
	reports, _ := f.engine.VideoReports(ctx, "vid-1")
	if len(reports) != 0 {
		t.Errorf("report count = %d for removed video, want 0", len(reports))
	}

	log, _ := f.engine.ActivityLog(ctx, 10)
	if len(log) != 1 {
		t.Fatalf("log length = %d, want exactly one entry per bulk call", len(log))
	}
	if log[0].ActionType != model.ActionBulkRemove {
		t.Errorf("action type = %s, want BULK_REMOVE", log[0].ActionType)
	}
	if log[0].Details != "2 applied, 2 skipped of 4 requested" {
		t.Errorf("details = %q, want the counts summary", log[0].Details)
	}
}

func TestBulkHideAndFeature(t *testing.T) {
	f := newEngineFixture("vid-1", "vid-2")
	ctx := context.Background()

	if _, err := f.engine.BulkFeatureVideos(ctx, adminA, []string{"vid-1", "vid-2"}); err != nil {
		t.Fatalf("BulkFeatureVideos: %v", err)
	}
	featured, err := f.engine.FeaturedVideos(ctx)
	if err != nil {
		t.Fatalf("FeaturedVideos: %v", err)
	}
	if len(featured) != 2 {
		t.Fatalf("featured count = %d, want 2", len(featured))
	}

	// Hiding removes a video from the public featured listing even though the
	// featured flag stays set.
	if _, err := f.engine.BulkHideVideos(ctx, adminA, []string{"vid-1"}); err != nil {
		t.Fatalf("BulkHideVideos: %v", err)
	}
	featured, _ = f.engine.FeaturedVideos(ctx)
	if len(featured) != 1 || featured[0].VideoID != "vid-2" {
		t.Errorf("featured = %+v after hide, want only vid-2", featured)
	}

	log, _ := f.engine.ActivityLog(ctx, 10)
	if len(log) != 2 {
		t.Fatalf("log length = %d, want 2", len(log))
	}
	if log[0].ActionType != model.ActionBulkHide || log[1].ActionType != model.ActionBulkFeature {
		t.Errorf("log order = [%s, %s], want [BULK_HIDE, BULK_FEATURE]", log[0].ActionType, log[1].ActionType)
	}
}

func TestBulkRequiresAdmin(t *testing.T) {
	f := newEngineFixture("vid-1")
	ctx := context.Background()

	if _, err := f.engine.BulkRemoveVideos(ctx, noAdmin, []string{"vid-1"}); !errors.Is(err, model.ErrNotAuthorized) {
		t.Fatalf("err = %v, want ErrNotAuthorized", err)
	}
	if exists, _ := f.content.Exists(ctx, "vid-1"); !exists {
		t.Error("video removed by unauthorized caller")
	}
	if f.audit.count() != 0 {
		t.Errorf("rejected bulk call appended %d audit entries, want 0", f.audit.count())
	}
}

func TestBulkEmptyBatch(t *testing.T) {
	f := newEngineFixture()
	ctx := context.Background()

	result, err := f.engine.BulkHideVideos(ctx, adminA, []string{})
	if err != nil {
		t.Fatalf("BulkHideVideos: %v", err)
	}
	if len(result.Applied) != 0 || len(result.Skipped) != 0 {
		t.Errorf("result = %+v, want empty applied and skipped", result)
	}
	// The decision to run a bulk action is still audited, even over nothing.
	log, _ := f.engine.ActivityLog(ctx, 10)
	if len(log) != 1 || log[0].Details != "0 applied, 0 skipped of 0 requested" {
		t.Errorf("log = %+v, want one entry with zero counts", log)
	}
}

func TestBulkAuditFailureSurfaces(t *testing.T) {
	f := newEngineFixture("vid-1")
	ctx := context.Background()

	f.audit.failNext = true
	if _, err := f.engine.BulkRemoveVideos(ctx, adminA, []string{"vid-1"}); !errors.Is(err, model.ErrStorageFailure) {
		t.Fatalf("err = %v, want ErrStorageFailure", err)
	}
}

func TestSummarizeIDs(t *testing.T) {
	t.Run("short batch listed in full", func(t *testing.T) {
		got := summarizeIDs([]string{"a", "b", "c"})
		if got != "a,b,c" {
			t.Errorf("summarizeIDs = %q, want %q", got, "a,b,c")
		}
	})

	t.Run("large batch is truncated with a total", func(t *testing.T) {
		ids := make([]string, 25)
		for i := range ids {
			ids[i] = fmt.Sprintf("vid-%d", i)
		}
		got := summarizeIDs(ids)
		if !strings.HasSuffix(got, "(25 total)") {
			t.Errorf("summarizeIDs = %q, want a trailing total", got)
		}
		if strings.Count(got, "vid-") != 10 {
			t.Errorf("summarizeIDs lists %d ids, want 10", strings.Count(got, "vid-"))
		}
	})
}
