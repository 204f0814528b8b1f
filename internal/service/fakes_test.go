package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/caffeinepub/streamhub-2/internal/model"
)

// In-memory store fakes mirroring the repository semantics, including the
// shared audit id counter and the status+audit coupling.

type memAudit struct {
	mu       sync.Mutex
	nextID   int64
	entries  []model.AdminAction
	failNext bool
}

func newMemAudit() *memAudit {
	return &memAudit{nextID: 1}
}

func (m *memAudit) append(admin model.Principal, actionType model.ActionType, resource, details string) *model.AdminAction {
	m.mu.Lock()
	defer m.mu.Unlock()
	a := model.AdminAction{
		ID:               m.nextID,
		Admin:            admin,
		ActionType:       actionType,
		AffectedResource: resource,
		Details:          details,
		CreatedAt:        time.Now(),
	}
	m.nextID++
	m.entries = append(m.entries, a)
	return &a
}

func (m *memAudit) Append(ctx context.Context, admin model.Principal, actionType model.ActionType, resource, details string) (*model.AdminAction, error) {
	if m.failNext {
		m.failNext = false
		return nil, fmt.Errorf("append action: %w", model.ErrStorageFailure)
	}
	return m.append(admin, actionType, resource, details), nil
}

func (m *memAudit) Recent(ctx context.Context, limit int) ([]model.AdminAction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit <= 0 {
		return []model.AdminAction{}, nil
	}
	out := []model.AdminAction{}
	for i := len(m.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.entries[i])
	}
	return out, nil
}

func (m *memAudit) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

type memStatus struct {
	mu    sync.Mutex
	audit *memAudit
	recs  map[model.Principal]model.UserStatusRecord
}

func newMemStatus(audit *memAudit) *memStatus {
	return &memStatus{audit: audit, recs: make(map[model.Principal]model.UserStatusRecord)}
}

func (m *memStatus) Get(ctx context.Context, subject model.Principal) (*model.UserStatusRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.recs[subject]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (m *memStatus) Set(ctx context.Context, subject model.Principal, newStatus model.UserStatus, admin model.Principal, reason string, actionType model.ActionType, details string) (*model.UserStatusRecord, *model.AdminAction, error) {
	if model.RequiresReason(newStatus) && strings.TrimSpace(reason) == "" {
		return nil, nil, model.ErrMissingReason
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	current := model.StatusActive
	if rec, ok := m.recs[subject]; ok {
		current = rec.Status
	}
	if !model.CanTransition(current, newStatus) {
		return nil, nil, fmt.Errorf("%w: %s -> %s", model.ErrInvalidTransition, current, newStatus)
	}

	action := m.audit.append(admin, actionType, subject.String(), details)
	rec := model.UserStatusRecord{
		Subject:     subject,
		Status:      newStatus,
		ActingAdmin: admin,
		Reason:      reason,
		ActionID:    action.ID,
		UpdatedAt:   action.CreatedAt,
	}
	m.recs[subject] = rec
	return &rec, action, nil
}

func (m *memStatus) ListByStatus(ctx context.Context, status model.UserStatus) ([]model.UserStatusRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.UserStatusRecord
	for _, rec := range m.recs {
		if rec.Status == status {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ActionID < out[j].ActionID })
	return out, nil
}

type memReports struct {
	mu      sync.Mutex
	audit   *memAudit
	nextID  int64
	byVideo map[string][]model.Report
	order   []string
}

func newMemReports(audit *memAudit) *memReports {
	return &memReports{audit: audit, nextID: 1, byVideo: make(map[string][]model.Report)}
}

func (m *memReports) File(ctx context.Context, videoID string, reporter model.Principal, reason string) (*model.Report, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, model.ErrEmptyReason
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	rep := model.Report{
		ID:       m.nextID,
		VideoID:  videoID,
		Reporter: reporter,
		Reason:   reason,
		FiledAt:  time.Now(),
	}
	m.nextID++
	if _, ok := m.byVideo[videoID]; !ok {
		m.order = append(m.order, videoID)
	}
	m.byVideo[videoID] = append(m.byVideo[videoID], rep)
	return &rep, nil
}

func (m *memReports) For(ctx context.Context, videoID string) ([]model.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Report{}, m.byVideo[videoID]...), nil
}

func (m *memReports) All(ctx context.Context) ([]model.VideoReports, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.VideoReports
	for _, id := range m.order {
		out = append(out, model.VideoReports{
			VideoID: id,
			Reports: append([]model.Report{}, m.byVideo[id]...),
		})
	}
	return out, nil
}

func (m *memReports) Clear(ctx context.Context, videoID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearLocked(videoID)
	return nil
}

func (m *memReports) ClearWithAudit(ctx context.Context, videoID string, admin model.Principal, actionType model.ActionType, details string) (*model.AdminAction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearLocked(videoID)
	return m.audit.append(admin, actionType, videoID, details), nil
}

func (m *memReports) clearLocked(videoID string) {
	if _, ok := m.byVideo[videoID]; !ok {
		return
	}
	delete(m.byVideo, videoID)
	for i, id := range m.order {
		if id == videoID {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

type memContent struct {
	mu     sync.Mutex
	videos map[string]model.Video
}

func newMemContent(ids ...string) *memContent {
	m := &memContent{videos: make(map[string]model.Video)}
	for _, id := range ids {
		m.videos[id] = model.Video{VideoID: id, UploadedAt: time.Now()}
	}
	return m
}

func (m *memContent) Exists(ctx context.Context, videoID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.videos[videoID]
	return ok, nil
}

func (m *memContent) Delete(ctx context.Context, videoID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.videos[videoID]; !ok {
		return false, nil
	}
	delete(m.videos, videoID)
	return true, nil
}

func (m *memContent) SetHidden(ctx context.Context, videoID string, hidden bool) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.videos[videoID]
	if !ok {
		return false, nil
	}
	v.Hidden = hidden
	m.videos[videoID] = v
	return true, nil
}

func (m *memContent) SetFeatured(ctx context.Context, videoID string, featured bool) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.videos[videoID]
	if !ok {
		return false, nil
	}
	v.Featured = featured
	m.videos[videoID] = v
	return true, nil
}

func (m *memContent) ListFeatured(ctx context.Context) ([]model.Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Video{}
	for _, v := range m.videos {
		if v.Featured && !v.Hidden {
			out = append(out, v)
		}
	}
	return out, nil
}

type memIdentity struct {
	mu    sync.Mutex
	roles map[model.Principal]model.UserRole
}

func newMemIdentity(admins ...model.Principal) *memIdentity {
	m := &memIdentity{roles: make(map[model.Principal]model.UserRole)}
	for _, a := range admins {
		m.roles[a] = model.RoleAdmin
	}
	return m
}

func (m *memIdentity) IsAdmin(ctx context.Context, p model.Principal) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.roles[p] == model.RoleAdmin, nil
}

func (m *memIdentity) AssignRole(ctx context.Context, subject model.Principal, role model.UserRole, grantedBy model.Principal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.roles[subject] = role
	return nil
}

type memSettings struct {
	mu    sync.Mutex
	audit *memAudit
	s     model.PlatformSettings
}

func newMemSettings(audit *memAudit) *memSettings {
	return &memSettings{audit: audit, s: model.PlatformSettings{MaxVideoSizeMB: 500}}
}

func (m *memSettings) Get(ctx context.Context) (*model.PlatformSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.s
	return &s, nil
}

func (m *memSettings) UpdateWithAudit(ctx context.Context, s model.PlatformSettings, admin model.Principal, details string) (*model.AdminAction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s = s
	return m.audit.append(admin, model.ActionUpdateSettings, "platform_settings", details), nil
}

// memStats derives aggregates from the other fakes, like the SQL
// implementation derives them from the tables.
type memStats struct {
	status  *memStatus
	reports *memReports
	content *memContent
}

func (m *memStats) Collect(ctx context.Context) (*model.PlatformStats, error) {
	stats := &model.PlatformStats{}

	m.content.mu.Lock()
	stats.TotalVideos = len(m.content.videos)
	m.content.mu.Unlock()

	m.reports.mu.Lock()
	for _, reps := range m.reports.byVideo {
		stats.TotalReports += len(reps)
	}
	m.reports.mu.Unlock()

	m.status.mu.Lock()
	for _, rec := range m.status.recs {
		switch rec.Status {
		case model.StatusSuspended:
			stats.SuspendedUsers++
		case model.StatusBanned:
			stats.BannedUsers++
		}
	}
	m.status.mu.Unlock()

	return stats, nil
}

// engineFixture bundles an engine wired to fakes.
type engineFixture struct {
	engine   *ModerationService
	audit    *memAudit
	status   *memStatus
	reports  *memReports
	content  *memContent
	identity *memIdentity
}

const (
	adminA  = model.Principal("admin-a")
	adminB  = model.Principal("admin-b")
	userU   = model.Principal("user-u")
	userR   = model.Principal("user-r")
	noAdmin = model.Principal("regular-caller")
)

func newEngineFixture(videoIDs ...string) *engineFixture {
	audit := newMemAudit()
	status := newMemStatus(audit)
	reports := newMemReports(audit)
	content := newMemContent(videoIDs...)
	identity := newMemIdentity(adminA, adminB)
	settings := newMemSettings(audit)
	stats := &memStats{status: status, reports: reports, content: content}

	bulk := NewBulkService(content, reports, audit)
	engine := NewModerationService(status, reports, audit, content, identity, settings, stats, bulk, NewCacheService(""))

	return &engineFixture{
		engine:   engine,
		audit:    audit,
		status:   status,
		reports:  reports,
		content:  content,
		identity: identity,
	}
}
