package model

import "time"

// ActionType identifies the kind of administrative action recorded in the
// audit log.
type ActionType string

const (
	ActionSuspendUser    ActionType = "SUSPEND_USER"
	ActionBanUser        ActionType = "BAN_USER"
	ActionRestoreUser    ActionType = "RESTORE_USER"
	ActionRemoveVideo    ActionType = "REMOVE_VIDEO"
	ActionHideVideo      ActionType = "HIDE_VIDEO"
	ActionFeatureVideo   ActionType = "FEATURE_VIDEO"
	ActionBulkRemove     ActionType = "BULK_REMOVE"
	ActionBulkHide       ActionType = "BULK_HIDE"
	ActionBulkFeature    ActionType = "BULK_FEATURE"
	ActionUpdateSettings ActionType = "UPDATE_SETTINGS"
	ActionAssignRole     ActionType = "ASSIGN_ROLE"
)

// AdminAction is one immutable audit log entry. Ids are assigned at append
// time from a single counter: strictly increasing, gap-free, starting at 1.
// Entries are never edited or deleted.
type AdminAction struct {
	ID               int64      `json:"id"`
	Admin            Principal  `json:"admin"`
	ActionType       ActionType `json:"actionType"`
	AffectedResource string     `json:"affectedResource"`
	Details          string     `json:"details"`
	CreatedAt        time.Time  `json:"timestamp"`
}
