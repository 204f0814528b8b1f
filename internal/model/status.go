package model

import (
	"fmt"
	"time"
)

// UserStatus is a user's trust standing on the platform.
type UserStatus string

const (
	StatusActive    UserStatus = "active"
	StatusSuspended UserStatus = "suspended"
	StatusBanned    UserStatus = "banned"
)

// ParseUserStatus validates a raw status string.
func ParseUserStatus(s string) (UserStatus, error) {
	switch UserStatus(s) {
	case StatusActive, StatusSuspended, StatusBanned:
		return UserStatus(s), nil
	}
	return "", fmt.Errorf("unknown user status %q", s)
}

// CanTransition reports whether the trust state machine defines an edge
// between two statuses. Same-status edges do not exist, and a ban must go
// through restore before a fresh suspension can be applied.
func CanTransition(from, to UserStatus) bool {
	if from == to {
		return false
	}
	if from == StatusBanned && to == StatusSuspended {
		return false
	}
	return true
}

// RequiresReason reports whether entering a status needs a stated reason.
// Restoring to active does not.
func RequiresReason(to UserStatus) bool {
	return to == StatusSuspended || to == StatusBanned
}

// UserStatusRecord is the current standing of a principal that has been
// actioned at least once. A principal with no record is implicitly active;
// the record holds only the latest transition — history lives in the audit log.
type UserStatusRecord struct {
	Subject     Principal  `json:"subject"`
	Status      UserStatus `json:"status"`
	ActingAdmin Principal  `json:"admin"`
	Reason      string     `json:"reason,omitempty"`
	// ActionID is the audit entry id of the transition that produced this
	// record. ListByStatus orders by it.
	ActionID  int64     `json:"-"`
	UpdatedAt time.Time `json:"timestamp"`
}

// StatusResponse is the API response for a user status lookup. Principals
// without a record report active with zero-valued metadata.
type StatusResponse struct {
	Subject   Principal  `json:"subject"`
	Status    UserStatus `json:"status"`
	Admin     Principal  `json:"admin,omitempty"`
	Reason    string     `json:"reason,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// ReasonRequest is the API request body for suspend/ban.
type ReasonRequest struct {
	Reason string `json:"reason"`
}

// RoleRequest is the API request body for role assignment.
type RoleRequest struct {
	Role string `json:"role"`
}
