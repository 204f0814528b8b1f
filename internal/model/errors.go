package model

import "errors"

// Domain error kinds surfaced by the moderation engine. Callers classify
// failures with errors.Is; handlers translate them to HTTP responses.
var (
	// ErrNotAuthorized: the caller lacks admin rights for an admin-gated
	// operation. Produces no audit entry and no state change.
	ErrNotAuthorized = errors.New("caller is not authorized")

	// ErrInvalidTransition: the status state machine rejects the requested
	// edge (including same-status and banned->suspended).
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrMissingReason: suspend/ban requested without a reason.
	ErrMissingReason = errors.New("a reason is required for this action")

	// ErrEmptyReason: a report was filed with a blank reason.
	ErrEmptyReason = errors.New("report reason must not be empty")

	// ErrNotFound: the operation targets a content id or principal the
	// system has no record of, where one is required.
	ErrNotFound = errors.New("not found")

	// ErrStorageFailure: the durable store could not complete a write.
	// Fatal to the current operation; never retried internally.
	ErrStorageFailure = errors.New("storage failure")
)
