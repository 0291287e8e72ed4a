package domain

import (
	"errors"
	"fmt"
)

// ReviewStatus is the shared resolution state for membership requests,
// volunteer applications, task reviews and volunteer profiles.
type ReviewStatus string

const (
	ReviewStatusNew      ReviewStatus = "NEW"
	ReviewStatusAccepted ReviewStatus = "ACCEPTED"
	ReviewStatusRejected ReviewStatus = "REJECTED"
)

// ErrPermissionDenied is returned before any business check when the acting
// user fails the permission predicate for an operation. It is never wrapped
// into a ValidationError and never retried.
var ErrPermissionDenied = errors.New("permission denied")

// ErrNotFound is returned by repositories when a row does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError reports an operation that would violate a consistency
// invariant (duplicate role, last administrator, occupied task, ...). It is
// surfaced to the caller as a user-facing message.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func NewValidationError(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
