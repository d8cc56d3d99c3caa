// Package rejection holds the typed business rejections returned by the
// review, branch and mailing processors.
package rejection

import (
	"errors"
	"fmt"
)

// Kind classifies a rejection for callers such as the HTTP layer.
type Kind string

const (
	QuotaExceeded    Kind = "quota_exceeded"
	ValidationFailed Kind = "validation_failed"
	NotFound         Kind = "not_found"
	AlreadyReplied   Kind = "already_replied"
	NotEligible      Kind = "not_eligible"
)

// Error is an expected business outcome, not a failure of the system.
// Two Errors match under errors.Is when both Kind and Reason are equal.
type Error struct {
	Kind   Kind
	Reason string
}

func New(kind Kind, reason string) *Error {
	return &Error{Kind: kind, Reason: reason}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind && e.Reason == t.Reason
}

// As extracts the rejection from an error chain.
func As(err error) (*Error, bool) {
	var r *Error
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}

// IsKind reports whether err is a rejection of the given kind.
func IsKind(err error, kind Kind) bool {
	r, ok := As(err)
	return ok && r.Kind == kind
}
