package grading

import (
	"errors"
	"fmt"
)

// ErrorKind identifies a failure class. Kinds are part of the API contract:
// UI and batch-report consumers branch on the kind and show the message verbatim.
type ErrorKind string

const (
	KindNegativeScore         ErrorKind = "NEGATIVE_SCORE"
	KindScoreTooHigh          ErrorKind = "SCORE_TOO_HIGH"
	KindMissingCoreSubject    ErrorKind = "MISSING_CORE_SUBJECT"
	KindInsufficientElectives ErrorKind = "INSUFFICIENT_ELECTIVES"
	KindStudentNotFound       ErrorKind = "STUDENT_NOT_FOUND"
)

// Error is a structured failure: a machine-readable kind plus a pre-formatted,
// user-facing message.
type Error struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (e *Error) Error() string { return e.Message }

// Is matches two *Errors on kind, so errors.Is(err, &Error{Kind: k}) works
// without comparing messages.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Errorf builds a structured error with a formatted message.
func Errorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the kind from an error chain; empty if err is not structured.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
