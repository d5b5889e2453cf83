package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an application error so handlers can map it to an HTTP
// status without inspecting error strings.
type Kind int

const (
	// Validation covers malformed or missing input. Recoverable by the caller.
	Validation Kind = iota + 1
	// Unauthenticated means no identity was supplied where one is required.
	Unauthenticated
	// Permission means the caller is authenticated but not allowed.
	Permission
	// NotFound means a referenced entity does not exist.
	NotFound
	// Conflict means the request collides with existing state (e.g. a
	// duplicate registration).
	Conflict
	// Unexpected covers collaborator failures (store, broker). The wrapped
	// cause is logged server-side and never shown to the caller.
	Unexpected
)

// Error carries a kind, a user-facing message, and an optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New creates an error of the given kind with a formatted message.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an error of the given kind wrapping a cause.
func Wrap(kind Kind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// Validationf is shorthand for New(Validation, ...).
func Validationf(format string, args ...interface{}) *Error {
	return New(Validation, format, args...)
}

// NotFoundf is shorthand for New(NotFound, ...).
func NotFoundf(format string, args ...interface{}) *Error {
	return New(NotFound, format, args...)
}

// KindOf extracts the kind from err, or Unexpected if err is not an *Error.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return Unexpected
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
