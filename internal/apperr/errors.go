// File: internal/apperr/errors.go
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the transport layer.
type Kind string

const (
	KindValidation Kind = "VALIDATION"
	KindAuth       Kind = "AUTH"
	KindNotFound   Kind = "NOT_FOUND"
	KindConflict   Kind = "CONFLICT"
	KindUpstream   Kind = "UPSTREAM"
	KindInternal   Kind = "INTERNAL"
)

// Error carries a client-safe Message plus the underlying Cause for logs.
type Error struct {
	Kind      Kind
	Operation string
	Message   string
	Cause     error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s error in %s: %s (caused by: %v)", e.Kind, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s error in %s: %s", e.Kind, e.Operation, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func Validation(operation, msg string) *Error {
	return &Error{Kind: KindValidation, Operation: operation, Message: msg}
}

func Auth(operation, msg string) *Error {
	return &Error{Kind: KindAuth, Operation: operation, Message: msg}
}

func NotFound(operation, msg string) *Error {
	return &Error{Kind: KindNotFound, Operation: operation, Message: msg}
}

func Conflict(operation, msg string) *Error {
	return &Error{Kind: KindConflict, Operation: operation, Message: msg}
}

func Upstream(operation, msg string, cause error) *Error {
	return &Error{Kind: KindUpstream, Operation: operation, Message: msg, Cause: cause}
}

func Internal(operation, msg string, cause error) *Error {
	return &Error{Kind: KindInternal, Operation: operation, Message: msg, Cause: cause}
}

// KindOf reports the Kind of the first *Error in err's chain.
// Errors that carry no Kind are treated as internal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given Kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// MessageOf returns the client-safe message for err.
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Kind != KindInternal {
		return appErr.Message
	}
	return "Internal server error"
}
