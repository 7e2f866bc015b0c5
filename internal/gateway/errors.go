package gateway

import (
	"errors"
	"fmt"
)

// ErrorKind is the closed set of failure classes a gateway call can produce.
// Callers branch on the kind, never on the message text.
type ErrorKind string

const (
	// KindTransient covers network failures, timeouts and server errors.
	// A retry or a forced reload may succeed.
	KindTransient ErrorKind = "transient"
	// KindValidation covers requests the backend rejected as malformed.
	KindValidation ErrorKind = "validation"
	// KindNotFound covers updates against unknown project ids.
	KindNotFound ErrorKind = "not-found"
)

// Error carries a failure class and a human-readable message across the
// gateway boundary.
type Error struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// Transient wraps err as a transient failure.
func Transient(message string, err error) *Error {
	return &Error{Kind: KindTransient, Message: message, cause: err}
}

// Validation reports a request the backend refused.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// NotFound reports an unknown project id.
func NotFound(id string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("project %s not found", id)}
}

// KindOf classifies err. Errors that did not originate from a gateway are
// treated as transient, which keeps them retryable.
func KindOf(err error) ErrorKind {
	var gerr *Error
	if errors.As(err, &gerr) {
		return gerr.Kind
	}
	return KindTransient
}

// AsError converts err to an *Error, wrapping foreign errors as transient.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var gerr *Error
	if errors.As(err, &gerr) {
		return gerr
	}
	return Transient(err.Error(), nil)
}
