// Package domainerrors provides code-tagged errors for the service layer.
//
// Stores return sentinel errors (pkg/platform/sentinel); handlers and
// services translate them into coded errors so the HTTP boundary can map
// deterministically to status codes without string inspection.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies an error for boundary mapping.
type Code string

const (
	CodeInvalidInput       Code = "invalid_input"
	CodeValidation         Code = "validation_failed"
	CodeBadRequest         Code = "bad_request"
	CodeUnauthorized       Code = "unauthorized"
	CodeNotFound           Code = "not_found"
	CodeConflict           Code = "conflict"
	CodeInvariantViolation Code = "invariant_violation"
	CodeTimeout            Code = "timeout"
	CodeRateLimited        Code = "rate_limited"
	CodeInternal           Code = "internal_error"
)

// Error is a code-tagged error. Message is safe to show to API clients for
// non-internal codes; wrapped causes are for logs only.
type Error struct {
	Code    Code
	Message string
	cause   error
}

// New constructs a coded error with a client-safe message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying cause. The cause is
// preserved for errors.Is/As chains but never serialized to clients.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// HasCode reports whether err or any error in its chain carries the code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf returns the code carried by err, or CodeInternal when err is not a
// coded error. Uncoded errors are treated as internal faults at the boundary.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}
