// Package errors provides structured errors with stable machine-readable
// codes. Infrastructure failures across the project are reported as
// *StructuredError so callers (CLI, HTTP layer) can map them to exit codes
// and response statuses without string matching.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a class of infrastructure failure.
type ErrorCode string

const (
	// ErrCodeInvalidRequest indicates a malformed request or argument.
	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"
	// ErrCodeUnauthorized indicates missing or rejected credentials.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrCodeNotFound indicates a named resource does not exist.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeMethodNotAllowed indicates an unsupported HTTP method.
	ErrCodeMethodNotAllowed ErrorCode = "METHOD_NOT_ALLOWED"
	// ErrCodeRateLimitExceeded indicates the caller was throttled.
	ErrCodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"
	// ErrCodeUnavailable indicates a dependency is temporarily unavailable.
	ErrCodeUnavailable ErrorCode = "UNAVAILABLE"
	// ErrCodeTimeout indicates an operation exceeded its deadline.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeInternal indicates an unexpected internal failure.
	ErrCodeInternal ErrorCode = "INTERNAL"

	// ErrCodeIOFailure indicates an input resource could not be read or
	// an output resource could not be written.
	ErrCodeIOFailure ErrorCode = "IO_FAILURE"
	// ErrCodeSchemaUnavailable indicates a tabular input carries no usable
	// header, so no schema could be derived.
	ErrCodeSchemaUnavailable ErrorCode = "SCHEMA_UNAVAILABLE"
	// ErrCodeInvalidInput indicates user-supplied data (rule parameters,
	// suite definitions) failed validation.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// StructuredError is an error with a code, an optional cause and optional
// key/value details for diagnostics.
type StructuredError struct {
	Code    ErrorCode
	Message string
	Details map[string]any
	cause   error
}

// Error implements the error interface.
func (e *StructuredError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped cause, if any.
func (e *StructuredError) Unwrap() error {
	return e.cause
}

// New returns a StructuredError with the given code and message.
func New(code ErrorCode, message string) *StructuredError {
	return &StructuredError{Code: code, Message: message}
}

// Newf returns a StructuredError with a formatted message.
func Newf(code ErrorCode, format string, args ...any) *StructuredError {
	return &StructuredError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns a StructuredError wrapping cause. A nil cause behaves like New.
func Wrap(code ErrorCode, message string, cause error) *StructuredError {
	return &StructuredError{Code: code, Message: message, cause: cause}
}

// WrapWithContext returns a StructuredError wrapping cause and carrying the
// given details map.
func WrapWithContext(code ErrorCode, message string, cause error, details map[string]any) *StructuredError {
	return &StructuredError{Code: code, Message: message, Details: details, cause: cause}
}

// WithDetail returns the error with one detail added, allocating the map on
// first use.
func (e *StructuredError) WithDetail(key string, value any) *StructuredError {
	if e.Details == nil {
		e.Details = map[string]any{}
	}
	e.Details[key] = value
	return e
}

// AsStructured extracts a *StructuredError from err's chain.
func AsStructured(err error) (*StructuredError, bool) {
	var se *StructuredError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// CodeOf returns the code of err if it is structured, ErrCodeInternal
// otherwise. A nil err yields the empty code.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	if se, ok := AsStructured(err); ok {
		return se.Code
	}
	return ErrCodeInternal
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code ErrorCode) bool {
	se, ok := AsStructured(err)
	return ok && se.Code == code
}

// IsNotFound reports whether err is a NOT_FOUND structured error.
func IsNotFound(err error) bool {
	return IsCode(err, ErrCodeNotFound)
}
