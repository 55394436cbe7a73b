// Package apperrors defines the application error types and exit codes. It
// separates user configuration errors, request validation errors and
// isolation failures, and keeps the underlying cause reachable through
// errors.Is and errors.As.
package apperrors

import "fmt"

// Application exit codes.
const (
	ExitSuccess       = 0   // Successful execution.
	ExitErrorGeneric  = 1   // Generic failure, including exhausted precision.
	ExitErrorTimeout  = 2   // The isolation timed out.
	ExitErrorConfig   = 4   // Invalid configuration or polynomial.
	ExitErrorCanceled = 130 // Canceled, e.g. by SIGINT.
)

// ConfigError is a user configuration error, such as an invalid flag value
// or a malformed polynomial.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// IsolationError is a failed isolation of one polynomial. It keeps the
// polynomial's printed form for the error report.
type IsolationError struct {
	// Poly is the polynomial as printed to the user.
	Poly string
	// Cause is the underlying error.
	Cause error
}

// Error returns the polynomial and the cause.
func (e IsolationError) Error() string {
	if e.Poly == "" {
		return e.Cause.Error()
	}
	return fmt.Sprintf("isolating %s: %v", e.Poly, e.Cause)
}

// Unwrap returns the underlying cause.
func (e IsolationError) Unwrap() error { return e.Cause }

// NewIsolationError wraps cause with the polynomial it concerns. A nil cause
// yields nil.
func NewIsolationError(poly string, cause error) error {
	if cause == nil {
		return nil
	}
	return IsolationError{Poly: poly, Cause: cause}
}

// ServerError is an error of the HTTP server component.
type ServerError struct {
	// Message describes the failed server operation.
	Message string
	// Cause is the underlying error, if any.
	Cause error
}

// Error combines the message and the cause, if present.
func (e ServerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e ServerError) Unwrap() error { return e.Cause }

// NewServerError creates a ServerError with a message and optional cause.
func NewServerError(message string, cause error) error {
	return ServerError{Message: message, Cause: cause}
}

// ValidationError rejects a well-formed request that lies outside what the
// service accepts, such as a degree above the server maximum.
type ValidationError struct {
	// Field names the rejected input ("degree", "refine").
	Field string
	// Value is the rejected value.
	Value any
	// Limit is the largest accepted value.
	Limit any
	// Err is the sentinel the rejection matches with errors.Is.
	Err error
}

// Error returns the sentinel message followed by the offending value.
func (e ValidationError) Error() string {
	return fmt.Sprintf("%v: %s %v > %v", e.Err, e.Field, e.Value, e.Limit)
}

// Unwrap returns the sentinel.
func (e ValidationError) Unwrap() error { return e.Err }

// NewValidationError rejects field because value exceeds limit.
func NewValidationError(field string, value, limit any, err error) error {
	return ValidationError{Field: field, Value: value, Limit: limit, Err: err}
}
