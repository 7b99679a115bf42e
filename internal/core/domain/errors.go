// Package domain defines the core domain models for the estate service.
package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business domain error with a structured error code.
type DomainError struct {
	Code    string // Error code (e.g., "NL-AUTH-4010")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// Authentication errors (AUTH).
var (
	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password. The two cases are deliberately indistinguishable to the
	// caller so usernames cannot be enumerated.
	ErrInvalidCredentials = NewDomainError("NL-AUTH-4010", "Invalid username or password")

	// ErrUnauthorized indicates a protected route was requested without a
	// live session.
	ErrUnauthorized = NewDomainError("NL-AUTH-4011", "Unauthorized access. Please login first.")
)

// Session errors (SESS).
var (
	// ErrSessionNotFound indicates the presented identifier is unknown.
	ErrSessionNotFound = NewDomainError("NL-SESS-4040", "session not found")

	// ErrSessionExpired indicates the session's TTL has elapsed.
	ErrSessionExpired = NewDomainError("NL-SESS-4041", "session expired")

	// ErrSessionConflict indicates a session identifier collision.
	ErrSessionConflict = NewDomainError("NL-SESS-4090", "session id conflict")
)

// Resource errors (RES).
var (
	// ErrPropertyNotFound indicates the requested property does not exist.
	ErrPropertyNotFound = NewDomainError("NL-RES-4040", "Property not found")

	// ErrBlogPostNotFound indicates the requested blog post does not exist.
	ErrBlogPostNotFound = NewDomainError("NL-RES-4041", "Blog post not found")

	// ErrSlugConflict indicates a blog post slug is already in use.
	ErrSlugConflict = NewDomainError("NL-RES-4090", "slug already in use")

	// ErrUsernameConflict indicates a username is already taken.
	ErrUsernameConflict = NewDomainError("NL-RES-4091", "username already in use")
)

// Validation and argument errors (ARG).
var (
	// ErrValidation indicates request payload validation failed.
	ErrValidation = NewDomainError("NL-ARG-4000", "Validation error")

	// ErrMissingArgument indicates a required argument is missing.
	ErrMissingArgument = NewDomainError("NL-ARG-4001", "missing required argument")

	// ErrInvalidArgument indicates an argument is malformed.
	ErrInvalidArgument = NewDomainError("NL-ARG-4002", "invalid argument")
)

// System errors (SYS).
var (
	// ErrInternalServer indicates an internal server error.
	ErrInternalServer = NewDomainError("NL-SYS-5000", "internal server error")

	// ErrStorageError indicates a storage layer error.
	ErrStorageError = NewDomainError("NL-SYS-5001", "storage error")
)
