// Package domain holds the entities, domain services and error taxonomy of
// the application. It depends on nothing above itself.
package domain

import (
	"errors"
	"fmt"
)

// ErrorType classifies a domain error into the category the presentation
// layer branches on (HTTP status, form-field mapping).
type ErrorType string

const (
	// ValidationError represents validation failures.
	ValidationError ErrorType = "VALIDATION_ERROR"
	// NotFoundError represents resource not found.
	NotFoundError ErrorType = "NOT_FOUND_ERROR"
	// ConflictError represents resource conflicts.
	ConflictError ErrorType = "CONFLICT_ERROR"
	// AuthenticationError represents authentication failures.
	AuthenticationError ErrorType = "AUTHENTICATION_ERROR"
	// AuthorizationError represents authorization failures.
	AuthorizationError ErrorType = "AUTHORIZATION_ERROR"
	// InternalError represents internal system errors.
	InternalError ErrorType = "INTERNAL_ERROR"
	// InfrastructureError represents failures of external systems
	// (database, cache) converted at the infrastructure boundary.
	InfrastructureError ErrorType = "INFRASTRUCTURE_ERROR"
)

// Error is a domain-specific error with machine-readable code and optional
// diagnostic details. Message is safe for end-user display; Cause carries the
// underlying low-level error for logging and is never serialized.
type Error struct {
	Type    ErrorType      `json:"type"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
	Cause   error          `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a new validation error.
func NewValidationError(code, message string, details map[string]any) *Error {
	return &Error{Type: ValidationError, Code: code, Message: message, Details: details}
}

// NewNotFoundError creates a new not found error.
func NewNotFoundError(code, message string) *Error {
	return &Error{Type: NotFoundError, Code: code, Message: message}
}

// NewConflictError creates a new conflict error.
func NewConflictError(code, message string) *Error {
	return &Error{Type: ConflictError, Code: code, Message: message}
}

// NewAuthenticationError creates a new authentication error.
func NewAuthenticationError(code, message string) *Error {
	return &Error{Type: AuthenticationError, Code: code, Message: message}
}

// NewAuthorizationError creates a new authorization error.
func NewAuthorizationError(code, message string) *Error {
	return &Error{Type: AuthorizationError, Code: code, Message: message}
}

// NewInternalError creates a new internal error.
func NewInternalError(code, message string, cause error) *Error {
	return &Error{Type: InternalError, Code: code, Message: message, Cause: cause}
}

// NewInfrastructureError creates a new infrastructure error. The cause is
// retained for logging but must never be shown to end users.
func NewInfrastructureError(code, message string, cause error) *Error {
	return &Error{Type: InfrastructureError, Code: code, Message: message, Cause: cause}
}

// IsType reports whether err is a domain error of the given type.
func IsType(err error, t ErrorType) bool {
	var domainErr *Error
	return errors.As(err, &domainErr) && domainErr.Type == t
}

// IsNotFound reports whether err is a domain not-found error.
func IsNotFound(err error) bool {
	return IsType(err, NotFoundError)
}

// IsConflict reports whether err is a domain conflict error.
func IsConflict(err error) bool {
	return IsType(err, ConflictError)
}
