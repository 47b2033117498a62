// Package result provides the success/failure value returned by every use case.
//
// A Result replaces thrown errors as the reporting channel for expected
// business outcomes: validation failures, conflicts, missing resources and
// infrastructure faults all surface as a Failure value the caller branches on.
// Only genuinely unexpected errors (bugs) travel as Go errors or panics past
// the use-case boundary.
package result

import (
	"errors"

	"github.com/cleanarch/webapp/internal/domain"
)

// Generic failure codes. Business-specific codes (EMAIL_ALREADY_EXISTS, ...)
// are declared next to the use case that produces them.
const (
	CodeValidation     = "VALIDATION_ERROR"
	CodeInfrastructure = "INFRASTRUCTURE_ERROR"
	CodeInternal       = "INTERNAL_ERROR"
)

// Failure describes a failed outcome. Message is safe for end-user display;
// Code is the machine-readable identifier callers branch on; Details carries
// diagnostic context and must never contain secrets.
type Failure struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// Result is a tagged union: exactly one of the success data or the failure
// is inhabited. Values are immutable once constructed.
type Result[T any] struct {
	ok      bool
	data    T
	failure Failure
}

// Ok constructs a successful Result. No validation is performed; the caller
// guarantees data is already valid.
func Ok[T any](data T) Result[T] {
	return Result[T]{ok: true, data: data}
}

// Fail constructs a failed Result. The details map is copied so later mutation
// by the caller cannot reach the stored value.
func Fail[T any](message, code string, details map[string]any) Result[T] {
	return Result[T]{failure: Failure{
		Code:    code,
		Message: message,
		Details: copyDetails(details),
	}}
}

// FailFromError converts an error into a failed Result. Domain errors keep
// their code, message and details; anything else is reported as an internal
// failure with a generic message so low-level detail never reaches end users.
func FailFromError[T any](err error) Result[T] {
	var domainErr *domain.Error
	if errors.As(err, &domainErr) {
		return Fail[T](domainErr.Message, domainErr.Code, domainErr.Details)
	}
	return Fail[T]("An internal error occurred", CodeInternal, map[string]any{
		"cause": err.Error(),
	})
}

// IsSuccess reports whether the Result holds data.
func (r Result[T]) IsSuccess() bool {
	return r.ok
}

// IsFailure reports whether the Result holds a failure.
func (r Result[T]) IsFailure() bool {
	return !r.ok
}

// Data returns the success data. On a failed Result it returns the zero value.
func (r Result[T]) Data() T {
	return r.data
}

// Error returns a copy of the failure. On a successful Result it returns the
// zero Failure. The Details map is copied so callers cannot mutate the Result
// through it.
func (r Result[T]) Error() Failure {
	f := r.failure
	f.Details = copyDetails(f.Details)
	return f
}

func copyDetails(details map[string]any) map[string]any {
	if details == nil {
		return nil
	}
	out := make(map[string]any, len(details))
	for k, v := range details {
		out[k] = v
	}
	return out
}
