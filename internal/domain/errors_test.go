package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessageShape(t *testing.T) {
	err := NewValidationError("INVALID_EMAIL", "Email is required", nil)
	assert.Equal(t, "INVALID_EMAIL: Email is required", err.Error())

	withCause := NewInternalError("HASH_FAILED", "Failed to hash", errors.New("cost out of range"))
	assert.Contains(t, withCause.Error(), "HASH_FAILED")
	assert.Contains(t, withCause.Error(), "cost out of range")
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("pq: connection refused")
	err := NewInfrastructureError("DATABASE_ERROR", "A database error occurred", cause)

	assert.ErrorIs(t, err, cause)
}

func TestErrorAsThroughWrapping(t *testing.T) {
	inner := NewNotFoundError("USER_NOT_FOUND", "User not found")
	wrapped := fmt.Errorf("handling request: %w", inner)

	var domainErr *Error
	require.ErrorAs(t, wrapped, &domainErr)
	assert.Equal(t, "USER_NOT_FOUND", domainErr.Code)
}

func TestTypePredicates(t *testing.T) {
	assert.True(t, IsNotFound(NewNotFoundError("X", "x")))
	assert.False(t, IsNotFound(NewConflictError("X", "x")))

	assert.True(t, IsConflict(NewConflictError("X", "x")))
	assert.False(t, IsConflict(errors.New("plain")))

	assert.True(t, IsType(NewAuthenticationError("X", "x"), AuthenticationError))
	assert.False(t, IsType(nil, AuthenticationError))
}
