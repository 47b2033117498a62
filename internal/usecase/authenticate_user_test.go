package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleanarch/webapp/internal/domain"
)

func storedUser(t *testing.T, password string) *domain.User {
	t.Helper()
	user := &domain.User{
		ID:       "user-1",
		Email:    "ada@example.com",
		Username: "ada",
		Name:     "Ada Lovelace",
		Role:     domain.RegularUserRole,
	}
	require.NoError(t, user.SetPassword(password))
	return user
}

func TestAuthenticateSuccess(t *testing.T) {
	user := storedUser(t, "s3cure-passphrase")
	repo := &MockUserRepository{
		GetByEmailFunc: func(_ context.Context, email string) (*domain.User, error) {
			assert.Equal(t, "ada@example.com", email)
			return user, nil
		},
	}
	tokens := &MockTokenService{
		GeneratePairFunc: func(u *domain.User) (*domain.TokenPair, error) {
			assert.Equal(t, "user-1", u.ID)
			return &domain.TokenPair{
				AccessToken:  "access",
				RefreshToken: "refresh",
				ExpiresAt:    time.Now().Add(time.Hour),
			}, nil
		},
	}
	uc := NewAuthenticateUserUseCase(repo, tokens, testLogger())

	res := uc.Execute(context.Background(), domain.LoginRequest{
		Email:    "ada@example.com",
		Password: "s3cure-passphrase",
	})

	require.True(t, res.IsSuccess())
	login := res.Data()
	assert.Equal(t, "user-1", login.User.ID)
	assert.Empty(t, login.User.PasswordHash)
	assert.Equal(t, "access", login.Tokens.AccessToken)
}

func TestAuthenticateUnknownEmail(t *testing.T) {
	repo := &MockUserRepository{
		GetByEmailFunc: func(_ context.Context, _ string) (*domain.User, error) {
			return nil, domain.NewNotFoundError("USER_NOT_FOUND", "User not found")
		},
	}
	uc := NewAuthenticateUserUseCase(repo, &MockTokenService{}, testLogger())

	res := uc.Execute(context.Background(), domain.LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever1",
	})

	require.True(t, res.IsFailure())
	assert.Equal(t, "INVALID_CREDENTIALS", res.Error().Code)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	user := storedUser(t, "s3cure-passphrase")
	repo := &MockUserRepository{
		GetByEmailFunc: func(_ context.Context, _ string) (*domain.User, error) {
			return user, nil
		},
	}
	uc := NewAuthenticateUserUseCase(repo, &MockTokenService{}, testLogger())

	res := uc.Execute(context.Background(), domain.LoginRequest{
		Email:    "ada@example.com",
		Password: "wrong-password1",
	})

	require.True(t, res.IsFailure())
	assert.Equal(t, "INVALID_CREDENTIALS", res.Error().Code)
}

// The failure for an unknown email must be indistinguishable from the failure
// for a wrong password.
func TestAuthenticateFailuresAreUniform(t *testing.T) {
	user := storedUser(t, "s3cure-passphrase")

	unknownRepo := &MockUserRepository{
		GetByEmailFunc: func(_ context.Context, _ string) (*domain.User, error) {
			return nil, domain.NewNotFoundError("USER_NOT_FOUND", "User not found")
		},
	}
	knownRepo := &MockUserRepository{
		GetByEmailFunc: func(_ context.Context, _ string) (*domain.User, error) {
			return user, nil
		},
	}

	unknown := NewAuthenticateUserUseCase(unknownRepo, &MockTokenService{}, testLogger()).
		Execute(context.Background(), domain.LoginRequest{Email: "ghost@example.com", Password: "bad-pass1"})
	wrongPass := NewAuthenticateUserUseCase(knownRepo, &MockTokenService{}, testLogger()).
		Execute(context.Background(), domain.LoginRequest{Email: "ada@example.com", Password: "bad-pass1"})

	assert.Equal(t, unknown.Error(), wrongPass.Error())
}

func TestAuthenticateTokenGenerationFailure(t *testing.T) {
	user := storedUser(t, "s3cure-passphrase")
	repo := &MockUserRepository{
		GetByEmailFunc: func(_ context.Context, _ string) (*domain.User, error) {
			return user, nil
		},
	}
	tokens := &MockTokenService{
		GeneratePairFunc: func(_ *domain.User) (*domain.TokenPair, error) {
			return nil, domain.NewInternalError("TOKEN_GENERATION_FAILED", "Failed to generate access token", assert.AnError)
		},
	}
	uc := NewAuthenticateUserUseCase(repo, tokens, testLogger())

	res := uc.Execute(context.Background(), domain.LoginRequest{
		Email:    "ada@example.com",
		Password: "s3cure-passphrase",
	})

	require.True(t, res.IsFailure())
	assert.Equal(t, "TOKEN_GENERATION_FAILED", res.Error().Code)
}
