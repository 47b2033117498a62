package usecase

import (
	"context"
	"log/slog"

	"github.com/cleanarch/webapp/internal/domain"
	"github.com/cleanarch/webapp/internal/repository"
	"github.com/cleanarch/webapp/internal/result"
	"github.com/cleanarch/webapp/internal/services"
)

// LoginResponse is the successful outcome of authentication.
type LoginResponse struct {
	User   *domain.User      `json:"user"`
	Tokens *domain.TokenPair `json:"tokens"`
}

// AuthenticateUserUseCase checks credentials and issues a token pair.
type AuthenticateUserUseCase struct {
	users  repository.UserRepository
	tokens services.TokenService
	logger *slog.Logger
}

// NewAuthenticateUserUseCase wires the use case from its collaborators.
func NewAuthenticateUserUseCase(
	users repository.UserRepository,
	tokens services.TokenService,
	logger *slog.Logger,
) *AuthenticateUserUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthenticateUserUseCase{users: users, tokens: tokens, logger: logger}
}

// Execute authenticates the credentials. An unknown email and a wrong
// password both produce the same INVALID_CREDENTIALS failure so the response
// does not reveal which accounts exist.
func (uc *AuthenticateUserUseCase) Execute(ctx context.Context, req domain.LoginRequest) result.Result[*LoginResponse] {
	user, err := uc.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if domain.IsNotFound(err) {
			return result.Fail[*LoginResponse]("Invalid email or password", "INVALID_CREDENTIALS", nil)
		}
		return result.FailFromError[*LoginResponse](err)
	}

	if err := user.CheckPassword(req.Password); err != nil {
		return result.Fail[*LoginResponse]("Invalid email or password", "INVALID_CREDENTIALS", nil)
	}

	pair, err := uc.tokens.GeneratePair(user)
	if err != nil {
		uc.logger.ErrorContext(ctx, "token generation failed", "user_id", user.ID, "error", err)
		return result.FailFromError[*LoginResponse](err)
	}

	return result.Ok(&LoginResponse{
		User:   user.Sanitized(),
		Tokens: pair,
	})
}
