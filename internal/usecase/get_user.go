package usecase

import (
	"context"
	"log/slog"

	"github.com/cleanarch/webapp/internal/domain"
	"github.com/cleanarch/webapp/internal/repository"
	"github.com/cleanarch/webapp/internal/result"
	"github.com/cleanarch/webapp/internal/services"
)

// GetUserUseCase fetches a single user, reading through the cache.
type GetUserUseCase struct {
	users  repository.UserRepository
	cache  *services.UserCache
	logger *slog.Logger
}

// NewGetUserUseCase wires the use case from its collaborators.
func NewGetUserUseCase(
	users repository.UserRepository,
	cache *services.UserCache,
	logger *slog.Logger,
) *GetUserUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &GetUserUseCase{users: users, cache: cache, logger: logger}
}

// Execute returns the user with the given ID, or a USER_NOT_FOUND failure.
// Cache faults degrade to repository reads; they never fail the request.
func (uc *GetUserUseCase) Execute(ctx context.Context, id string) result.Result[*domain.User] {
	if id == "" {
		return result.Fail[*domain.User]("User ID is required", result.CodeValidation, map[string]any{
			"field": "id",
		})
	}

	if cached, err := uc.cache.Get(ctx, id); err == nil {
		return result.Ok(cached)
	} else if !services.IsCacheMiss(err) {
		uc.logger.WarnContext(ctx, "user cache read failed", "user_id", id, "error", err)
	}

	user, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return result.FailFromError[*domain.User](err)
	}

	if err := uc.cache.Put(ctx, user); err != nil {
		uc.logger.WarnContext(ctx, "user cache write failed", "user_id", id, "error", err)
	}

	return result.Ok(user.Sanitized())
}
