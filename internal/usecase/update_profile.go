package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/cleanarch/webapp/internal/domain"
	"github.com/cleanarch/webapp/internal/repository"
	"github.com/cleanarch/webapp/internal/result"
	"github.com/cleanarch/webapp/internal/services"
)

// UpdateProfileUseCase changes a user's display name and preferences.
type UpdateProfileUseCase struct {
	users  repository.UserRepository
	cache  *services.UserCache
	logger *slog.Logger
}

// NewUpdateProfileUseCase wires the use case from its collaborators.
func NewUpdateProfileUseCase(
	users repository.UserRepository,
	cache *services.UserCache,
	logger *slog.Logger,
) *UpdateProfileUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &UpdateProfileUseCase{users: users, cache: cache, logger: logger}
}

// Execute applies the requested changes. Failure codes: USER_NOT_FOUND, the
// validation codes from domain.User.Validate, and the infrastructure codes
// when persistence fails.
func (uc *UpdateProfileUseCase) Execute(ctx context.Context, id string, req domain.UpdateProfileRequest) result.Result[*domain.User] {
	user, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return result.FailFromError[*domain.User](err)
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Preferences != nil {
		user.Preferences = *req.Preferences
	}
	user.UpdatedAt = time.Now()

	if err := user.Validate(); err != nil {
		return result.FailFromError[*domain.User](err)
	}

	if err := uc.users.Update(ctx, user); err != nil {
		return result.FailFromError[*domain.User](err)
	}

	// Stale cache entries would serve the old profile until expiry.
	if err := uc.cache.Invalidate(ctx, id); err != nil {
		uc.logger.WarnContext(ctx, "user cache invalidation failed", "user_id", id, "error", err)
	}

	return result.Ok(user.Sanitized())
}
