// Package usecase contains the application-layer operations. Every use case
// exposes a single Execute method returning a result.Result: expected business
// failures (validation, conflicts, missing resources, infrastructure faults)
// come back as Failure values with a machine-readable code and are never
// returned as Go errors. Only genuine bugs may escape, as panics caught by
// the presentation layer's recovery middleware.
package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/cleanarch/webapp/internal/domain"
	"github.com/cleanarch/webapp/internal/repository"
	"github.com/cleanarch/webapp/internal/result"
)

// CreateUserUseCase registers a new user account.
type CreateUserUseCase struct {
	users        repository.UserRepository
	registration *domain.UserRegistrationPolicy
	passwords    *domain.PasswordPolicy
	logger       *slog.Logger
}

// NewCreateUserUseCase wires the use case from its collaborators.
func NewCreateUserUseCase(
	users repository.UserRepository,
	registration *domain.UserRegistrationPolicy,
	passwords *domain.PasswordPolicy,
	logger *slog.Logger,
) *CreateUserUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &CreateUserUseCase{
		users:        users,
		registration: registration,
		passwords:    passwords,
		logger:       logger,
	}
}

// Execute validates the request, enforces uniqueness, and persists the user.
// On success the returned user has the password hash stripped. Failure codes:
// the validation codes from domain.User.Validate and WEAK_PASSWORD,
// EMAIL_ALREADY_EXISTS, USERNAME_ALREADY_EXISTS, and the infrastructure
// codes when persistence fails.
func (uc *CreateUserUseCase) Execute(ctx context.Context, req domain.CreateUserRequest) result.Result[*domain.User] {
	if err := uc.passwords.Check(req.Password); err != nil {
		return result.FailFromError[*domain.User](err)
	}

	// Uniqueness is checked before any write so a duplicate request never
	// reaches the repository's Create.
	if err := uc.registration.EnsureAvailable(ctx, req.Email, req.Username); err != nil {
		return result.FailFromError[*domain.User](err)
	}

	now := time.Now()
	user := &domain.User{
		ID:       uuid.New().String(),
		Email:    req.Email,
		Username: req.Username,
		Name:     req.Name,
		Role:     domain.RegularUserRole,
		Preferences: domain.UserPreferences{
			Theme:    "light",
			Language: "en",
			Timezone: "UTC",
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Role != "" {
		user.Role = domain.UserRole(req.Role)
	}

	if err := user.SetPassword(req.Password); err != nil {
		return result.FailFromError[*domain.User](err)
	}

	if err := user.Validate(); err != nil {
		return result.FailFromError[*domain.User](err)
	}

	if err := uc.users.Create(ctx, user); err != nil {
		uc.logger.ErrorContext(ctx, "user creation failed",
			"email", req.Email,
			"error", err,
		)
		return result.FailFromError[*domain.User](err)
	}

	return result.Ok(user.Sanitized())
}
