package domain

import (
	"context"
	"strings"
	"unicode"
)

// UserDirectory is the read port the registration policy needs from the
// persistence layer. The full repository interface lives in the repository
// package; declaring the narrow slice here keeps the domain layer free of
// upward imports.
type UserDirectory interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// PasswordPolicy expresses the business rules for acceptable passwords.
type PasswordPolicy struct {
	MinLength      int
	RequireDigit   bool
	RequireSymbol  bool
	forbiddenWords []string
}

// NewPasswordPolicy returns the default policy: at least 8 characters with a
// digit, rejecting a handful of trivially guessable values.
func NewPasswordPolicy() *PasswordPolicy {
	return &PasswordPolicy{
		MinLength:      8,
		RequireDigit:   true,
		forbiddenWords: []string{"password", "12345678", "qwertyui"},
	}
}

// Check validates a candidate password, returning a validation error with
// code WEAK_PASSWORD when a rule is violated.
func (p *PasswordPolicy) Check(password string) error {
	if len(password) < p.MinLength {
		return NewValidationError("WEAK_PASSWORD", "Password is too short", map[string]any{
			"field":      "password",
			"min_length": p.MinLength,
		})
	}

	lowered := strings.ToLower(password)
	for _, word := range p.forbiddenWords {
		if lowered == word {
			return NewValidationError("WEAK_PASSWORD", "Password is too common", map[string]any{
				"field": "password",
			})
		}
	}

	if p.RequireDigit && !containsClass(password, unicode.IsDigit) {
		return NewValidationError("WEAK_PASSWORD", "Password must contain a digit", map[string]any{
			"field": "password",
		})
	}
	if p.RequireSymbol && !containsClass(password, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSymbol(r)
	}) {
		return NewValidationError("WEAK_PASSWORD", "Password must contain a symbol", map[string]any{
			"field": "password",
		})
	}
	return nil
}

func containsClass(s string, class func(rune) bool) bool {
	for _, r := range s {
		if class(r) {
			return true
		}
	}
	return false
}

// UserRegistrationPolicy enforces the uniqueness rules for new accounts.
type UserRegistrationPolicy struct {
	directory UserDirectory
}

// NewUserRegistrationPolicy creates a registration policy over the given
// directory.
func NewUserRegistrationPolicy(directory UserDirectory) *UserRegistrationPolicy {
	return &UserRegistrationPolicy{directory: directory}
}

// EnsureAvailable returns a conflict error when the email or username is
// already taken, and an infrastructure error when the directory itself fails.
func (p *UserRegistrationPolicy) EnsureAvailable(ctx context.Context, email, username string) error {
	taken, err := p.directory.ExistsByEmail(ctx, email)
	if err != nil {
		return NewInfrastructureError("USER_LOOKUP_FAILED", "Could not verify email availability", err)
	}
	if taken {
		return NewConflictError("EMAIL_ALREADY_EXISTS", "A user with this email already exists")
	}

	taken, err = p.directory.ExistsByUsername(ctx, username)
	if err != nil {
		return NewInfrastructureError("USER_LOOKUP_FAILED", "Could not verify username availability", err)
	}
	if taken {
		return NewConflictError("USERNAME_ALREADY_EXISTS", "A user with this username already exists")
	}
	return nil
}
