package domain

import (
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// UserRole represents the role of a user in the system.
type UserRole string

const (
	// AdminRole represents an administrator user.
	AdminRole UserRole = "admin"
	// RegularUserRole represents a regular user.
	RegularUserRole UserRole = "user"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// UserPreferences represents user-specific preferences.
type UserPreferences struct {
	Theme    string `json:"theme"`
	Language string `json:"language"`
	Timezone string `json:"timezone"`
}

// User represents a user account.
type User struct {
	ID           string          `json:"id"`
	Email        string          `json:"email"`
	Username     string          `json:"username"`
	Name         string          `json:"name"`
	PasswordHash string          `json:"-"` // Never serialize password hash
	Role         UserRole        `json:"role"`
	Preferences  UserPreferences `json:"preferences"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// SetPassword hashes and sets the user's password.
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return NewInternalError("PASSWORD_HASH_FAILED", "Failed to hash password", err)
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies the provided password against the stored hash.
func (u *User) CheckPassword(password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return NewAuthenticationError("INVALID_PASSWORD", "Password does not match")
	}
	return nil
}

// IsAdmin returns true if the user has admin role.
func (u *User) IsAdmin() bool {
	return u.Role == AdminRole
}

// Sanitized returns a copy of the user with the password hash removed, safe
// to hand to the presentation layer.
func (u *User) Sanitized() *User {
	clean := *u
	clean.PasswordHash = ""
	return &clean
}

// Validate validates the user data.
func (u *User) Validate() error {
	if u.Email == "" {
		return NewValidationError("INVALID_EMAIL", "Email is required", map[string]any{
			"field": "email",
		})
	}
	if !emailPattern.MatchString(u.Email) {
		return NewValidationError("INVALID_EMAIL", "Email address is malformed", map[string]any{
			"field": "email",
		})
	}
	if strings.TrimSpace(u.Username) == "" {
		return NewValidationError("INVALID_USERNAME", "Username is required", map[string]any{
			"field": "username",
		})
	}
	if strings.TrimSpace(u.Name) == "" {
		return NewValidationError("INVALID_NAME", "Name is required", map[string]any{
			"field": "name",
		})
	}
	if u.Role != AdminRole && u.Role != RegularUserRole {
		return NewValidationError("INVALID_ROLE", "Role must be 'admin' or 'user'", map[string]any{
			"field": "role",
			"value": u.Role,
		})
	}
	return nil
}

// CreateUserRequest represents the data needed to create a new user.
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=3,max=50"`
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role,omitempty"`
}

// UpdateProfileRequest represents the data that can be updated for a user.
type UpdateProfileRequest struct {
	Name        *string          `json:"name,omitempty"`
	Preferences *UserPreferences `json:"preferences,omitempty"`
}

// LoginRequest represents login credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenPair represents a signed access/refresh token pair.
type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}
