package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/cleanarch/webapp/internal/config"
	"github.com/cleanarch/webapp/internal/domain"
)

// TokenService signs and verifies the JWT pairs handed out on login.
type TokenService interface {
	// GeneratePair issues a fresh access/refresh token pair for the user.
	GeneratePair(user *domain.User) (*domain.TokenPair, error)

	// Validate parses a token and returns its claims, or an authentication
	// error if the token is invalid or expired.
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims represents JWT token claims.
type TokenClaims struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// jwtTokenService implements TokenService with HMAC-signed JWTs.
type jwtTokenService struct {
	config config.SecurityConfig
	secret []byte
}

// NewTokenService creates a token service from the security configuration.
func NewTokenService(cfg config.SecurityConfig) TokenService {
	return &jwtTokenService{
		config: cfg,
		secret: []byte(cfg.GetJWTSecret()),
	}
}

// GeneratePair issues a fresh access/refresh token pair for the user.
func (s *jwtTokenService) GeneratePair(user *domain.User) (*domain.TokenPair, error) {
	now := time.Now()
	accessExpiry := now.Add(s.config.GetJWTExpiration())

	accessToken, err := s.sign(user, now, accessExpiry)
	if err != nil {
		return nil, domain.NewInternalError("TOKEN_GENERATION_FAILED", "Failed to generate access token", err)
	}

	refreshToken, err := s.sign(user, now, now.Add(s.config.GetRefreshTokenExpiration()))
	if err != nil {
		return nil, domain.NewInternalError("TOKEN_GENERATION_FAILED", "Failed to generate refresh token", err)
	}

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    accessExpiry,
	}, nil
}

func (s *jwtTokenService) sign(user *domain.User, issuedAt, expiresAt time.Time) (string, error) {
	claims := TokenClaims{
		UserID:   user.ID,
		Email:    user.Email,
		Username: user.Username,
		Role:     string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Validate parses a token and returns its claims.
func (s *jwtTokenService) Validate(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.NewAuthenticationError("INVALID_TOKEN", "Unexpected token signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, domain.NewAuthenticationError("INVALID_TOKEN", "Invalid or expired token")
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok {
		return nil, domain.NewAuthenticationError("INVALID_TOKEN", "Malformed token claims")
	}
	return claims, nil
}
