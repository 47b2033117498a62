package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cleanarch/webapp/internal/services"
)

const claimsContextKey = "auth_claims"

// AuthMiddleware validates bearer tokens on protected routes.
type AuthMiddleware struct {
	tokens services.TokenService
}

// NewAuthMiddleware creates an auth middleware over the given token service.
func NewAuthMiddleware(tokens services.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// RequireAuth aborts with 401 unless the request carries a valid bearer
// token. Valid claims are stored in the context for handlers.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			abortUnauthorized(c, "Authorization header is missing or malformed")
			return
		}

		claims, err := m.tokens.Validate(token)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// GetClaims returns the validated token claims stored by RequireAuth.
func GetClaims(c *gin.Context) (*services.TokenClaims, bool) {
	value, exists := c.Get(claimsContextKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*services.TokenClaims)
	return claims, ok
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "INVALID_TOKEN",
			"message": message,
		},
	})
}
