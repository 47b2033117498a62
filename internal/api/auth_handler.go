package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cleanarch/webapp/internal/api/middleware"
	"github.com/cleanarch/webapp/internal/container"
	"github.com/cleanarch/webapp/internal/domain"
	"github.com/cleanarch/webapp/internal/usecase"
)

// AuthHandler handles authentication HTTP requests.
type AuthHandler struct{}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

// RegisterRoutes registers authentication routes with the router. The login
// endpoint is rate limited to slow down credential stuffing.
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup, limiter *middleware.RateLimiter) {
	auth := router.Group("/auth")
	{
		auth.POST("/login", limiter.Limit(), h.Login)
	}
}

// Login handles POST /api/auth/login requests.
func (h *AuthHandler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindingErrorResponse(c, err)
		return
	}

	uc, err := container.Resolve[*usecase.AuthenticateUserUseCase](container.AuthenticateUseCaseToken)
	if err != nil {
		WiringErrorResponse(c, err)
		return
	}

	Render(c, uc.Execute(c.Request.Context(), req), http.StatusOK)
}
