package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cleanarch/webapp/internal/api/middleware"
	"github.com/cleanarch/webapp/internal/container"
	"github.com/cleanarch/webapp/internal/domain"
	"github.com/cleanarch/webapp/internal/usecase"
)

// UserHandler handles user-related HTTP requests.
type UserHandler struct{}

// NewUserHandler creates a new user handler.
func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// RegisterRoutes registers user routes with the router.
func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	users := router.Group("/users")
	{
		users.POST("", h.CreateUser)
		users.GET("/:id", h.GetUser)

		protected := users.Group("")
		protected.Use(auth.RequireAuth())
		{
			protected.GET("", h.ListUsers)
			protected.PUT("/:id/profile", h.UpdateProfile)
		}
	}
}

// CreateUser handles POST /api/users requests.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req domain.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindingErrorResponse(c, err)
		return
	}

	uc, err := container.Resolve[*usecase.CreateUserUseCase](container.CreateUserUseCaseToken)
	if err != nil {
		WiringErrorResponse(c, err)
		return
	}

	Render(c, uc.Execute(c.Request.Context(), req), http.StatusCreated)
}

// GetUser handles GET /api/users/:id requests.
func (h *UserHandler) GetUser(c *gin.Context) {
	uc, err := container.Resolve[*usecase.GetUserUseCase](container.GetUserUseCaseToken)
	if err != nil {
		WiringErrorResponse(c, err)
		return
	}

	Render(c, uc.Execute(c.Request.Context(), c.Param("id")), http.StatusOK)
}

// ListUsers handles GET /api/users requests.
func (h *UserHandler) ListUsers(c *gin.Context) {
	var query usecase.ListUsersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		BindingErrorResponse(c, err)
		return
	}

	uc, err := container.Resolve[*usecase.ListUsersUseCase](container.ListUsersUseCaseToken)
	if err != nil {
		WiringErrorResponse(c, err)
		return
	}

	Render(c, uc.Execute(c.Request.Context(), query), http.StatusOK)
}

// UpdateProfile handles PUT /api/users/:id/profile requests. Users may only
// update their own profile.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok || claims.UserID != c.Param("id") {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "You may only update your own profile",
			},
		})
		return
	}

	var req domain.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindingErrorResponse(c, err)
		return
	}

	uc, err := container.Resolve[*usecase.UpdateProfileUseCase](container.UpdateProfileUseCaseToken)
	if err != nil {
		WiringErrorResponse(c, err)
		return
	}

	Render(c, uc.Execute(c.Request.Context(), c.Param("id"), req), http.StatusOK)
}
