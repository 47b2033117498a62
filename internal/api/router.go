package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/cleanarch/webapp/internal/api/middleware"
	"github.com/cleanarch/webapp/internal/container"
	"github.com/cleanarch/webapp/internal/services"
)

// NewRouter assembles the gin engine: middleware stack, health endpoints and
// the versionless /api group. It resolves the token service once for the
// auth middleware; everything else is resolved per request by the handlers.
func NewRouter(logger *slog.Logger) (*gin.Engine, error) {
	router := gin.New()
	router.Use(
		middleware.RequestIDMiddleware(),
		middleware.CORSMiddleware(),
		middleware.LoggingMiddleware(logger, "/health/live", "/health/ready"),
		middleware.RecoveryMiddleware(logger),
	)

	tokens, err := container.Resolve[services.TokenService](container.TokenServiceToken)
	if err != nil {
		return nil, err
	}
	auth := middleware.NewAuthMiddleware(tokens)

	NewHealthHandler().RegisterRoutes(router)

	apiGroup := router.Group("/api")
	NewAuthHandler().RegisterRoutes(apiGroup, middleware.NewRateLimiter(10, 30))
	NewUserHandler().RegisterRoutes(apiGroup, auth)

	return router, nil
}
