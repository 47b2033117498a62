package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cleanarch/webapp/internal/container"
	"github.com/cleanarch/webapp/internal/services"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct{}

// NewHealthHandler creates a new health handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// RegisterRoutes registers health check routes.
func (h *HealthHandler) RegisterRoutes(router *gin.Engine) {
	health := router.Group("/health")
	{
		health.GET("", h.HealthCheck)
		health.GET("/live", h.Liveness)
		health.GET("/ready", h.Readiness)
	}
}

// HealthCheck runs every registered checker and reports the aggregate.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	svc, err := container.Resolve[*services.HealthService](container.HealthServiceToken)
	if err != nil {
		WiringErrorResponse(c, err)
		return
	}

	response := svc.Check(c.Request.Context())
	status := http.StatusOK
	if response.Status != services.HealthStatusHealthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, response)
}

// Liveness reports whether the process is alive. It deliberately checks
// nothing else, so a broken dependency cannot cause a restart loop.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}

// Readiness reports whether the application can serve traffic.
func (h *HealthHandler) Readiness(c *gin.Context) {
	svc, err := container.Resolve[*services.HealthService](container.HealthServiceToken)
	if err != nil {
		WiringErrorResponse(c, err)
		return
	}

	response := svc.Check(c.Request.Context())
	if response.Status != services.HealthStatusHealthy {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
