package services

import (
	"context"
	"runtime"
	"time"

	"github.com/pocketbase/dbx"
	"github.com/redis/go-redis/v9"
)

// HealthStatus represents the health status of a component.
type HealthStatus string

const (
	// HealthStatusHealthy indicates the component is fully operational.
	HealthStatusHealthy HealthStatus = "healthy"
	// HealthStatusUnhealthy indicates the component is not operational.
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// HealthCheck represents a single health check.
type HealthCheck struct {
	Name        string        `json:"name"`
	Status      HealthStatus  `json:"status"`
	Error       string        `json:"error,omitempty"`
	Duration    time.Duration `json:"duration"`
	LastChecked time.Time     `json:"last_checked"`
}

// HealthResponse represents the overall health response.
type HealthResponse struct {
	Status      HealthStatus   `json:"status"`
	Environment string         `json:"environment"`
	Uptime      time.Duration  `json:"uptime"`
	Checks      []HealthCheck  `json:"checks"`
	System      map[string]any `json:"system"`
	Timestamp   time.Time      `json:"timestamp"`
}

// HealthChecker defines the interface for health checkers.
type HealthChecker interface {
	Check(ctx context.Context) HealthCheck
	Name() string
}

// HealthService runs the registered health checks.
type HealthService struct {
	startTime time.Time
	env       string
	checkers  []HealthChecker
}

// NewHealthService creates a new health service.
func NewHealthService(env string, checkers ...HealthChecker) *HealthService {
	return &HealthService{
		startTime: time.Now(),
		env:       env,
		checkers:  checkers,
	}
}

// Check performs all health checks and returns the overall health status.
func (h *HealthService) Check(ctx context.Context) HealthResponse {
	checks := make([]HealthCheck, 0, len(h.checkers))
	overall := HealthStatusHealthy

	for _, checker := range h.checkers {
		check := checker.Check(ctx)
		if check.Status != HealthStatusHealthy {
			overall = HealthStatusUnhealthy
		}
		checks = append(checks, check)
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return HealthResponse{
		Status:      overall,
		Environment: h.env,
		Uptime:      time.Since(h.startTime),
		Checks:      checks,
		System: map[string]any{
			"goroutines":  runtime.NumGoroutine(),
			"alloc_bytes": mem.Alloc,
		},
		Timestamp: time.Now(),
	}
}

// databaseChecker verifies database connectivity.
type databaseChecker struct {
	db *dbx.DB
}

// NewDatabaseChecker creates a health checker for the database handle.
func NewDatabaseChecker(db *dbx.DB) HealthChecker {
	return &databaseChecker{db: db}
}

func (c *databaseChecker) Name() string { return "database" }

func (c *databaseChecker) Check(ctx context.Context) HealthCheck {
	start := time.Now()
	check := HealthCheck{Name: c.Name(), Status: HealthStatusHealthy, LastChecked: start}

	if err := c.db.DB().PingContext(ctx); err != nil {
		check.Status = HealthStatusUnhealthy
		check.Error = err.Error()
	}
	check.Duration = time.Since(start)
	return check
}

// redisChecker verifies cache connectivity.
type redisChecker struct {
	client *redis.Client
}

// NewRedisChecker creates a health checker for the Redis client.
func NewRedisChecker(client *redis.Client) HealthChecker {
	return &redisChecker{client: client}
}

func (c *redisChecker) Name() string { return "redis" }

func (c *redisChecker) Check(ctx context.Context) HealthCheck {
	start := time.Now()
	check := HealthCheck{Name: c.Name(), Status: HealthStatusHealthy, LastChecked: start}

	if err := c.client.Ping(ctx).Err(); err != nil {
		check.Status = HealthStatusUnhealthy
		check.Error = err.Error()
	}
	check.Duration = time.Since(start)
	return check
}
