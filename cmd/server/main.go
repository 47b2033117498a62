// Package main provides the entry point for the web application server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cleanarch/webapp/internal/api"
	"github.com/cleanarch/webapp/internal/container"
	"github.com/cleanarch/webapp/internal/repository"
	"github.com/cleanarch/webapp/internal/services"

	"log/slog"

	"github.com/cleanarch/webapp/internal/config"
	"github.com/gin-gonic/gin"
)

func main() {
	ctx := context.Background()

	if err := run(ctx); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	cfg := config.NewConfig()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	layers := container.NewLayers()

	// Development without backing services: in-memory substitutes go in
	// before RegisterServices, whose IsRegistered guards then skip the real
	// ones.
	if os.Getenv("USE_MEMORY_BACKENDS") == "true" {
		layers.Infrastructure.RegisterInstance(
			container.UserRepositoryToken, repository.NewMemoryUserRepository())
		layers.Infrastructure.RegisterInstance(
			container.CacheBackendToken, services.NewMemoryCacheBackend())
	}

	if err := container.RegisterServices(layers, cfg); err != nil {
		return fmt.Errorf("failed to register services: %w", err)
	}
	container.GetInstance().SetLayers(layers)

	logger := container.MustResolve[*slog.Logger](container.LoggerToken)
	slog.SetDefault(logger)

	router, err := api.NewRouter(logger)
	if err != nil {
		return fmt.Errorf("failed to build router: %w", err)
	}

	server := &http.Server{
		Addr:         ":" + cfg.GetServerPort(),
		Handler:      router,
		ReadTimeout:  cfg.GetReadTimeout(),
		WriteTimeout: cfg.GetWriteTimeout(),
		IdleTimeout:  cfg.GetIdleTimeout(),
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			"port", cfg.GetServerPort(),
			"environment", cfg.GetEnvironment(),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		logger.Info("shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
