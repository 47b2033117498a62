package container

import (
	"fmt"

	"github.com/cleanarch/webapp/internal/config"
)

// InitializeLayers builds a fresh four-layer chain and registers every
// service in its layer, bottom-up. Registration never constructs anything;
// the first resolve does.
func InitializeLayers(cfg *config.AppConfig) (*Layers, error) {
	layers := NewLayers()
	if err := RegisterServices(layers, cfg); err != nil {
		return nil, fmt.Errorf("failed to register services: %w", err)
	}
	return layers, nil
}

// RegisterServices registers all application services on an existing chain.
// Layers that already hold substitute registrations (tests, development
// mode) keep them: Register is idempotent and the infrastructure layer
// additionally guards with IsRegistered.
func RegisterServices(layers *Layers, cfg *config.AppConfig) error {
	if err := RegisterCoreServices(layers.Core, cfg); err != nil {
		return fmt.Errorf("core layer: %w", err)
	}
	if err := RegisterInfrastructureServices(layers.Infrastructure); err != nil {
		return fmt.Errorf("infrastructure layer: %w", err)
	}
	if err := RegisterDomainServices(layers.Domain); err != nil {
		return fmt.Errorf("domain layer: %w", err)
	}
	if err := RegisterApplicationServices(layers.Application); err != nil {
		return fmt.Errorf("application layer: %w", err)
	}
	return nil
}

// SetupGlobalLayers initializes the process-wide locator with a fully
// registered chain. Called once from the composition root.
func SetupGlobalLayers(cfg *config.AppConfig) error {
	layers, err := InitializeLayers(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize layers: %w", err)
	}
	GetInstance().SetLayers(layers)
	return nil
}
