package container

import "sync"

// ServiceLocator is the process-wide holder of the layered container chain.
// It is set up once by the composition root and consulted by the typed
// resolver facade (resolver.go). Tests swap in a fresh chain via SetLayers
// and restore the previous one when done.
type ServiceLocator struct {
	mu     sync.RWMutex
	layers *Layers
}

var (
	instance *ServiceLocator
	once     sync.Once
)

// GetInstance returns the singleton instance of ServiceLocator.
func GetInstance() *ServiceLocator {
	once.Do(func() {
		instance = &ServiceLocator{
			layers: NewLayers(),
		}
	})
	return instance
}

// SetLayers replaces the held container chain and returns the previous one.
func (sl *ServiceLocator) SetLayers(layers *Layers) *Layers {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	previous := sl.layers
	sl.layers = layers
	return previous
}

// GetLayers returns the held container chain.
func (sl *ServiceLocator) GetLayers() *Layers {
	sl.mu.RLock()
	defer sl.mu.RUnlock()
	return sl.layers
}

// Application returns the top-level container of the held chain, the one
// resolution starts from.
func (sl *ServiceLocator) Application() Container {
	sl.mu.RLock()
	defer sl.mu.RUnlock()
	return sl.layers.Application
}
