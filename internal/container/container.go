// Package container provides dependency injection capabilities for the application.
//
// Containers form a parent chain (see layers.go): resolution checks the local
// registry first and then delegates to the parent, so a child sees every
// registration of its ancestors but never the other way around. Which services
// belong in which layer is a code-review convention, not a runtime check.
package container

import (
	"context"
	"sync"
)

// Token uniquely identifies a resolvable service. Tokens are declared as
// package constants (see tokens.go) so a typo is a compile error at the
// registration site.
type Token string

// Lifetime governs how resolved values are cached.
type Lifetime int

const (
	// Singleton lazily constructs the value on first resolve and caches it
	// until ClearInstances.
	Singleton Lifetime = iota
	// Transient invokes the factory on every resolve.
	Transient
)

// Factory is a function that creates an instance of a dependency. The
// container passed in is the one the factory was registered on, so a factory
// can only resolve tokens from its own layer or below.
type Factory func(ctx context.Context, c Container) (any, error)

// Container represents a dependency injection container.
type Container interface {
	Register(token Token, factory Factory, lifetime Lifetime) error
	RegisterInstance(token Token, instance any)
	Resolve(token Token) (any, error)
	ResolveWithContext(ctx context.Context, token Token) (any, error)
	IsRegistered(token Token) bool
	ClearInstances()
	CreateChild() Container
}

// registration tracks a registered service and, for singletons, its cached
// instance. The per-registration mutex serializes first construction so
// concurrent resolves build at most once.
type registration struct {
	mu       sync.Mutex
	factory  Factory
	lifetime Lifetime
	instance any
	built    bool
	fixed    bool // registered via RegisterInstance; survives ClearInstances
}

// DIContainer is the default implementation of Container.
type DIContainer struct {
	mu       sync.RWMutex
	parent   *DIContainer
	services map[Token]*registration
}

// NewContainer creates a new root container with no parent.
func NewContainer() *DIContainer {
	return &DIContainer{
		services: make(map[Token]*registration),
	}
}

// Register stores a factory for a token.
//
// Registration is idempotent: if the token already has a local registration
// the call is a silent no-op. This keeps re-running a composition-root module
// (hot reload, repeated test setup) from crashing or clobbering wiring; tests
// that need to substitute a service use RegisterInstance, which deliberately
// overwrites.
func (c *DIContainer) Register(token Token, factory Factory, lifetime Lifetime) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.services[token]; exists {
		return nil
	}
	c.services[token] = &registration{
		factory:  factory,
		lifetime: lifetime,
	}
	return nil
}

// RegisterInstance registers a pre-built value as a de-facto singleton,
// replacing any existing registration for the token. Resolve returns the
// exact instance (reference identity preserved), which is what lets a test
// swap in a mock by reference.
func (c *DIContainer) RegisterInstance(token Token, instance any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.services[token] = &registration{
		lifetime: Singleton,
		instance: instance,
		built:    true,
		fixed:    true,
	}
}

// Resolve resolves a dependency by token.
func (c *DIContainer) Resolve(token Token) (any, error) {
	return c.ResolveWithContext(context.Background(), token)
}

// ResolveWithContext resolves a dependency by token, delegating to the parent
// chain when the token has no local registration. A token registered nowhere
// yields an *UnresolvedTokenError naming the token: a missing dependency is a
// wiring bug and must surface at the call site, never as a silent nil.
func (c *DIContainer) ResolveWithContext(ctx context.Context, token Token) (any, error) {
	c.mu.RLock()
	reg, exists := c.services[token]
	parent := c.parent
	c.mu.RUnlock()

	if !exists {
		if parent != nil {
			return parent.ResolveWithContext(ctx, token)
		}
		return nil, &UnresolvedTokenError{Token: token}
	}

	if reg.lifetime == Transient {
		return reg.factory(ctx, c)
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()
	if reg.built {
		return reg.instance, nil
	}

	// Factory errors propagate unwrapped so the original cause stays
	// inspectable via errors.Is/As at the resolve call site.
	instance, err := reg.factory(ctx, c)
	if err != nil {
		return nil, err
	}
	reg.instance = instance
	reg.built = true
	return instance, nil
}

// IsRegistered checks if a token is registered locally. It deliberately does
// not consult the parent chain; composition roots use it to guard conditional
// registration within their own layer.
func (c *DIContainer) IsRegistered(token Token) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, exists := c.services[token]
	return exists
}

// ClearInstances drops cached singleton values without removing
// registrations, so the next resolve re-runs the factory against whatever the
// container holds at that point. Instances registered via RegisterInstance
// are registrations in their own right, not cache, and survive. Used between
// test cases.
func (c *DIContainer) ClearInstances() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, reg := range c.services {
		if reg.fixed {
			continue
		}
		reg.mu.Lock()
		reg.instance = nil
		reg.built = false
		reg.mu.Unlock()
	}
}

// CreateChild returns a new empty container whose resolution falls back to
// this one. This is the primitive the layered chain is built from.
func (c *DIContainer) CreateChild() Container {
	return &DIContainer{
		parent:   c,
		services: make(map[Token]*registration),
	}
}
