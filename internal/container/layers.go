package container

// Layers holds the four chained containers of the application. Each layer
// inherits every registration of its predecessor through the parent pointer:
//
//	Core ← Infrastructure ← Domain ← Application
//
// so an Application factory can resolve a Domain, Infrastructure or Core
// token, but a Core factory sees only Core.
//
// Registration is lazy: wiring a factory never invokes it, so registration
// order across layers does not matter. What matters is that by the time a
// token is first resolved, everything its factory resolves in turn has been
// registered somewhere in the chain. The composition root registers the
// layers bottom-up (see service_initialization.go), which satisfies this
// trivially.
//
// Nothing stops a factory body in a lower layer from holding a reference to a
// higher container and reaching upward; that inversion is forbidden by code
// review and the import layout, not by a runtime check.
type Layers struct {
	Core           Container
	Infrastructure Container
	Domain         Container
	Application    Container
}

// NewLayers builds an empty four-layer chain.
func NewLayers() *Layers {
	core := NewContainer()
	infrastructure := core.CreateChild()
	domain := infrastructure.CreateChild()
	application := domain.CreateChild()

	return &Layers{
		Core:           core,
		Infrastructure: infrastructure,
		Domain:         domain,
		Application:    application,
	}
}

// ClearInstances drops the cached singletons of every layer, keeping all
// registrations. Test setup calls this between cases so one test's resolved
// instances (and anything they captured) never leak into the next.
func (l *Layers) ClearInstances() {
	l.Core.ClearInstances()
	l.Infrastructure.ClearInstances()
	l.Domain.ClearInstances()
	l.Application.ClearInstances()
}
