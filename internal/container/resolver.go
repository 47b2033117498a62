package container

import "fmt"

// Resolve fetches a fully-wired service from the application layer of the
// process-wide chain and asserts it to T. It is the single entry point for
// presentation-layer code (HTTP handlers, tests):
//
//	uc, err := container.Resolve[*usecase.CreateUserUseCase](container.CreateUserUseCaseToken)
//
// It must not be called from inside factory bodies; factories receive their
// own container and resolve through it, keeping construction fail-fast and
// layer-bounded.
func Resolve[T any](token Token) (T, error) {
	var zero T

	value, err := GetInstance().Application().Resolve(token)
	if err != nil {
		return zero, err
	}

	typed, ok := value.(T)
	if !ok {
		return zero, &ResolvedTypeError{
			Token: token,
			Want:  fmt.Sprintf("%T", zero),
			Got:   fmt.Sprintf("%T", value),
		}
	}
	return typed, nil
}

// MustResolve is like Resolve but panics on failure. Intended for startup
// paths where a missing registration should crash the process immediately.
func MustResolve[T any](token Token) T {
	service, err := Resolve[T](token)
	if err != nil {
		panic("failed to resolve service " + string(token) + ": " + err.Error())
	}
	return service
}
