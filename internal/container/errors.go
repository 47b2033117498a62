package container

import "fmt"

// UnresolvedTokenError is returned when a token has no registration anywhere
// in the container chain. It is always a wiring bug, expected to crash the
// composition root at startup or fail the specific test, never to be handled
// gracefully at runtime.
type UnresolvedTokenError struct {
	Token Token
}

// Error implements the error interface.
func (e *UnresolvedTokenError) Error() string {
	return fmt.Sprintf("container: no registration for token %q", string(e.Token))
}

// ResolvedTypeError is returned by the typed resolver facade when a token
// resolves to a value of an unexpected type.
type ResolvedTypeError struct {
	Token Token
	Want  string
	Got   string
}

// Error implements the error interface.
func (e *ResolvedTypeError) Error() string {
	return fmt.Sprintf("container: token %q resolved to %s, want %s", string(e.Token), e.Got, e.Want)
}
