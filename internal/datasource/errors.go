package datasource

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the requested id has no backing resource.
	ErrNotFound = errors.New("resource not found")
	// ErrStaticMode is returned by actions that need the live backend.
	ErrStaticMode = errors.New("not available in static fallback mode")
)

// LoadError reports a failed read of a single logical resource.
type LoadError struct {
	Resource string
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load failed for %s: %v", e.Resource, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
