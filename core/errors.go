package core

import "fmt"

var (
	// ErrNotFound is returned when an entity with the given id does not exist
	// in the underlying store.
	ErrNotFound = fmt.Errorf("entity not found")

	// ErrUnknownPersona is returned when a persona id cannot be resolved to a
	// registered persona or its backing agent participant. Callers must
	// surface this condition rather than silently dropping the response.
	ErrUnknownPersona = fmt.Errorf("unknown persona")
)
