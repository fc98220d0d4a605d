package models

import "fmt"

// ValidationError reports a malformed configuration value. It is raised at
// construction time and surfaced to the caller unchanged; nothing in the core
// recovers from it.
type ValidationError struct {
	// Field is the configuration field that failed validation.
	Field string

	// Value is the offending value, when one exists (empty for e.g. an
	// empty regions list).
	Value string

	// Reason describes why the value was rejected.
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}
