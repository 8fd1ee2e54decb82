package models

import "fmt"

// ValidationError signals missing or malformed required input. It is raised
// at insert-struct construction, before anything reaches the store.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}
