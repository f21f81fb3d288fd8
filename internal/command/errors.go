package command

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownCommand is returned by Dispatch for an unregistered name.
	ErrUnknownCommand = errors.New("command: unknown command")

	// ErrCommandExists is returned by Register for a duplicate name.
	ErrCommandExists = errors.New("command: already registered")
)

// ValidationError reports which argument failed validation and how.
// It is returned before any handler runs, so a ValidationError implies
// no state was touched.
type ValidationError struct {
	Field      string
	Constraint string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("command: invalid argument %q: %s", e.Field, e.Constraint)
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Constraint: fmt.Sprintf(format, args...)}
}
