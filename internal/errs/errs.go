package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation matches every *ValidationError via errors.Is.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidOperation indicates an operation invoked in a phase that forbids it.
	ErrInvalidOperation = errors.New("invalid operation")
	// ErrNotFound indicates a lookup by an unknown id.
	ErrNotFound = errors.New("not found")
)

// ValidationError reports user input that violates a precondition.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrValidation, e.Reason)
	}
	return fmt.Sprintf("%s: %s %s", ErrValidation, e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// ErrIneligible indicates a quiz set with no answer-complete items.
var ErrIneligible = errors.New("quiz set has no playable items")
