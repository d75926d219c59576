package engine

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the engine wraps exactly one of these.
var (
	ErrInvalidYear        = errors.New("invalid year")
	ErrInvalidPower       = errors.New("invalid power")
	ErrInvalidMix         = errors.New("invalid energy mix")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidAssumptions = errors.New("invalid assumptions")
)

// InputError reports the offending value and the constraint it violated.
type InputError struct {
	// Kind is one of the Err* sentinels.
	Kind error

	// Field names the rejected argument (e.g. "power_watts", "mix.solar").
	Field string

	// Value is the rejected value.
	Value any

	// Constraint describes what the value should have satisfied.
	Constraint string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%v: %s=%v (%s)", e.Kind, e.Field, e.Value, e.Constraint)
}

func (e *InputError) Unwrap() error {
	return e.Kind
}

func newInputError(kind error, field string, value any, constraint string) error {
	return &InputError{Kind: kind, Field: field, Value: value, Constraint: constraint}
}
