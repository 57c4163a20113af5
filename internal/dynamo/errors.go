package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for rendering operations.
var (
	// ErrConfiguration indicates parameters that make a run undefined.
	ErrConfiguration = errors.New("dynamo: invalid configuration")

	// ErrDegenerateOrbit indicates an orbit with zero extent on both axes.
	ErrDegenerateOrbit = errors.New("dynamo: degenerate orbit (zero extent)")

	// ErrNumericDivergence indicates a NaN or Inf coordinate mid-iteration.
	ErrNumericDivergence = errors.New("dynamo: orbit diverged (NaN or Inf detected)")

	// ErrEmptyGrid indicates a density grid with no deposited mass.
	ErrEmptyGrid = errors.New("dynamo: density grid is empty")
)

// ConfigError names the parameter that failed validation.
type ConfigError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%v: %s=%g: %s", ErrConfiguration, e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrConfiguration
}

// IterationError wraps an error with the iteration that produced it.
// Step counts from zero and includes the warm-up iterations.
type IterationError struct {
	Step    int
	Point   Point
	Wrapped error
}

func (e *IterationError) Error() string {
	return fmt.Sprintf("step %d at %v: %v", e.Step, e.Point, e.Wrapped)
}

func (e *IterationError) Unwrap() error {
	return e.Wrapped
}
