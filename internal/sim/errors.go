package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig indicates a run schedule that cannot be stepped.
	ErrInvalidConfig = errors.New("sim: invalid run configuration")

	// ErrDiverged indicates a node position became NaN or Inf.
	ErrDiverged = errors.New("sim: rope diverged (non-finite position)")
)

// SimulationError wraps an error with the frame it happened on.
type SimulationError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
