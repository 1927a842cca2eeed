package rope

import "errors"

// Construction errors. Numerical trouble during a step is absorbed and never
// reported through these.
var (
	// ErrInvalidSpacing indicates a node spacing that is zero or negative.
	ErrInvalidSpacing = errors.New("rope: spacing must be positive")

	// ErrDegenerateSpan indicates identical start and end points.
	ErrDegenerateSpan = errors.New("rope: start and end points coincide")

	// ErrInvalidDamping indicates damping outside (0, 1].
	ErrInvalidDamping = errors.New("rope: damping must be in (0, 1]")

	// ErrInvalidIterations indicates a negative solver iteration count.
	ErrInvalidIterations = errors.New("rope: solver iterations must not be negative")

	// ErrNonFinite indicates NaN or Inf in a construction parameter.
	ErrNonFinite = errors.New("rope: parameter is not finite")

	// ErrTooManyNodes indicates a spacing so small the chain would not fit in memory.
	ErrTooManyNodes = errors.New("rope: spacing yields too many nodes")

	// ErrEmptyChain indicates a rope built from fewer than two nodes.
	ErrEmptyChain = errors.New("rope: chain needs at least two nodes")

	// ErrNodeIndex indicates a node index outside the chain.
	ErrNodeIndex = errors.New("rope: node index out of range")
)
