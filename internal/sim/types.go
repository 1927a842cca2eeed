package sim

import (
	"github.com/san-kum/ropesim/internal/rope"
)

// Metric accumulates a scalar over a run. Observe is called after every
// frame with the frame's dt.
type Metric interface {
	Name() string
	Observe(r *rope.Rope, t, dt float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(r *rope.Rope, t float64)
}

// Driver moves nodes before each Update, standing in for pointer input.
type Driver interface {
	Drive(r *rope.Rope, t float64) error
}

type Config struct {
	Dt       float64
	Duration float64
	Seed     int64
	// Jitter scales each frame's dt by a uniform factor in [1-Jitter, 1+Jitter].
	Jitter float64
	// SampleEvery records one state every N frames. Zero records every frame.
	SampleEvery int
}

// Result holds sampled node positions flattened as [x0, y0, x1, y1, ...].
type Result struct {
	States      [][]float64
	Times       []float64
	Metrics     map[string]float64
	Nodes       int
	StepsTaken  int
	SampleEvery int
}

// Final returns the last sampled state, or nil for an empty result.
func (r *Result) Final() []float64 {
	if len(r.States) == 0 {
		return nil
	}
	return r.States[len(r.States)-1]
}

// Track extracts the trajectory of one coordinate of one node: axis 0 is x,
// axis 1 is y.
func (r *Result) Track(node, axis int) []float64 {
	idx := 2*node + axis
	out := make([]float64, 0, len(r.States))
	for _, s := range r.States {
		if idx < 0 || idx >= len(s) {
			return nil
		}
		out = append(out, s[idx])
	}
	return out
}

// SampleDt is the time between samples assuming an unjittered schedule.
func (r *Result) SampleDt() float64 {
	if len(r.Times) < 2 {
		return 0
	}
	return (r.Times[len(r.Times)-1] - r.Times[0]) / float64(len(r.Times)-1)
}
