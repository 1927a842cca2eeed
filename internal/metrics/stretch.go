package metrics

import (
	"math"

	"github.com/san-kum/ropesim/internal/rope"
)

// Stretch reports the summed constraint error of the last observed frame.
type Stretch struct {
	name  string
	total float64
}

func NewStretch() *Stretch {
	return &Stretch{name: "stretch"}
}

func (s *Stretch) Name() string { return s.name }

func (s *Stretch) Observe(r *rope.Rope, t, dt float64) {
	s.total, _ = r.Stretch()
}

func (s *Stretch) Value() float64 { return s.total }

func (s *Stretch) Reset() { s.total = 0 }

// MaxStretch reports the worst single-link error seen over a run.
type MaxStretch struct {
	name  string
	worst float64
}

func NewMaxStretch() *MaxStretch {
	return &MaxStretch{name: "max_stretch"}
}

func (m *MaxStretch) Name() string { return m.name }

func (m *MaxStretch) Observe(r *rope.Rope, t, dt float64) {
	_, worst := r.Stretch()
	m.worst = math.Max(m.worst, worst)
}

func (m *MaxStretch) Value() float64 { return m.worst }

func (m *MaxStretch) Reset() { m.worst = 0 }
