package metrics

import (
	"math"

	"github.com/san-kum/ropesim/internal/rope"
	"github.com/san-kum/ropesim/internal/vec"
)

// Sag is the deepest any node hung below the lower of the two end nodes,
// with y growing downward as on screen.
type Sag struct {
	name string
	max  float64
	buf  []vec.Vec2
}

func NewSag() *Sag {
	return &Sag{name: "sag"}
}

func (s *Sag) Name() string { return s.name }

func (s *Sag) Observe(r *rope.Rope, t, dt float64) {
	s.buf = r.Positions(s.buf[:0])
	if len(s.buf) == 0 {
		return
	}
	ends := math.Max(s.buf[0].Y, s.buf[len(s.buf)-1].Y)
	for _, p := range s.buf {
		s.max = math.Max(s.max, p.Y-ends)
	}
}

func (s *Sag) Value() float64 { return s.max }

func (s *Sag) Reset() { s.max = 0 }
