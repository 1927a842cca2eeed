package sim

import "math/rand"

// Schedule produces per-frame time steps. With zero jitter every frame is
// exactly Dt; otherwise frames vary the way browser frame times do, which
// exercises the rope's dt/prevDt correction.
type Schedule struct {
	dt     float64
	jitter float64
	rng    *rand.Rand
}

func NewSchedule(dt, jitter float64, seed int64) *Schedule {
	return &Schedule{
		dt:     dt,
		jitter: jitter,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

func (s *Schedule) Next() float64 {
	if s.jitter == 0 {
		return s.dt
	}
	return s.dt * (1 + s.jitter*(2*s.rng.Float64()-1))
}
