package server

import (
	"sync"

	"github.com/san-kum/ropesim/internal/config"
	"github.com/san-kum/ropesim/internal/experiment"
	"github.com/san-kum/ropesim/internal/rope"
	"github.com/san-kum/ropesim/internal/sim"
	"github.com/san-kum/ropesim/internal/vec"
)

// Frame is one broadcast snapshot of the rope.
type Frame struct {
	T      float64      `json:"t"`
	Points [][2]float64 `json:"points"`
}

// Scene owns the shared rope. Pointer input from any client and the tick
// loop are serialised through mu.
type Scene struct {
	mu      sync.Mutex
	cfg     *config.Config
	rope    *rope.Rope
	driver  sim.Driver
	sched   *sim.Schedule
	t       float64
	pointer *vec.Vec2
	buf     []vec.Vec2
}

func NewScene(cfg *config.Config) (*Scene, error) {
	s := &Scene{cfg: cfg.Clone()}
	if err := s.reset(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scene) reset() error {
	r, err := rope.New(s.cfg.Rope)
	if err != nil {
		return err
	}
	driver, err := experiment.BuildDriver(r, s.cfg.Drive)
	if err != nil {
		return err
	}
	s.rope = r
	s.driver = driver
	s.sched = sim.NewSchedule(s.cfg.Run.Dt, s.cfg.Run.Jitter, s.cfg.Run.Seed)
	s.t = 0
	s.pointer = nil
	return nil
}

// Reset rebuilds the rope from its config.
func (s *Scene) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reset()
}

// Move records the pointer; it takes over the first node on the next Step.
func (s *Scene) Move(p vec.Vec2) {
	if !vec.IsFinite(p) {
		return
	}
	s.mu.Lock()
	s.pointer = &p
	s.mu.Unlock()
}

// Step advances the rope by one frame and returns the new snapshot.
func (s *Scene) Step() (Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pointer != nil {
		if err := s.rope.MoveNode(0, *s.pointer); err != nil {
			return Frame{}, err
		}
	} else if err := s.driver.Drive(s.rope, s.t); err != nil {
		return Frame{}, err
	}

	dt := s.sched.Next()
	s.rope.Update(s.cfg.Rope.Gravity, dt)
	s.t += dt
	if !s.rope.Finite() {
		return Frame{}, &sim.SimulationError{Time: s.t, Wrapped: sim.ErrDiverged}
	}
	return s.frame(), nil
}

// Snapshot returns the current frame without stepping.
func (s *Scene) Snapshot() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame()
}

func (s *Scene) frame() Frame {
	s.buf = s.rope.Positions(s.buf[:0])
	f := Frame{T: s.t, Points: make([][2]float64, len(s.buf))}
	for i, p := range s.buf {
		f.Points[i] = p.Slice()
	}
	return f
}
