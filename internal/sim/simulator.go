package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/ropesim/internal/log"
	"github.com/san-kum/ropesim/internal/rope"
	"github.com/san-kum/ropesim/internal/vec"
)

// MaxFrames bounds the frames a single Run may take.
const MaxFrames = 1 << 26

// maxPrealloc caps the sample slices reserved up front.
const maxPrealloc = 4096

type Simulator struct {
	rope      *rope.Rope
	gravity   vec.Vec2
	driver    Driver
	metrics   []Metric
	observers []Observer
	lg        *log.Logger
}

func New(r *rope.Rope, gravity vec.Vec2) *Simulator {
	return &Simulator{
		rope:      r,
		gravity:   gravity,
		driver:    Hold{},
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)       { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer)   { s.observers = append(s.observers, o) }
func (s *Simulator) SetLogger(lg *log.Logger) { s.lg = lg }

// SetDriver replaces the node driver; nil restores Hold.
func (s *Simulator) SetDriver(d Driver) {
	if d == nil {
		d = Hold{}
	}
	s.driver = d
}

func (s *Simulator) Rope() *rope.Rope { return s.rope }

func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := frameCount(cfg)
	stride := cfg.SampleEvery
	if stride <= 0 {
		stride = 1
	}
	samples := min(steps/stride+1, maxPrealloc)
	result := &Result{
		States:      make([][]float64, 0, samples),
		Times:       make([]float64, 0, samples),
		Metrics:     make(map[string]float64),
		Nodes:       s.rope.Len(),
		SampleEvery: stride,
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	s.lg.Debugf("run start: %d nodes, %d frames, dt=%g jitter=%g", s.rope.Len(), steps, cfg.Dt, cfg.Jitter)

	sched := NewSchedule(cfg.Dt, cfg.Jitter, cfg.Seed)
	t := 0.0
	result.States = append(result.States, s.rope.Flatten())
	result.Times = append(result.Times, t)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			s.finish(result)
			return result, ctx.Err()
		default:
		}

		if err := s.driver.Drive(s.rope, t); err != nil {
			s.finish(result)
			return result, &SimulationError{Step: i, Time: t, Wrapped: err}
		}

		dt := sched.Next()
		s.rope.Update(s.gravity, dt)
		t += dt

		if !s.rope.Finite() {
			s.lg.Warnf("rope diverged at step %d (t=%.4f)", i, t)
			s.finish(result)
			return result, &SimulationError{Step: i, Time: t, Wrapped: ErrDiverged}
		}

		result.StepsTaken++
		for _, m := range s.metrics {
			m.Observe(s.rope, t, dt)
		}
		for _, obs := range s.observers {
			obs.OnStep(s.rope, t)
		}

		if (i+1)%stride == 0 {
			result.States = append(result.States, s.rope.Flatten())
			result.Times = append(result.Times, t)
		}
	}

	s.finish(result)
	s.lg.Debugf("run done: %d frames, t=%.4f", result.StepsTaken, t)
	return result, nil
}

func (s *Simulator) finish(result *Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 || math.IsNaN(cfg.Dt) {
		return fmt.Errorf("dt must be positive, got %f: %w", cfg.Dt, ErrInvalidConfig)
	}
	if cfg.Duration <= 0 || math.IsNaN(cfg.Duration) {
		return fmt.Errorf("duration must be positive, got %f: %w", cfg.Duration, ErrInvalidConfig)
	}
	if cfg.Jitter < 0 || cfg.Jitter >= 1 {
		return fmt.Errorf("jitter must be in [0, 1), got %f: %w", cfg.Jitter, ErrInvalidConfig)
	}
	if frames := cfg.Duration / cfg.Dt; !(frames <= MaxFrames) {
		return fmt.Errorf("%g frames exceeds %d: %w", frames, MaxFrames, ErrInvalidConfig)
	}
	return nil
}

func frameCount(cfg Config) int {
	return int(cfg.Duration/cfg.Dt + 1e-9)
}
