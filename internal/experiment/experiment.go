// Package experiment assembles a rope, its simulator and its driver from a
// config file or preset.
package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/ropesim/internal/config"
	"github.com/san-kum/ropesim/internal/log"
	"github.com/san-kum/ropesim/internal/metrics"
	"github.com/san-kum/ropesim/internal/rope"
	"github.com/san-kum/ropesim/internal/sim"
)

type Experiment struct {
	cfg       *config.Config
	rope      *rope.Rope
	simulator *sim.Simulator
}

func New(cfg *config.Config) *Experiment {
	return &Experiment{cfg: cfg}
}

// Setup validates the config, builds the rope and wires the driver, the
// standard metrics plus any extras, and the logger.
func (e *Experiment) Setup(lg *log.Logger, extra ...sim.Metric) error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}

	r, err := rope.New(e.cfg.Rope)
	if err != nil {
		return err
	}

	s := sim.New(r, e.cfg.Rope.Gravity)
	s.SetLogger(lg)

	driver, err := BuildDriver(r, e.cfg.Drive)
	if err != nil {
		return err
	}
	s.SetDriver(driver)

	for _, m := range metrics.Standard() {
		s.AddMetric(m)
	}
	for _, m := range extra {
		s.AddMetric(m)
	}

	e.rope = r
	e.simulator = s
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.simulator.Run(ctx, e.SimConfig())
}

// SimConfig maps the run section of the config onto the simulator schedule.
func (e *Experiment) SimConfig() sim.Config {
	return sim.Config{
		Dt:          e.cfg.Run.Dt,
		Duration:    e.cfg.Run.Duration,
		Seed:        e.cfg.Run.Seed,
		Jitter:      e.cfg.Run.Jitter,
		SampleEvery: e.cfg.Run.SampleEvery,
	}
}

func (e *Experiment) Config() *config.Config { return e.cfg }

func (e *Experiment) Rope() *rope.Rope { return e.rope }

// Simulator returns the underlying simulator for adding observers.
func (e *Experiment) Simulator() *sim.Simulator { return e.simulator }

// BuildDriver returns the driver for a drive section.
func BuildDriver(r *rope.Rope, d config.DriveConfig) (sim.Driver, error) {
	switch d.Mode {
	case "", config.DriveHold:
		return sim.Hold{}, nil
	case config.DriveOscillate:
		return sim.NewOscillate(r, d.Node, d.Amplitude, d.Frequency)
	default:
		return nil, fmt.Errorf("unknown drive mode %q: %w", d.Mode, config.ErrInvalidDrive)
	}
}
