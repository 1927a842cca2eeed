package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/ropesim/internal/rope"
	"github.com/san-kum/ropesim/internal/vec"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDt         = 1.0 / 144
	DefaultDuration   = 10.0
	DefaultFrequency  = 0.5
	DefaultSampleRate = 4
)

// Drive modes for the anchor at Drive.Node.
const (
	DriveHold      = "hold"
	DriveOscillate = "oscillate"
)

var (
	ErrInvalidRun   = errors.New("config: invalid run settings")
	ErrInvalidDrive = errors.New("config: invalid drive settings")
	ErrNoPreset     = errors.New("config: unknown preset")
)

type Config struct {
	Rope  rope.Config `yaml:"rope"`
	Run   RunConfig   `yaml:"run"`
	Drive DriveConfig `yaml:"drive"`
}

type RunConfig struct {
	Dt       float64 `yaml:"dt"`
	Duration float64 `yaml:"duration"`
	Seed     int64   `yaml:"seed"`
	// Jitter varies each frame's dt by up to ±Jitter*Dt.
	Jitter float64 `yaml:"jitter"`
	// SampleEvery records one state every N frames.
	SampleEvery int `yaml:"sample_every"`
}

type DriveConfig struct {
	Mode      string   `yaml:"mode"`
	Node      int      `yaml:"node"`
	Amplitude vec.Vec2 `yaml:"amplitude"`
	Frequency float64  `yaml:"frequency"`
}

func DefaultConfig() *Config {
	return &Config{
		Rope: rope.DefaultConfig(),
		Run: RunConfig{
			Dt:          DefaultDt,
			Duration:    DefaultDuration,
			SampleEvery: DefaultSampleRate,
		},
		Drive: DriveConfig{
			Mode:      DriveHold,
			Frequency: DefaultFrequency,
		},
	}
}

func Load(path string) (*Config, error) {
	return LoadInto(path, DefaultConfig())
}

// LoadInto decodes the file over cfg, so keys the file leaves out keep the
// values cfg already holds.
func LoadInto(path string, cfg *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if err := c.Rope.Validate(); err != nil {
		return err
	}
	if c.Run.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f: %w", c.Run.Dt, ErrInvalidRun)
	}
	if c.Run.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f: %w", c.Run.Duration, ErrInvalidRun)
	}
	if c.Run.Jitter < 0 || c.Run.Jitter >= 1 {
		return fmt.Errorf("jitter must be in [0, 1), got %f: %w", c.Run.Jitter, ErrInvalidRun)
	}
	if c.Run.SampleEvery < 0 {
		return fmt.Errorf("sample_every must not be negative: %w", ErrInvalidRun)
	}
	switch c.Drive.Mode {
	case "", DriveHold:
	case DriveOscillate:
		if c.Drive.Frequency <= 0 {
			return fmt.Errorf("frequency must be positive, got %f: %w", c.Drive.Frequency, ErrInvalidDrive)
		}
	default:
		return fmt.Errorf("unknown mode %q: %w", c.Drive.Mode, ErrInvalidDrive)
	}
	if c.Drive.Node < 0 {
		return fmt.Errorf("node must not be negative: %w", ErrInvalidDrive)
	}
	return nil
}

// Clone returns a deep copy; Config holds no reference types so a value
// copy suffices.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// SetParam sets a numeric field by its flag-style name, used by sweeps.
func (c *Config) SetParam(name string, value float64) error {
	switch name {
	case "iterations":
		c.Rope.Iterations = int(value)
	case "spacing":
		c.Rope.Spacing = value
	case "mass":
		c.Rope.Mass = value
	case "damping":
		c.Rope.Damping = value
	case "gravity":
		c.Rope.Gravity.Y = value
	case "gravity_x":
		c.Rope.Gravity.X = value
	case "dt":
		c.Run.Dt = value
	case "jitter":
		c.Run.Jitter = value
	case "frequency":
		c.Drive.Frequency = value
	default:
		return fmt.Errorf("unknown parameter: %s", name)
	}
	return nil
}

// Params lists the names SetParam accepts.
func Params() []string {
	return []string{"iterations", "spacing", "mass", "damping", "gravity", "gravity_x", "dt", "jitter", "frequency"}
}
