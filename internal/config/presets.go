package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/ropesim/internal/rope"
	"github.com/san-kum/ropesim/internal/vec"
)

func preset(mutate func(c *Config)) *Config {
	c := DefaultConfig()
	mutate(c)
	return c
}

var Presets = map[string]*Config{
	"hanging": DefaultConfig(),
	"taut": preset(func(c *Config) {
		c.Rope.Gravity = vec.Zero()
		c.Rope.Mass = 0
	}),
	"heavy": preset(func(c *Config) {
		c.Rope.Mass = 2000
		c.Rope.Damping = 0.95
	}),
	"stretchy": preset(func(c *Config) {
		c.Rope.Iterations = 5
	}),
	"short": preset(func(c *Config) {
		c.Rope = rope.Config{
			Start: vec.New(300, 100), End: vec.New(500, 100),
			Spacing: 20, Mass: 1, Damping: 0.99,
			Gravity: vec.New(0, 980), Iterations: 50,
		}
	}),
	"whip": preset(func(c *Config) {
		c.Rope.Iterations = 200
		c.Drive = DriveConfig{
			Mode:      DriveOscillate,
			Amplitude: vec.New(0, 120),
			Frequency: 1.5,
		}
	}),
	"jittery": preset(func(c *Config) {
		c.Run.Jitter = 0.5
		c.Run.Seed = 7
	}),
}

// GetPreset returns a copy of the named preset.
func GetPreset(name string) (*Config, error) {
	cfg, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%s (available: %v): %w", name, ListPresets(), ErrNoPreset)
	}
	return cfg.Clone(), nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
