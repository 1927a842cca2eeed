package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/ropesim/internal/rope"
	"github.com/san-kum/ropesim/internal/vec"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Run.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Run.Duration <= 0 {
		t.Error("duration should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg, err := GetPreset("taut")
	if err != nil {
		t.Fatalf("expected preset, got %v", err)
	}
	if cfg.Rope.Gravity != vec.Zero() {
		t.Errorf("expected zero gravity, got %v", cfg.Rope.Gravity)
	}

	cfg.Rope.Mass = 99
	again, _ := GetPreset("taut")
	if again.Rope.Mass == 99 {
		t.Error("preset was mutated through returned copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	_, err := GetPreset("nonexistent")
	if !errors.Is(err, ErrNoPreset) {
		t.Errorf("expected ErrNoPreset, got %v", err)
	}
}

func TestPresetsValid(t *testing.T) {
	for _, name := range ListPresets() {
		cfg, _ := GetPreset(name)
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		want   error
	}{
		{"zero dt", func(c *Config) { c.Run.Dt = 0 }, ErrInvalidRun},
		{"negative duration", func(c *Config) { c.Run.Duration = -1 }, ErrInvalidRun},
		{"jitter one", func(c *Config) { c.Run.Jitter = 1 }, ErrInvalidRun},
		{"bad mode", func(c *Config) { c.Drive.Mode = "spin" }, ErrInvalidDrive},
		{"zero frequency", func(c *Config) { c.Drive.Mode = DriveOscillate; c.Drive.Frequency = 0 }, ErrInvalidDrive},
		{"zero spacing", func(c *Config) { c.Rope.Spacing = 0 }, rope.ErrInvalidSpacing},
		{"same endpoints", func(c *Config) { c.Rope.End = c.Rope.Start }, rope.ErrDegenerateSpan},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rope.yaml")

	cfg := DefaultConfig()
	cfg.Rope.Iterations = 42
	cfg.Rope.End = vec.New(650, 250)
	cfg.Drive.Mode = DriveOscillate

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Rope.Iterations != 42 {
		t.Errorf("expected 42 iterations, got %d", loaded.Rope.Iterations)
	}
	if loaded.Rope.End != vec.New(650, 250) {
		t.Errorf("expected end (650,250), got %v", loaded.Rope.End)
	}
	if loaded.Drive.Mode != DriveOscillate {
		t.Errorf("expected oscillate, got %s", loaded.Drive.Mode)
	}
}

func TestLoadIntoKeepsPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("rope:\n  iterations: 42\n"), 0644); err != nil {
		t.Fatal(err)
	}

	base, err := GetPreset("whip")
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadInto(path, base)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Rope.Iterations != 42 {
		t.Errorf("expected 42 iterations, got %d", cfg.Rope.Iterations)
	}
	if cfg.Drive.Mode != DriveOscillate || cfg.Drive.Frequency != 1.5 {
		t.Errorf("preset drive lost: %+v", cfg.Drive)
	}
	if cfg.Rope.Spacing != 10 || cfg.Rope.Start != vec.New(100, 300) {
		t.Errorf("rope fields missing from the file changed: %+v", cfg.Rope)
	}
}

func TestSetParam(t *testing.T) {
	cfg := DefaultConfig()
	for _, name := range Params() {
		if err := cfg.SetParam(name, 3); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
	if cfg.Rope.Iterations != 3 || cfg.Rope.Gravity.Y != 3 {
		t.Errorf("params not applied: %+v", cfg.Rope)
	}
	if err := cfg.SetParam("colour", 1); err == nil {
		t.Error("expected error for unknown parameter")
	}
}
