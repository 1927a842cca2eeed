package analysis

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func sine(n int, freq, dt, offset float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = offset + math.Sin(2*math.Pi*freq*float64(i)*dt)
	}
	return out
}

func TestDominantFrequency(t *testing.T) {
	tests := []struct {
		name string
		n    int
		freq float64
		dt   float64
	}{
		{"power of two", 256, 2, 1.0 / 64},
		{"odd length", 300, 1.5, 0.02},
		{"slow swing", 1000, 0.4, 0.05},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DominantFrequency(sine(tt.n, tt.freq, tt.dt, 300), tt.dt)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			resolution := 1 / (float64(tt.n) * tt.dt)
			if math.Abs(got-tt.freq) > resolution {
				t.Errorf("expected %.3f Hz (±%.3f), got %.3f", tt.freq, resolution, got)
			}
		})
	}
}

func TestDominantFrequencyErrors(t *testing.T) {
	if _, err := DominantFrequency([]float64{1, 2}, 0.1); !errors.Is(err, ErrTooShort) {
		t.Errorf("expected ErrTooShort, got %v", err)
	}
	if _, err := DominantFrequency(sine(64, 1, 0.1, 0), 0); !errors.Is(err, ErrInvalidDt) {
		t.Errorf("expected ErrInvalidDt, got %v", err)
	}
	if _, err := DominantFrequency(make([]float64, 64), 0.1); !errors.Is(err, ErrNoMovement) {
		t.Errorf("expected ErrNoMovement, got %v", err)
	}
}

func TestPowerSpectrumRemovesMean(t *testing.T) {
	ps := PowerSpectrum(sine(128, 4, 1.0/128, 1000))
	if len(ps) != 64 {
		t.Fatalf("expected 64 bins, got %d", len(ps))
	}
	if ps[0] > 1e-6 {
		t.Errorf("expected empty DC bin, got %f", ps[0])
	}
	if ps[4] < 60 {
		t.Errorf("expected energy at bin 4, got %f", ps[4])
	}
}

func TestFrequencyAxis(t *testing.T) {
	axis := FrequencyAxis(100, 0.01)
	if len(axis) != 50 || axis[1] != 1 {
		t.Errorf("unexpected axis %v", axis[:2])
	}
}

func TestPhasePortrait(t *testing.T) {
	dt := 0.01
	track := sine(200, 1, dt, 0)
	p := NewPhasePortrait(track, dt)
	if len(p.Points) != 198 {
		t.Fatalf("expected 198 points, got %d", len(p.Points))
	}
	// At t=0 the velocity of sin(2 pi t) is 2 pi.
	if math.Abs(p.Points[0].Y-2*math.Pi) > 0.05 {
		t.Errorf("expected velocity ~2pi, got %f", p.Points[0].Y)
	}

	art := p.ToASCII(40, 10)
	lines := strings.Split(strings.TrimRight(art, "\n"), "\n")
	if len(lines) != 10 {
		t.Errorf("expected 10 rows, got %d", len(lines))
	}
	if !strings.ContainsRune(art, '•') {
		t.Error("expected plotted points")
	}

	if got := NewPhasePortrait([]float64{1, 2}, dt).ToASCII(10, 5); got != "" {
		t.Errorf("expected empty plot, got %q", got)
	}
}
