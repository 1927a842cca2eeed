package analysis

import (
	"errors"
	"fmt"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

var (
	ErrTooShort   = errors.New("analysis: too few samples")
	ErrInvalidDt  = errors.New("analysis: sample interval must be positive")
	ErrNoMovement = errors.New("analysis: signal is constant")
)

const minSamples = 4

// PowerSpectrum returns |X_k| for k < n/2 after removing the mean, so bin 0
// only reflects numerical residue.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}
	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	centred := make([]float64, len(data))
	for i, v := range data {
		centred[i] = v - mean
	}

	bins := fft.FFTReal(centred)
	ps := make([]float64, len(bins)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(bins[i])
	}
	return ps
}

// DominantFrequency returns the frequency in Hz of the strongest bin above
// DC for samples taken dt apart.
func DominantFrequency(samples []float64, dt float64) (float64, error) {
	if len(samples) < minSamples {
		return 0, fmt.Errorf("%d samples, need %d: %w", len(samples), minSamples, ErrTooShort)
	}
	if dt <= 0 {
		return 0, fmt.Errorf("dt %f: %w", dt, ErrInvalidDt)
	}

	ps := PowerSpectrum(samples)
	best, peak := 0, 0.0
	for k := 1; k < len(ps); k++ {
		if ps[k] > peak {
			best, peak = k, ps[k]
		}
	}
	if best == 0 {
		return 0, ErrNoMovement
	}
	return float64(best) / (float64(len(samples)) * dt), nil
}

// FrequencyAxis returns the frequency of each PowerSpectrum bin.
func FrequencyAxis(n int, dt float64) []float64 {
	bins := make([]float64, n/2)
	if dt <= 0 {
		return bins
	}
	for k := range bins {
		bins[k] = float64(k) / (float64(n) * dt)
	}
	return bins
}
