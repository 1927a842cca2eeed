package automation

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"sync/atomic"

	"github.com/san-kum/ropesim/internal/config"
	"github.com/san-kum/ropesim/internal/experiment"
	"github.com/san-kum/ropesim/internal/log"
	"github.com/san-kum/ropesim/internal/rope"
	"github.com/san-kum/ropesim/internal/sim"
	"github.com/san-kum/ropesim/internal/storage"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// Scenario defines a scripted sequence of rope runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep starts from Preset (or the defaults), replaces whichever
// sections are present, then applies Params by name.
type ScenarioStep struct {
	Name   string              `yaml:"name"`
	Preset string              `yaml:"preset"`
	Rope   *rope.Config        `yaml:"rope"`
	Run    *config.RunConfig   `yaml:"run"`
	Drive  *config.DriveConfig `yaml:"drive"`
	Params map[string]float64  `yaml:"params"`
	SaveAs string              `yaml:"save_as"`
}

type StepResult struct {
	Name   string
	Config *config.Config
	Result *sim.Result
	RunID  string
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("%s: scenario has no steps", path)
	}

	return &scenario, nil
}

// Resolve builds the full config for a step.
func (s ScenarioStep) Resolve() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		p, err := config.GetPreset(s.Preset)
		if err != nil {
			return nil, err
		}
		cfg = p
	}
	if s.Rope != nil {
		cfg.Rope = *s.Rope
	}
	if s.Run != nil {
		cfg.Run = *s.Run
	}
	if s.Drive != nil {
		cfg.Drive = *s.Drive
	}
	for k, v := range s.Params {
		if err := cfg.SetParam(k, v); err != nil {
			return nil, err
		}
	}
	return cfg, cfg.Validate()
}

// RunScenario executes all steps in order. Steps with SaveAs are stored when
// st is non-nil.
func RunScenario(ctx context.Context, scenario *Scenario, st *storage.Store, lg *log.Logger) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		name := step.Name
		if name == "" {
			name = fmt.Sprintf("step%d", i+1)
		}
		lg.Infof("scenario %s: running step %d/%d: %s", scenario.Name, i+1, len(scenario.Steps), name)

		cfg, err := step.Resolve()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		exp := experiment.New(cfg)
		if err := exp.Setup(lg); err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		sr := StepResult{Name: name, Config: cfg, Result: result}
		if step.SaveAs != "" && st != nil {
			if sr.RunID, err = st.Save(step.SaveAs, cfg, result); err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}
		results = append(results, sr)
	}

	return results, nil
}

// ParameterSweep runs one rope per value of a config parameter.
type ParameterSweep struct {
	Base     *config.Config
	Param    string
	Min      float64
	Max      float64
	NumSteps int
	// Workers bounds concurrent runs; zero means GOMAXPROCS.
	Workers int
}

// SweepResult holds results from a parameter sweep
type SweepResult struct {
	ParamValue float64
	Stretch    float64
	MaxStretch float64
	Sag        float64
	Kinetic    float64
	Diverged   bool
}

func (p *ParameterSweep) values() []float64 {
	if p.NumSteps == 1 {
		return []float64{p.Min}
	}
	vals := make([]float64, p.NumSteps)
	step := (p.Max - p.Min) / float64(p.NumSteps-1)
	for i := range vals {
		vals[i] = p.Min + float64(i)*step
	}
	return vals
}

func workerLimit(n int) int {
	if n <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return n
}

// RunSweep executes a parameter sweep with independent ropes in parallel.
// Results come back ordered by parameter value. A diverged rope is reported
// rather than failing the sweep.
func RunSweep(ctx context.Context, sweep *ParameterSweep, lg *log.Logger) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step")
	}
	if err := sweep.Base.Clone().SetParam(sweep.Param, sweep.Min); err != nil {
		return nil, err
	}

	vals := sweep.values()
	results := make([]SweepResult, len(vals))
	var done atomic.Int32

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workerLimit(sweep.Workers))

	for i, v := range vals {
		g.Go(func() error {
			cfg := sweep.Base.Clone()
			if err := cfg.SetParam(sweep.Param, v); err != nil {
				return err
			}

			exp := experiment.New(cfg)
			if err := exp.Setup(nil); err != nil {
				return fmt.Errorf("%s=%g: %w", sweep.Param, v, err)
			}

			res, err := exp.Run(ctx)
			diverged := errors.Is(err, sim.ErrDiverged)
			if err != nil && !diverged {
				return fmt.Errorf("%s=%g: %w", sweep.Param, v, err)
			}

			results[i] = SweepResult{
				ParamValue: v,
				Stretch:    res.Metrics["stretch"],
				MaxStretch: res.Metrics["max_stretch"],
				Sag:        res.Metrics["sag"],
				Kinetic:    res.Metrics["kinetic"],
				Diverged:   diverged,
			}
			lg.Infof("sweep %d/%d: %s=%.4f", done.Add(1), len(vals), sweep.Param, v)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// MonteCarloConfig repeats one config under different frame-time jitter
// seeds.
type MonteCarloConfig struct {
	Base      *config.Config
	NumTrials int
	Seed      int64
	Workers   int
	// StretchLimit marks a trial unstable when its worst link error exceeds
	// it. Zero means only divergence counts.
	StretchLimit float64
}

// MonteCarloResult holds statistics from Monte Carlo runs
type MonteCarloResult struct {
	TrialID    int
	Seed       int64
	MaxStretch float64
	Sag        float64
	Stable     bool
}

// RunMonteCarlo executes trials in parallel, trial i using seed Seed+i.
func RunMonteCarlo(ctx context.Context, mc *MonteCarloConfig, lg *log.Logger) ([]MonteCarloResult, error) {
	if mc.NumTrials < 1 {
		return nil, fmt.Errorf("monte carlo needs at least one trial, got %d", mc.NumTrials)
	}
	results := make([]MonteCarloResult, mc.NumTrials)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workerLimit(mc.Workers))

	for trial := 0; trial < mc.NumTrials; trial++ {
		g.Go(func() error {
			cfg := mc.Base.Clone()
			cfg.Run.Seed = mc.Seed + int64(trial)

			exp := experiment.New(cfg)
			if err := exp.Setup(nil); err != nil {
				return err
			}

			res, err := exp.Run(ctx)
			diverged := errors.Is(err, sim.ErrDiverged)
			if err != nil && !diverged {
				return err
			}

			stable := !diverged
			if mc.StretchLimit > 0 && res.Metrics["max_stretch"] > mc.StretchLimit {
				stable = false
			}
			results[trial] = MonteCarloResult{
				TrialID:    trial,
				Seed:       cfg.Run.Seed,
				MaxStretch: res.Metrics["max_stretch"],
				Sag:        res.Metrics["sag"],
				Stable:     stable,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	lg.Infof("monte carlo: %d trials complete", mc.NumTrials)
	return results, nil
}

// MonteCarloStats computes summary statistics from Monte Carlo results
func MonteCarloStats(results []MonteCarloResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}
