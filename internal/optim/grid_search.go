// Package optim searches rope configurations for the cheapest one that
// holds a metric under a tolerance.
package optim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/san-kum/ropesim/internal/config"
	"github.com/san-kum/ropesim/internal/experiment"
	"github.com/san-kum/ropesim/internal/log"
	"github.com/san-kum/ropesim/internal/sim"
)

var ErrEmptyGrid = errors.New("optim: empty grid")

// Candidate is one evaluated grid point. Work counts node relaxations over
// the whole run, the cost a real-time driver pays for the setting.
type Candidate struct {
	Params   map[string]float64
	Value    float64
	Work     int
	Feasible bool
	Diverged bool
}

// GridSearch evaluates every combination of Ranges on top of Base.
type GridSearch struct {
	Base      *config.Config
	Params    []string
	Ranges    [][]float64
	Metric    string
	Tolerance float64
}

func NewGridSearch(base *config.Config, metric string, tolerance float64) *GridSearch {
	return &GridSearch{Base: base, Metric: metric, Tolerance: tolerance}
}

// Add appends a parameter axis.
func (g *GridSearch) Add(param string, values ...float64) *GridSearch {
	g.Params = append(g.Params, param)
	g.Ranges = append(g.Ranges, values)
	return g
}

// ParseAxis reads "name=v1,v2,..." into a parameter axis.
func ParseAxis(s string) (string, []float64, error) {
	name, list, ok := strings.Cut(s, "=")
	if !ok || name == "" || list == "" {
		return "", nil, fmt.Errorf("axis %q: want name=v1,v2,...", s)
	}
	var vals []float64
	for _, f := range strings.Split(list, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return "", nil, fmt.Errorf("axis %q: %w", s, err)
		}
		vals = append(vals, v)
	}
	return name, vals, nil
}

// Search runs every grid point and returns the best candidate along with all
// of them. The best is the feasible point with the least work, or the lowest
// metric when nothing is feasible.
func (g *GridSearch) Search(ctx context.Context, lg *log.Logger) (*Candidate, []Candidate, error) {
	if len(g.Params) == 0 {
		return nil, nil, ErrEmptyGrid
	}
	for i, r := range g.Ranges {
		if len(r) == 0 {
			return nil, nil, fmt.Errorf("%s: %w", g.Params[i], ErrEmptyGrid)
		}
	}

	var all []Candidate
	if err := g.searchRecursive(ctx, 0, map[string]float64{}, &all, lg); err != nil {
		return nil, nil, err
	}

	ranked := make([]Candidate, len(all))
	copy(ranked, all)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Feasible != b.Feasible {
			return a.Feasible
		}
		if a.Feasible && a.Work != b.Work {
			return a.Work < b.Work
		}
		return a.Value < b.Value
	})
	return &ranked[0], all, nil
}

func (g *GridSearch) searchRecursive(ctx context.Context, depth int, current map[string]float64, out *[]Candidate, lg *log.Logger) error {
	if depth == len(g.Params) {
		c, err := g.evaluate(ctx, current)
		if err != nil {
			return err
		}
		lg.Debug("grid point", "params", c.Params, "value", c.Value, "work", c.Work)
		*out = append(*out, c)
		return nil
	}

	for _, val := range g.Ranges[depth] {
		next := make(map[string]float64, len(current)+1)
		for k, v := range current {
			next[k] = v
		}
		next[g.Params[depth]] = val

		if err := g.searchRecursive(ctx, depth+1, next, out, lg); err != nil {
			return err
		}
	}
	return nil
}

func (g *GridSearch) evaluate(ctx context.Context, params map[string]float64) (Candidate, error) {
	c := Candidate{Params: params, Value: math.Inf(1)}

	cfg := g.Base.Clone()
	for k, v := range params {
		if err := cfg.SetParam(k, v); err != nil {
			return c, err
		}
	}

	exp := experiment.New(cfg)
	if err := exp.Setup(nil); err != nil {
		return c, fmt.Errorf("%v: %w", params, err)
	}

	result, err := exp.Run(ctx)
	if errors.Is(err, sim.ErrDiverged) {
		c.Diverged = true
		return c, nil
	}
	if err != nil {
		return c, err
	}

	val, ok := result.Metrics[g.Metric]
	if !ok {
		return c, fmt.Errorf("unknown metric %q", g.Metric)
	}
	c.Value = val
	c.Work = result.StepsTaken * result.Nodes * cfg.Rope.Iterations
	c.Feasible = val <= g.Tolerance
	return c, nil
}
