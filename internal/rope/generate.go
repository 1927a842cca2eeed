package rope

import (
	"fmt"
	"math"

	"github.com/san-kum/ropesim/internal/vec"
)

// MaxNodes bounds the chain length Generate will build.
const MaxNodes = 1 << 20

// countEpsilon absorbs rounding in span/spacing so that an exact multiple
// such as 40/10 is not floored to one node short.
const countEpsilon = 1e-9

// NodeCount returns how many nodes Generate places between start and end:
// one per whole spacing along the span plus the closing endpoint, and never
// fewer than the two anchors. The count is bounded by MaxNodes before it is
// converted to int.
func NodeCount(start, end vec.Vec2, spacing float64) (int, error) {
	span := vec.Dist(start, end)
	c := math.Floor(span/spacing+countEpsilon) + 1
	if !(c <= MaxNodes) {
		return 0, fmt.Errorf("%g nodes for spacing %g: %w", c, spacing, ErrTooManyNodes)
	}
	return max(int(c), 2), nil
}

// Generate lays out a straight chain from start to end. Every node gets
// RestLength = spacing even when the interpolated gap differs slightly, so a
// span that is not a whole multiple of spacing starts under some tension.
// Both endpoints are fixed.
func Generate(start, end vec.Vec2, spacing, mass, damping float64) ([]Node, error) {
	if err := checkGeometry(start, end, spacing, mass, damping); err != nil {
		return nil, err
	}

	n, err := NodeCount(start, end, spacing)
	if err != nil {
		return nil, err
	}

	nodes := make([]Node, n)
	for i := range nodes {
		frac := 0.0
		if n > 1 {
			frac = float64(i) / float64(n-1)
		}
		p := vec.LerpVec(start, end, frac)

		nodes[i] = Node{
			Pos:        p,
			PrevPos:    p,
			RestLength: spacing,
			Mass:       mass,
			Damping:    damping,
			Prev:       i - 1,
			Next:       i + 1,
		}
	}
	nodes[n-1].Next = NoLink

	nodes[0].Fixed = true
	nodes[n-1].Fixed = true

	return nodes, nil
}

func checkGeometry(start, end vec.Vec2, spacing, mass, damping float64) error {
	for _, v := range []float64{start.X, start.Y, end.X, end.Y, spacing, mass, damping} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrNonFinite
		}
	}
	if spacing <= 0 {
		return fmt.Errorf("spacing %g: %w", spacing, ErrInvalidSpacing)
	}
	if start == end {
		return fmt.Errorf("start %v: %w", start, ErrDegenerateSpan)
	}
	if damping <= 0 || damping > 1 {
		return fmt.Errorf("damping %g: %w", damping, ErrInvalidDamping)
	}
	return nil
}
