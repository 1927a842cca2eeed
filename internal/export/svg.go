// Package export renders rope frames to static formats.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/ropesim/internal/sim"
	"github.com/san-kum/ropesim/internal/vec"
	"github.com/san-kum/ropesim/internal/viz"
)

var ErrNoFrames = errors.New("export: no frames")

// SVGOptions controls the drawing. Zero values fall back to defaults.
type SVGOptions struct {
	Width, Height int
	Stroke        string
	Background    string
	// Ghosts is how many earlier frames are drawn faded behind the last one.
	Ghosts int
}

func (o SVGOptions) withDefaults() SVGOptions {
	if o.Width <= 0 {
		o.Width = 800
	}
	if o.Height <= 0 {
		o.Height = 600
	}
	if o.Stroke == "" {
		o.Stroke = string(viz.CurrentTheme.Rope)
	}
	if o.Background == "" {
		o.Background = "#0a0a0a"
	}
	if o.Ghosts < 0 {
		o.Ghosts = 0
	}
	return o
}

// Frames splits a result's flattened states into point lists.
func Frames(result *sim.Result) [][]vec.Vec2 {
	frames := make([][]vec.Vec2, 0, len(result.States))
	for _, state := range result.States {
		pts := make([]vec.Vec2, len(state)/2)
		for i := range pts {
			pts[i] = vec.New(state[2*i], state[2*i+1])
		}
		frames = append(frames, pts)
	}
	return frames
}

// WriteSVG draws the last frame as a polyline with its end nodes marked.
// Earlier frames, up to opts.Ghosts, are drawn underneath with rising
// opacity. Coordinates keep the simulation's y-down orientation.
func WriteSVG(w io.Writer, frames [][]vec.Vec2, opts SVGOptions) error {
	if len(frames) == 0 || len(frames[len(frames)-1]) == 0 {
		return ErrNoFrames
	}
	opts = opts.withDefaults()

	first := max(0, len(frames)-1-opts.Ghosts)
	shown := frames[first:]

	var all []vec.Vec2
	for _, f := range shown {
		all = append(all, f...)
	}
	lo, hi := viz.Bounds(all)
	vp := viz.FitViewport(lo, hi, opts.Width, opts.Height)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, opts.Width, opts.Height, opts.Width, opts.Height, opts.Background)

	for i, f := range shown {
		opacity := 1.0
		width := 2.0
		if i < len(shown)-1 {
			opacity = 0.15 + 0.5*float64(i+1)/float64(len(shown))
			width = 1.0
		}
		fmt.Fprintf(&sb, `<polyline fill="none" stroke="%s" stroke-opacity="%.2f" stroke-width="%.1f" points="%s"/>
`, opts.Stroke, opacity, width, polyline(vp, f))
	}

	last := shown[len(shown)-1]
	for _, p := range []vec.Vec2{last[0], last[len(last)-1]} {
		x, y := project(vp, p)
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="4" fill="%s"/>
`, x, y, opts.Stroke)
	}
	sb.WriteString("</svg>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

func project(vp viz.Viewport, p vec.Vec2) (float64, float64) {
	q := vec.Scale(vec.Sub(p, vp.Origin), vp.Scale)
	return q.X, q.Y
}

func polyline(vp viz.Viewport, pts []vec.Vec2) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		x, y := project(vp, p)
		parts[i] = fmt.Sprintf("%.1f,%.1f", x, y)
	}
	return strings.Join(parts, " ")
}
