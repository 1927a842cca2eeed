package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const ropeWidth = 2

// gradientStops colour the rope by screen x: white, yellow, blue, red, white.
var gradientStops = []rl.Color{rl.White, rl.Yellow, rl.Blue, rl.Red, rl.White}

// gradientAt samples gradientStops at f in [0, 1].
func gradientAt(f float32) rl.Color {
	f = min(max(f, 0), 1)
	span := float32(len(gradientStops) - 1)
	i := int(f * span)
	if i >= len(gradientStops)-1 {
		return gradientStops[len(gradientStops)-1]
	}
	return lerpColor(gradientStops[i], gradientStops[i+1], f*span-float32(i))
}

func lerpColor(a, b rl.Color, t float32) rl.Color {
	mix := func(x, y uint8) uint8 { return uint8(float32(x) + (float32(y)-float32(x))*t) }
	return rl.NewColor(mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), mix(a.A, b.A))
}

func (a *App) drawRope() {
	if a.Rope == nil {
		return
	}
	a.points = a.Rope.Positions(a.points[:0])

	for i := 1; i < len(a.points); i++ {
		x0, y0 := a.View.Map(a.points[i-1])
		x1, y1 := a.View.Map(a.points[i])
		from := rl.NewVector2(float32(x0), float32(y0))
		to := rl.NewVector2(float32(x1), float32(y1))
		col := gradientAt((from.X + to.X) / (2 * windowW))
		rl.DrawLineEx(from, to, ropeWidth, col)
	}

	for i, p := range a.points {
		if n, _ := a.Rope.Node(i); n.Fixed {
			x, y := a.View.Map(p)
			rl.DrawCircle(int32(x), int32(y), 4, ColAccent)
		}
	}
}

// drawTelemetry plots the worst link error over recent frames.
func (a *App) drawTelemetry() {
	if len(a.Telemetry) < 2 {
		return
	}

	rectX, rectY := float32(20), float32(windowH-100)
	width, height := float32(300), float32(50)

	lo, hi := a.Telemetry[0], a.Telemetry[0]
	for _, v := range a.Telemetry {
		lo, hi = min(lo, v), max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, val := range a.Telemetry {
		px := rectX + float32(i)/float32(len(a.Telemetry))*width
		py := rectY + height - float32((val-lo)/(hi-lo))*height
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
	rl.DrawText(fmt.Sprintf("stretch %.3f", a.Telemetry[len(a.Telemetry)-1]), int32(rectX+width+10), int32(rectY+height-10), 12, ColText)
}
