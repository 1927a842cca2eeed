package viz

import (
	"math"
	"strings"

	"github.com/san-kum/ropesim/internal/vec"
)

// Braille cells hold 2x4 dots; bit values per (row, col) below. Unicode
// offset 0x2800 is the empty cell.
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

// Canvas is a character grid addressed in sub-pixels: (Width*2) x (Height*4).
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Dots returns the canvas size in sub-pixels.
func (c *Canvas) Dots() (int, int) { return c.Width * 2, c.Height * 4 }

func (c *Canvas) cell(x, y int) (row, col int, bit rune, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, 0, false
	}
	col, row = x/2, y/4
	if col >= c.Width || row >= c.Height {
		return 0, 0, 0, false
	}
	return row, col, rune(pixelMap[y%4][x%2]), true
}

func (c *Canvas) Set(x, y int) {
	if row, col, bit, ok := c.cell(x, y); ok {
		c.Grid[row][col] |= bit
	}
}

func (c *Canvas) Unset(x, y int) {
	if row, col, bit, ok := c.cell(x, y); ok {
		c.Grid[row][col] &^= bit
	}
}

// IsSet reports whether the dot at (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	row, col, bit, ok := c.cell(x, y)
	return ok && c.Grid[row][col]&bit != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Blob fills a (2r+1)^2 square of dots around (x, y).
func (c *Canvas) Blob(x, y, r int) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			c.Set(x+dx, y+dy)
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Viewport maps world coordinates (y down, like the screen) onto canvas dots
// with a uniform scale.
type Viewport struct {
	Origin vec.Vec2
	Scale  float64
}

func (v Viewport) Map(p vec.Vec2) (int, int) {
	return int(math.Round((p.X - v.Origin.X) * v.Scale)), int(math.Round((p.Y - v.Origin.Y) * v.Scale))
}

// Unmap is the inverse of Map for dot coordinates.
func (v Viewport) Unmap(x, y int) vec.Vec2 {
	if v.Scale == 0 {
		return v.Origin
	}
	return vec.New(v.Origin.X+float64(x)/v.Scale, v.Origin.Y+float64(y)/v.Scale)
}

// Bounds returns the axis-aligned box around pts.
func Bounds(pts []vec.Vec2) (lo, hi vec.Vec2) {
	if len(pts) == 0 {
		return vec.Zero(), vec.Zero()
	}
	lo, hi = pts[0], pts[0]
	for _, p := range pts[1:] {
		lo = vec.New(math.Min(lo.X, p.X), math.Min(lo.Y, p.Y))
		hi = vec.New(math.Max(hi.X, p.X), math.Max(hi.Y, p.Y))
	}
	return lo, hi
}

// FitViewport centres the box lo..hi in a w x h dot area with a 10% margin.
func FitViewport(lo, hi vec.Vec2, w, h int) Viewport {
	size := vec.Sub(hi, lo)
	size = vec.New(math.Max(size.X, 1), math.Max(size.Y, 1))
	scale := math.Min(float64(w-1)/(size.X*1.2), float64(h-1)/(size.Y*1.2))
	centre := vec.LerpVec(lo, hi, 0.5)
	origin := vec.Sub(centre, vec.New(float64(w-1)/(2*scale), float64(h-1)/(2*scale)))
	return Viewport{Origin: origin, Scale: scale}
}

// SceneViewport frames a rope strung from a to b, leaving room below for it
// to hang by up to the span.
func SceneViewport(a, b vec.Vec2, w, h int) Viewport {
	lo, hi := Bounds([]vec.Vec2{a, b})
	span := vec.Dist(a, b)
	hi = vec.Add(hi, vec.New(0, span*0.6))
	return FitViewport(lo, hi, w, h)
}

// DrawChain draws the polyline through pts and marks the fixed ones.
func (c *Canvas) DrawChain(vp Viewport, pts []vec.Vec2, fixed func(i int) bool) {
	for i := 0; i+1 < len(pts); i++ {
		x0, y0 := vp.Map(pts[i])
		x1, y1 := vp.Map(pts[i+1])
		c.DrawLine(x0, y0, x1, y1)
	}
	if fixed == nil {
		return
	}
	for i, p := range pts {
		if fixed(i) {
			x, y := vp.Map(p)
			c.Blob(x, y, 1)
		}
	}
}
