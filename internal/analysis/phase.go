package analysis

import (
	"strings"
)

type Point struct{ X, Y float64 }

// PhasePortrait pairs one coordinate of a node with its velocity.
type PhasePortrait struct {
	Points []Point
}

// NewPhasePortrait differentiates track with central differences. Tracks
// shorter than three samples yield an empty portrait.
func NewPhasePortrait(track []float64, dt float64) *PhasePortrait {
	portrait := &PhasePortrait{}
	if len(track) < 3 || dt <= 0 {
		return portrait
	}
	portrait.Points = make([]Point, 0, len(track)-2)
	for i := 1; i+1 < len(track); i++ {
		v := (track[i+1] - track[i-1]) / (2 * dt)
		portrait.Points = append(portrait.Points, Point{X: track[i], Y: v})
	}
	return portrait
}

// ToASCII plots the portrait on a width x height character grid.
func (p *PhasePortrait) ToASCII(width, height int) string {
	if p == nil || len(p.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := p.Points[0].X, p.Points[0].X
	minY, maxY := p.Points[0].Y, p.Points[0].Y
	for _, pt := range p.Points {
		minX, maxX = min(minX, pt.X), max(maxX, pt.X)
		minY, maxY = min(minY, pt.Y), max(maxY, pt.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}

	// Zero velocity line.
	if minY <= 0 && minY+rangeY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := range grid[row] {
			grid[row][col] = '─'
		}
	}

	for _, pt := range p.Points {
		col := int((pt.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((pt.Y-minY)/rangeY*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			grid[row][col] = '•'
		}
	}

	var sb strings.Builder
	for _, row := range grid {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
