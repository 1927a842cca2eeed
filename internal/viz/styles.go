package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func fg(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

func ropeStyle() lipgloss.Style { return fg(CurrentTheme.Rope).Padding(1, 2) }

func headerStyle() lipgloss.Style { return fg(CurrentTheme.Accent).Bold(true).MarginBottom(1) }

func labelStyle() lipgloss.Style { return fg(CurrentTheme.Muted).Width(12) }

func valueStyle() lipgloss.Style { return fg(CurrentTheme.Text) }

func graphStyle() lipgloss.Style { return fg(CurrentTheme.Accent).Padding(1, 0) }

func helpStyle() lipgloss.Style { return fg(CurrentTheme.Muted).Italic(true).MarginTop(1) }

func statsStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(CurrentTheme.Muted).
		Padding(1, 2).
		Width(44)
}

func statusStyle(running, recording bool) lipgloss.Style {
	switch {
	case recording:
		return fg(CurrentTheme.Bad).Bold(true)
	case running:
		return fg(CurrentTheme.Good).Bold(true)
	default:
		return fg(CurrentTheme.Warn).Bold(true)
	}
}

// ProgressBar renders a bar filled to percent in [0, 1].
func ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	filled = max(0, min(width, filled))

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	switch {
	case percent > 0.8:
		return fg(CurrentTheme.Good).Render(bar)
	case percent > 0.4:
		return fg(CurrentTheme.Warn).Render(bar)
	}
	return fg(CurrentTheme.Bad).Render(bar)
}

var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders the last width values as block characters, unstyled.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	var sb strings.Builder
	for _, v := range values {
		idx := int((v - lo) / rng * float64(len(sparkChars)-1))
		sb.WriteRune(sparkChars[max(0, min(len(sparkChars)-1, idx))])
	}
	return sb.String()
}
