package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/quantumrishi/rishi/internal/ui/theme"
)

// Gauge displays an integer value within [Min, Max] as a horizontal bar.
type Gauge struct {
	Label string
	Value int
	Min   int
	Max   int
	Unit  string
	Width int
}

// NewGauge creates a gauge.
func NewGauge(label string, value, lo, hi int, unit string, width int) Gauge {
	return Gauge{Label: label, Value: value, Min: lo, Max: hi, Unit: unit, Width: width}
}

// Fraction is the filled share of the bar, in [0, 1].
func (g Gauge) Fraction() float64 {
	if g.Max <= g.Min {
		return 0
	}
	f := float64(g.Value-g.Min) / float64(g.Max-g.Min)
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}

// View renders the gauge.
func (g Gauge) View() string {
	var result string

	if g.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(g.Label) + "  "
	}

	valueText := fmt.Sprintf("  %d %s", g.Value, g.Unit)
	barWidth := g.Width - lipgloss.Width(result) - lipgloss.Width(valueText)
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * g.Fraction())
	empty := barWidth - filled

	result += theme.ProgressFilled.Render(strings.Repeat(" ", filled))
	result += theme.ProgressEmpty.Render(strings.Repeat(" ", empty))
	result += lipgloss.NewStyle().Foreground(theme.Accent).Render(valueText)

	return result
}
