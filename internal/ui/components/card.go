package components

import (
	"charm.land/lipgloss/v2"

	"github.com/quantumrishi/rishi/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for stacked cards so
// they visually align.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 96 {
		w = 96
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Card wraps content in a rounded-border card with an optional title.
func Card(title, content string, cw int, focused bool) string {
	style := theme.Card
	if focused {
		style = theme.FocusedCard
	}
	body := content
	if title != "" {
		body = theme.Title.Render(title) + "\n" + content
	}
	return style.Width(cw).Render(body)
}

// Centered places content in the middle of the given area.
func Centered(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
