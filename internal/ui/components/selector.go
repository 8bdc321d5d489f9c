package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/quantumrishi/rishi/internal/ui/theme"
)

// Selector picks one of a fixed set of options with left/right.
type Selector struct {
	Label    string
	Options  []string
	Selected int
	Focused  bool
}

// NewSelector creates a selector with the option equal to current chosen,
// or the first option when none matches.
func NewSelector(label string, options []string, current string) Selector {
	s := Selector{Label: label, Options: options}
	for i, o := range options {
		if o == current {
			s.Selected = i
		}
	}
	return s
}

// Update cycles through the options. Only a focused selector reacts.
func (s Selector) Update(msg tea.Msg) (Selector, tea.Cmd) {
	if !s.Focused || len(s.Options) == 0 {
		return s, nil
	}
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "left", "h":
		s.Selected = (s.Selected - 1 + len(s.Options)) % len(s.Options)
	case "right", "l", "space":
		s.Selected = (s.Selected + 1) % len(s.Options)
	}
	return s, nil
}

// Value returns the chosen option.
func (s Selector) Value() string {
	if s.Selected < 0 || s.Selected >= len(s.Options) {
		return ""
	}
	return s.Options[s.Selected]
}

// View renders the label and the options in a row.
func (s Selector) View() string {
	labelStyle := theme.Subtitle
	if s.Focused {
		labelStyle = theme.Selected
	}

	parts := make([]string, len(s.Options))
	for i, o := range s.Options {
		switch {
		case i == s.Selected && s.Focused:
			parts[i] = theme.ButtonActive.Render(o)
		case i == s.Selected:
			parts[i] = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Padding(0, 2).Render(o)
		default:
			parts[i] = lipgloss.NewStyle().Foreground(theme.TextDim).Padding(0, 2).Render(o)
		}
	}
	return labelStyle.Render(s.Label) + "\n" + strings.Join(parts, " ")
}
