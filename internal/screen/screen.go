package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/quantumrishi/rishi/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Leaver is implemented by screens that hold resources, such as a running
// stream, that must be released when the router drops them.
type Leaver interface {
	Leave()
}

// InputCapturer is implemented by screens whose text inputs need Esc and
// other global keys delivered to them instead of the app.
type InputCapturer interface {
	CapturesInput() bool
}
