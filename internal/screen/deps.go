package screen

import (
	"github.com/quantumrishi/rishi/internal/chat"
	"github.com/quantumrishi/rishi/internal/llm"
	"github.com/quantumrishi/rishi/internal/logger"
	"github.com/quantumrishi/rishi/internal/session"
)

// Deps are the services shared by the TUI screens.
type Deps struct {
	Controller *session.Controller
	Chat       llm.StreamProvider
	ChatConfig chat.Config
	Log        *logger.Logger
}

// Logger returns Log, or a no-op logger when none was configured.
func (d Deps) Logger() *logger.Logger {
	if d.Log == nil {
		return logger.Nop()
	}
	return d.Log
}
