// Package explore is the module chat screen.
package explore

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/quantumrishi/rishi/internal/chat"
	"github.com/quantumrishi/rishi/internal/persona"
	"github.com/quantumrishi/rishi/internal/plan"
	"github.com/quantumrishi/rishi/internal/screen"
	"github.com/quantumrishi/rishi/internal/ui/components"
	"github.com/quantumrishi/rishi/internal/ui/layout"
	"github.com/quantumrishi/rishi/internal/ui/theme"
)

const spinnerInterval = 120 * time.Millisecond

var spinnerFrames = []string{"·  ", "·· ", "···", " ··", "  ·"}

// Stream messages carry the channel they came from so a stale stream is
// ignored.
type (
	fragmentMsg struct {
		ch   <-chan tea.Msg
		text string
	}
	turnFailedMsg struct {
		ch  <-chan tea.Msg
		err error
	}
	streamClosedMsg struct {
		ch <-chan tea.Msg
	}
	spinnerTickMsg time.Time
)

// ExploreScreen chats with the counsellor about one plan module.
type ExploreScreen struct {
	deps   screen.Deps
	module plan.Module
	sess   *chat.Session

	ctx    context.Context
	cancel context.CancelFunc

	input        components.TextInput
	stream       <-chan tea.Msg
	spinnerFrame int
	left         bool
}

var (
	_ screen.Screen          = (*ExploreScreen)(nil)
	_ screen.KeyHintProvider = (*ExploreScreen)(nil)
	_ screen.Leaver          = (*ExploreScreen)(nil)
)

// New creates a chat screen for module. The session starts with the local
// greeting.
func New(deps screen.Deps, module plan.Module) *ExploreScreen {
	ctx, cancel := context.WithCancel(context.Background())
	input := components.NewTextInput("", persona.ChatHint, false, 2000)
	return &ExploreScreen{
		deps:   deps,
		module: module,
		sess:   chat.NewSession(deps.Chat, module, deps.ChatConfig, deps.Logger()),
		ctx:    ctx,
		cancel: cancel,
		input:  input,
	}
}

func (e *ExploreScreen) Init() tea.Cmd {
	return e.input.Focus()
}

func (e *ExploreScreen) Title() string {
	return e.module.Title
}

func (e *ExploreScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Esc", Description: "Back to plan"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Streaming reports whether a reply is being received.
func (e *ExploreScreen) Streaming() bool {
	return e.stream != nil
}

// Leave stops any running reply and tells the controller the module is
// closed.
func (e *ExploreScreen) Leave() {
	if e.left {
		return
	}
	e.left = true
	e.cancel()
	if e.deps.Controller != nil {
		_ = e.deps.Controller.LeaveModule()
	}
}

func (e *ExploreScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case fragmentMsg:
		if msg.ch != e.stream {
			return e, nil
		}
		return e, waitForStream(msg.ch)

	case turnFailedMsg:
		if msg.ch != e.stream {
			return e, nil
		}
		return e, waitForStream(msg.ch)

	case streamClosedMsg:
		if msg.ch != e.stream {
			return e, nil
		}
		e.stream = nil
		e.input.Disabled = false
		return e, e.input.Focus()

	case spinnerTickMsg:
		if e.stream == nil {
			return e, nil
		}
		e.spinnerFrame = (e.spinnerFrame + 1) % len(spinnerFrames)
		return e, spinnerTick()

	case tea.KeyMsg:
		if msg.String() == "enter" {
			return e, e.send()
		}
		var cmd tea.Cmd
		e.input, cmd = e.input.Update(msg)
		return e, cmd
	}

	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	return e, cmd
}

// send starts a turn. The reply is consumed on its own goroutine and
// forwarded through a channel; a send never outlives the screen's context.
func (e *ExploreScreen) send() tea.Cmd {
	if e.stream != nil || e.left {
		return nil
	}
	text := strings.TrimSpace(e.input.Value())
	if text == "" {
		return nil
	}
	e.input.Reset()
	e.input.Disabled = true
	e.spinnerFrame = 0

	ch := make(chan tea.Msg, 16)
	e.stream = ch
	ctx, sess := e.ctx, e.sess

	go func() {
		defer close(ch)
		for fragment, err := range sess.Send(ctx, text) {
			var msg tea.Msg = fragmentMsg{ch: ch, text: fragment}
			if err != nil {
				msg = turnFailedMsg{ch: ch, err: err}
			}
			select {
			case ch <- msg:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()

	return tea.Batch(waitForStream(ch), spinnerTick())
}

func waitForStream(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return streamClosedMsg{ch: ch}
		}
		return msg
	}
}

func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

func (e *ExploreScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	head := theme.Title.Render(e.module.Title) + "  " + theme.Subtitle.Render(persona.ChatSubtitle)
	if len(e.module.Subtopics) > 0 {
		chips := make([]string, len(e.module.Subtopics))
		for i, st := range e.module.Subtopics {
			chips[i] = theme.Chip.Render(st)
		}
		head += "\n" + lipgloss.NewStyle().Width(cw).Render(strings.Join(chips, " "))
	}

	var inputView string
	if e.stream != nil {
		inputView = theme.Hint.Render(persona.Thinking)
	} else {
		inputView = e.input.View()
	}
	inputBox := components.Card("", inputView, cw, e.stream == nil)

	bodyHeight := height - lipgloss.Height(head) - lipgloss.Height(inputBox) - 2
	body := layout.TailLines(e.renderTranscript(cw), bodyHeight)

	content := lipgloss.JoinVertical(lipgloss.Left, head, "", body, "", inputBox)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, content)
}

func (e *ExploreScreen) renderTranscript(cw int) string {
	tr := e.sess.Transcript()
	wrap := lipgloss.NewStyle().Width(cw - 2)

	var b strings.Builder
	for i, m := range tr.Messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		if m.Role == chat.RoleUser {
			b.WriteString(theme.UserLabel.Render("Aap"))
		} else {
			b.WriteString(theme.ModelLabel.Render(persona.Name))
		}
		b.WriteString("\n")
		b.WriteString(wrap.Render(m.Text))
		if m.Interrupted {
			b.WriteString("\n")
			b.WriteString(theme.Interrupted.Render("(reply interrupted)"))
		}
	}

	if e.stream != nil && !tr.InProgress {
		b.WriteString("\n\n")
		b.WriteString(theme.ModelLabel.Render(persona.Name))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render(spinnerFrames[e.spinnerFrame]))
		b.WriteString(" ")
		b.WriteString(theme.Hint.Render(persona.Thinking))
	}
	return b.String()
}
