// Package intake is the two-step profile form that opens the app. Step one
// picks what the student wants to talk about; step two collects the
// details and submits them for a study plan.
package intake

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/quantumrishi/rishi/internal/persona"
	"github.com/quantumrishi/rishi/internal/plan"
	"github.com/quantumrishi/rishi/internal/profile"
	"github.com/quantumrishi/rishi/internal/router"
	"github.com/quantumrishi/rishi/internal/screen"
	"github.com/quantumrishi/rishi/internal/screens/dashboard"
	"github.com/quantumrishi/rishi/internal/session"
	"github.com/quantumrishi/rishi/internal/ui/components"
	"github.com/quantumrishi/rishi/internal/ui/layout"
	"github.com/quantumrishi/rishi/internal/ui/theme"
)

type field int

const (
	fieldName field = iota
	fieldExam
	fieldLevel
	fieldTopic
	fieldHours
	fieldSubmit
	fieldCount
)

const spinnerInterval = 120 * time.Millisecond

var spinnerFrames = []string{"◐", "◓", "◑", "◒"}

// contextChosenMsg is sent by the step-one menu.
type contextChosenMsg struct {
	context profile.ConsultationContext
}

// planResultMsg carries the outcome of a plan request back to the screen
// that started it.
type planResultMsg struct {
	from *IntakeScreen
	plan *plan.Plan
	err  error
}

type spinnerTickMsg time.Time

// IntakeScreen collects a profile and requests a plan for it.
type IntakeScreen struct {
	deps  screen.Deps
	draft *profile.Draft

	contexts components.Menu

	name  components.TextInput
	exam  components.Selector
	level components.Selector
	topic components.TextInput
	hours components.TextInput
	focus field

	loading      bool
	spinnerFrame int
	errMsg       string
}

var (
	_ screen.Screen          = (*IntakeScreen)(nil)
	_ screen.KeyHintProvider = (*IntakeScreen)(nil)
	_ screen.InputCapturer   = (*IntakeScreen)(nil)
)

// New creates the intake screen. When the controller still holds a
// profile, for example after a failed request, the form starts from it.
func New(deps screen.Deps) *IntakeScreen {
	s := &IntakeScreen{
		deps:  deps,
		draft: profile.NewDraft(),
	}

	if deps.Controller != nil {
		snap := deps.Controller.Snapshot()
		if p, ok := snap.Profile(); ok {
			s.draft.Name = p.Name
			s.draft.ExamType = p.ExamType
			s.draft.PrepLevel = p.PrepLevel
			s.draft.SetHours(p.AvailableHoursPerWeek)
			s.draft.ConsultationContext = p.ConsultationContext
			for _, t := range p.Topics() {
				s.draft.Topics.Add(t)
			}
			if snap.Err() != nil {
				s.errMsg = persona.PlanFailure
			}
		}
	}

	items := make([]components.MenuItem, len(profile.ConsultationContexts))
	for i, c := range profile.ConsultationContexts {
		items[i] = components.MenuItem{
			Label: c.Emoji() + "  " + string(c),
			Action: func() tea.Cmd {
				return func() tea.Msg { return contextChosenMsg{context: c} }
			},
		}
	}
	s.contexts = components.NewMenu(items)
	for i, c := range profile.ConsultationContexts {
		if c == s.draft.ConsultationContext {
			s.contexts.Selected = i
		}
	}

	s.name = components.NewTextInput("Aapka naam", "e.g. Aarav", false, 60)
	s.name.SetValue(s.draft.Name)
	s.exam = components.NewSelector("Exam", examOptions(), string(s.draft.ExamType))
	s.level = components.NewSelector("Preparation level", levelOptions(), string(s.draft.PrepLevel))
	s.topic = components.NewTextInput("Focus topics", "type a topic and press Enter", false, 80)
	s.hours = components.NewTextInput("Hours per week", strconv.Itoa(profile.DefaultHours), true, 3)
	s.hours.SetValue(strconv.Itoa(s.draft.Hours))

	return s
}

func examOptions() []string {
	out := make([]string, len(profile.ExamTypes))
	for i, e := range profile.ExamTypes {
		out[i] = string(e)
	}
	return out
}

func levelOptions() []string {
	out := make([]string, len(profile.PrepLevels))
	for i, l := range profile.PrepLevels {
		out[i] = string(l)
	}
	return out
}

func (s *IntakeScreen) Init() tea.Cmd {
	return nil
}

func (s *IntakeScreen) Title() string {
	if s.draft.Step == profile.StepDetails {
		return "Aapke baare mein"
	}
	return "Aaj kis baare mein baat karein?"
}

// CapturesInput is true on the details step, where the text fields need
// every key.
func (s *IntakeScreen) CapturesInput() bool {
	return s.draft.Step == profile.StepDetails
}

func (s *IntakeScreen) KeyHints() []layout.KeyHint {
	if s.loading {
		return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	}
	if s.draft.Step == profile.StepContext {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Choose"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "←→", Description: "Change"},
		{Key: "Enter", Description: "Add / Submit"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *IntakeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case contextChosenMsg:
		s.draft.ChooseContext(msg.context)
		s.focus = fieldName
		return s, s.applyFocus()

	case spinnerTickMsg:
		if !s.loading {
			return s, nil
		}
		s.spinnerFrame = (s.spinnerFrame + 1) % len(spinnerFrames)
		return s, spinnerTick()

	case planResultMsg:
		return s.handlePlanResult(msg)

	case tea.KeyMsg:
		if s.loading {
			return s, nil
		}
		if s.draft.Step == profile.StepContext {
			var cmd tea.Cmd
			s.contexts, cmd = s.contexts.Update(msg)
			return s, cmd
		}
		return s.handleDetailsKey(msg)
	}

	return s, nil
}

func (s *IntakeScreen) handleDetailsKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.syncDraft()
		s.blurAll()
		s.draft.Back()
		return s, nil
	case "tab", "down":
		s.setFocus((s.focus + 1) % fieldCount)
		return s, s.applyFocus()
	case "shift+tab", "up":
		s.setFocus((s.focus - 1 + fieldCount) % fieldCount)
		return s, s.applyFocus()
	}

	var cmd tea.Cmd
	switch s.focus {
	case fieldName:
		if msg.String() == "enter" {
			s.setFocus(fieldExam)
			return s, s.applyFocus()
		}
		s.name, cmd = s.name.Update(msg)
		s.draft.Name = s.name.Value()
	case fieldExam:
		s.exam, cmd = s.exam.Update(msg)
		s.draft.ExamType = profile.ExamType(s.exam.Value())
	case fieldLevel:
		s.level, cmd = s.level.Update(msg)
		s.draft.PrepLevel = profile.PrepLevel(s.level.Value())
	case fieldTopic:
		switch msg.String() {
		case "enter":
			if s.draft.Topics.Add(s.topic.Value()) {
				s.errMsg = ""
			}
			s.topic.Reset()
			return s, nil
		case "backspace":
			if s.topic.Value() == "" {
				if list := s.draft.Topics.List(); len(list) > 0 {
					s.draft.Topics.Remove(list[len(list)-1])
				}
				return s, nil
			}
		}
		s.topic, cmd = s.topic.Update(msg)
	case fieldHours:
		switch msg.String() {
		case "+", "right":
			s.draft.SetHours(s.draft.Hours + 1)
			s.hours.SetValue(strconv.Itoa(s.draft.Hours))
			return s, nil
		case "-", "left":
			s.draft.SetHours(s.draft.Hours - 1)
			s.hours.SetValue(strconv.Itoa(s.draft.Hours))
			return s, nil
		case "enter":
			s.setFocus(fieldSubmit)
			return s, s.applyFocus()
		}
		s.hours, cmd = s.hours.Update(msg)
		if n, err := s.hours.NumericValue(); err == nil {
			s.draft.SetHours(n)
		}
	case fieldSubmit:
		if msg.String() == "enter" {
			return s, s.submit()
		}
	}
	return s, cmd
}

// setFocus moves focus, normalizing the hours field when leaving it.
func (s *IntakeScreen) setFocus(f field) {
	if s.focus == fieldHours && f != fieldHours {
		s.hours.SetValue(strconv.Itoa(s.draft.Hours))
	}
	s.focus = f
}

func (s *IntakeScreen) blurAll() {
	s.name.Blur()
	s.topic.Blur()
	s.hours.Blur()
	s.exam.Focused = false
	s.level.Focused = false
}

func (s *IntakeScreen) applyFocus() tea.Cmd {
	s.blurAll()
	switch s.focus {
	case fieldName:
		return s.name.Focus()
	case fieldExam:
		s.exam.Focused = true
	case fieldLevel:
		s.level.Focused = true
	case fieldTopic:
		return s.topic.Focus()
	case fieldHours:
		return s.hours.Focus()
	}
	return nil
}

// syncDraft copies any pending input into the draft. A topic typed but not
// yet confirmed with Enter is added.
func (s *IntakeScreen) syncDraft() {
	s.draft.Name = s.name.Value()
	if strings.TrimSpace(s.topic.Value()) != "" {
		s.draft.Topics.Add(s.topic.Value())
		s.topic.Reset()
	}
	if n, err := s.hours.NumericValue(); err == nil {
		s.draft.SetHours(n)
	}
	s.hours.SetValue(strconv.Itoa(s.draft.Hours))
}

func (s *IntakeScreen) submit() tea.Cmd {
	s.syncDraft()
	p, err := s.draft.Submit()
	if err != nil {
		s.errMsg = validationMessage(err)
		return nil
	}

	s.errMsg = ""
	s.loading = true
	s.spinnerFrame = 0
	ctrl := s.deps.Controller
	from := s
	return tea.Batch(spinnerTick(), func() tea.Msg {
		pl, err := ctrl.Submit(context.Background(), p)
		return planResultMsg{from: from, plan: pl, err: err}
	})
}

func (s *IntakeScreen) handlePlanResult(msg planResultMsg) (screen.Screen, tea.Cmd) {
	if msg.from != s {
		return s, nil
	}
	s.loading = false

	switch {
	case errors.Is(msg.err, session.ErrPending):
		return s, nil
	case msg.err != nil:
		s.errMsg = persona.PlanFailure
		return s, nil
	}

	// A reset while the request ran leaves the controller without this plan.
	snap := s.deps.Controller.Snapshot()
	if snap.Plan() != msg.plan {
		return s, nil
	}

	next := dashboard.New(s.deps)
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func validationMessage(err error) string {
	switch {
	case errors.Is(err, profile.ErrNameRequired):
		return persona.NameRequired
	case errors.Is(err, profile.ErrTopicsRequired):
		return persona.TopicsRequired
	}
	return err.Error()
}

func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

func (s *IntakeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	if s.loading {
		spin := lipgloss.NewStyle().Foreground(theme.Accent).Render(spinnerFrames[s.spinnerFrame])
		body := spin + "  " + theme.Body.Render(persona.PlanLoading)
		return components.Centered(components.Card("", body, min(cw, 50), true), width, height)
	}

	if s.draft.Step == profile.StepContext {
		intro := theme.Body.Render(persona.Welcome)
		card := components.Card("Aaj kis baare mein baat karein?", s.contexts.View(), cw, true)
		return components.Centered(lipgloss.JoinVertical(lipgloss.Left, intro, "", card), width, height)
	}

	var rows []string
	rows = append(rows,
		theme.Subtitle.Render(s.draft.ConsultationContext.Emoji()+"  "+string(s.draft.ConsultationContext)),
		"",
		s.name.View(),
		"",
		s.exam.View(),
		"",
		s.level.View(),
		theme.Hint.Render(profile.PrepLevel(s.level.Value()).Description()),
		"",
		s.topic.View(),
		s.renderTopics(),
		"",
		s.hours.View(),
		components.NewGauge("", s.draft.Hours, profile.MinHours, profile.MaxHours, "hrs/week", cw-4).View(),
		"",
		components.NewButton("Plan banao", s.focus == fieldSubmit, nil).View(),
	)
	if s.errMsg != "" {
		rows = append(rows, "", theme.ErrorText.Render(s.errMsg))
	}

	card := components.Card("", strings.Join(rows, "\n"), cw, false)
	return components.Centered(layout.TailLines(card, height), width, height)
}

func (s *IntakeScreen) renderTopics() string {
	list := s.draft.Topics.List()
	if len(list) == 0 {
		return theme.Hint.Render("no topics yet")
	}
	chips := make([]string, len(list))
	for i, t := range list {
		chips[i] = theme.Chip.Render(t)
	}
	return strings.Join(chips, " ")
}
