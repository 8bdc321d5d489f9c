// Package dashboard shows a generated study plan and lets the student pick
// a module to explore.
package dashboard

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/quantumrishi/rishi/internal/persona"
	"github.com/quantumrishi/rishi/internal/plan"
	"github.com/quantumrishi/rishi/internal/router"
	"github.com/quantumrishi/rishi/internal/screen"
	"github.com/quantumrishi/rishi/internal/screens/explore"
	"github.com/quantumrishi/rishi/internal/ui/components"
	"github.com/quantumrishi/rishi/internal/ui/layout"
	"github.com/quantumrishi/rishi/internal/ui/theme"
)

// DashboardScreen renders the plan held by the controller.
type DashboardScreen struct {
	deps    screen.Deps
	plan    *plan.Plan
	student string
	menu    components.Menu
	errMsg  string
}

var (
	_ screen.Screen          = (*DashboardScreen)(nil)
	_ screen.KeyHintProvider = (*DashboardScreen)(nil)
)

// selectModuleMsg is sent when a module row is chosen.
type selectModuleMsg struct {
	index int
}

// New creates a dashboard for the controller's current plan.
func New(deps screen.Deps) *DashboardScreen {
	d := &DashboardScreen{deps: deps}

	snap := deps.Controller.Snapshot()
	d.plan = snap.Plan()
	if p, ok := snap.Profile(); ok {
		d.student = p.Name
	}

	var items []components.MenuItem
	if d.plan != nil {
		for i, m := range d.plan.Modules {
			items = append(items, components.MenuItem{
				Label:  m.Title,
				Badge:  theme.PriorityStyle(string(m.Priority)).Render(string(m.Priority)),
				Detail: moduleDetail(m),
				Action: func() tea.Cmd {
					return func() tea.Msg { return selectModuleMsg{index: i} }
				},
			})
		}
	}
	d.menu = components.NewMenu(items)
	return d
}

func moduleDetail(m plan.Module) string {
	if m.EstimatedTime == "" {
		return m.Description
	}
	if m.Description == "" {
		return m.EstimatedTime
	}
	return m.Description + "  ·  " + m.EstimatedTime
}

func (d *DashboardScreen) Init() tea.Cmd {
	return nil
}

func (d *DashboardScreen) Title() string {
	return "Study Plan"
}

func (d *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Explore module"},
		{Key: "Ctrl+R", Description: "New profile"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (d *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case selectModuleMsg:
		return d.openModule(msg.index)
	case tea.KeyMsg:
		var cmd tea.Cmd
		d.menu, cmd = d.menu.Update(msg)
		return d, cmd
	}
	return d, nil
}

func (d *DashboardScreen) openModule(index int) (screen.Screen, tea.Cmd) {
	if err := d.deps.Controller.SelectModule(index); err != nil {
		d.deps.Logger().Warn("select module failed", "index", index, "err", err)
		d.errMsg = persona.ModuleUnavailable
		return d, nil
	}
	d.errMsg = ""
	next := explore.New(d.deps, d.plan.Modules[index])
	return d, func() tea.Msg {
		return router.PushScreenMsg{Screen: next}
	}
}

func (d *DashboardScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	if d.plan == nil {
		return components.Centered(theme.Hint.Render("No plan yet. Press Ctrl+R to start over."), width, height)
	}

	var sections []string

	heading := d.plan.Title
	if d.student != "" {
		heading = d.plan.Title + "  ·  " + d.student
	}
	sections = append(sections, components.Card(heading,
		lipgloss.NewStyle().Width(cw-4).Render(d.plan.Overview), cw, false))

	sections = append(sections, components.Card("Modules", d.menu.View(), cw, true))

	if len(d.plan.Tips) > 0 {
		var b strings.Builder
		for i, tip := range d.plan.Tips {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(lipgloss.NewStyle().Width(cw - 4).Render("✨ " + tip))
		}
		sections = append(sections, components.Card(persona.AdviceTitle, b.String(), cw, false))
	}

	if d.errMsg != "" {
		sections = append(sections, theme.ErrorText.Render(d.errMsg))
	}

	sections = append(sections, theme.Hint.Render(persona.Footer))

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, content)
}
