package plan

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quantumrishi/rishi/internal/llm"
	"github.com/quantumrishi/rishi/internal/profile"
)

// purposeProbe reports the purpose label seen by Generate.
type purposeProbe struct {
	fn func(string)
}

func (p purposeProbe) Generate(ctx context.Context, _ llm.Request) (*llm.Response, error) {
	p.fn(llm.PurposeFrom(ctx))
	return &llm.Response{Content: validPlanJSON()}, nil
}

func (p purposeProbe) ModelID() string { return "probe" }

func TestParsePriority(t *testing.T) {
	tests := []struct {
		in   string
		want Priority
	}{
		{"High", PriorityHigh},
		{"high", PriorityHigh},
		{" MEDIUM ", PriorityMedium},
		{"low", PriorityLow},
		{"Critical", Priority("Critical")},
		{"", Priority("")},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePriority(tt.in))
		})
	}
	assert.True(t, PriorityLow.Known())
	assert.False(t, Priority("Critical").Known())
}

func TestPlan_Module(t *testing.T) {
	p := &Plan{Modules: []Module{{ID: "a", Title: "Alpha"}, {ID: "b", Title: "Beta"}}}

	m, ok := p.Module("b")
	assert.True(t, ok)
	assert.Equal(t, "Beta", m.Title)

	_, ok = p.Module("zzz")
	assert.False(t, ok)

	var nilPlan *Plan
	_, ok = nilPlan.Module("a")
	assert.False(t, ok)
}

func TestBuildPrompt_EmbedsEveryField(t *testing.T) {
	p, err := profile.New("Riya", profile.ExamNEET, profile.LevelAdvanced,
		[]string{"Genetics", "Organic Chemistry"}, 42, profile.ContextConcentration)
	if err != nil {
		t.Fatal(err)
	}

	got := BuildPrompt(p)
	for _, want := range []string{
		"Hello Quantum Rishi (developed by Naveen Dubey).",
		"Student: Riya",
		"Exam: NEET",
		"Level: Advanced",
		"Primary Struggle: " + string(profile.ContextConcentration),
		"Weak Areas: Genetics, Organic Chemistry",
		"Available Time: 42 hours/week.",
		`"Mindset Check"`,
	} {
		assert.Contains(t, got, want)
	}
}

func TestSchema_RequiresAllFields(t *testing.T) {
	def := Schema.Definition
	assert.ElementsMatch(t, []any{"title", "overview", "modules", "tips"}, def["required"])

	items := def["properties"].(map[string]any)["modules"].(map[string]any)["items"].(map[string]any)
	assert.ElementsMatch(t, []any{"id", "title", "description", "subtopics", "estimatedTime", "priority"}, items["required"])
}
