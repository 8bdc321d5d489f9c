package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantumrishi/rishi/internal/persona"
	"github.com/quantumrishi/rishi/internal/plan"
	"github.com/quantumrishi/rishi/internal/profile"
)

func newPlanFlags(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "plan"}
	bindPlanFlags(c)
	require.NoError(t, c.ParseFlags(args))
	return c
}

func TestProfileFromFlags(t *testing.T) {
	c := newPlanFlags(t,
		"--name", "Aarav", "--exam", "neet", "--level", "Advanced", "--context", "anxiety",
		"--topic", "Genetics", "--topic", "Genetics", "--topic", "Optics", "--hours", "25")

	p, err := profileFromFlags(c)
	require.NoError(t, err)
	assert.Equal(t, "Aarav", p.Name)
	assert.Equal(t, profile.ExamNEET, p.ExamType)
	assert.Equal(t, profile.LevelAdvanced, p.PrepLevel)
	assert.Equal(t, profile.ContextAnxiety, p.ConsultationContext)
	assert.Equal(t, []string{"Genetics", "Optics"}, p.FocusTopics)
	assert.Equal(t, 25, p.AvailableHoursPerWeek)
}

func TestProfileFromFlags_Errors(t *testing.T) {
	_, err := profileFromFlags(newPlanFlags(t, "--topic", "Optics"))
	require.EqualError(t, err, persona.NameRequired)

	_, err = profileFromFlags(newPlanFlags(t, "--name", "Aarav"))
	require.EqualError(t, err, persona.TopicsRequired)

	_, err = profileFromFlags(newPlanFlags(t, "--name", "Aarav", "--topic", "Optics", "--exam", "gate"))
	require.ErrorIs(t, err, profile.ErrUnknownValue)

	_, err = profileFromFlags(newPlanFlags(t, "--name", "Aarav", "--topic", "Optics", "--hours", "0"))
	require.ErrorIs(t, err, profile.ErrHoursRange)
}

func TestPrintPlan(t *testing.T) {
	pl := &plan.Plan{
		Title:    "Aarav ka Plan",
		Overview: "Shuru karte hain.",
		Modules: []plan.Module{
			{ID: "m1", Title: "Genetics", Description: "Mendel", Subtopics: []string{"Laws"}, EstimatedTime: "3 hours", Priority: plan.PriorityHigh},
		},
		Tips: []string{"Roz revise karo."},
	}

	var buf bytes.Buffer
	printPlan(&buf, pl)
	out := buf.String()

	assert.Contains(t, out, "Aarav ka Plan")
	assert.Contains(t, out, "1. Genetics  [High]  3 hours")
	assert.Contains(t, out, "   - Laws")
	assert.Contains(t, out, persona.AdviceTitle)
	assert.Contains(t, out, "* Roz revise karo.")
}
