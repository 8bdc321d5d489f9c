package plan

import (
	"fmt"
	"strings"

	"github.com/quantumrishi/rishi/internal/persona"
	"github.com/quantumrishi/rishi/internal/profile"
)

// BuildPrompt renders the single user message sent for plan generation.
func BuildPrompt(p profile.Profile) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Hello %s (developed by %s).\n", persona.Name, persona.Developer))
	b.WriteString(fmt.Sprintf("Student: %s\n", p.Name))
	b.WriteString(fmt.Sprintf("Exam: %s\n", p.ExamType))
	b.WriteString(fmt.Sprintf("Level: %s\n", p.PrepLevel))
	b.WriteString(fmt.Sprintf("Primary Struggle: %s\n", p.ConsultationContext))
	b.WriteString(fmt.Sprintf("Weak Areas: %s\n", strings.Join(p.FocusTopics, ", ")))
	b.WriteString(fmt.Sprintf("Available Time: %d hours/week.\n", p.AvailableHoursPerWeek))

	b.WriteString(fmt.Sprintf(`
As a counselor and expert, address their primary struggle (%s) with deep empathy first, then analyze their weak areas and create a balanced plan.
Include a "Mindset Check" section in the tips specifically for their struggle.
Output MUST be a JSON object: title, overview (warm Hinglish intro addressing their specific context), modules (id, title, description, subtopics array, estimatedTime, priority), and tips (academic + psychological).`, p.ConsultationContext))

	return b.String()
}
