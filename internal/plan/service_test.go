package plan

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantumrishi/rishi/internal/llm"
	"github.com/quantumrishi/rishi/internal/persona"
	"github.com/quantumrishi/rishi/internal/profile"
)

func validPlanJSON() json.RawMessage {
	return json.RawMessage(`{
		"title": "Aman ka JEE Physics Plan",
		"overview": "Aman, ghabrana nahi hai. Hum step by step chalenge.",
		"modules": [
			{"id": "m-2", "title": "Rotational Motion", "description": "Torque and angular momentum", "subtopics": ["Torque", "Moment of inertia"], "estimatedTime": "4 hours", "priority": "high"},
			{"id": "m-1", "title": "Electrostatics", "description": "Coulomb to capacitors", "subtopics": ["Gauss law"], "estimatedTime": "3 hours", "priority": "Medium"},
			{"id": "m-3", "title": "Optics", "description": "Ray optics basics", "subtopics": ["Lenses"], "estimatedTime": "2 hours", "priority": "Urgent"}
		],
		"tips": ["Mindset Check: ek din mein ek topic.", "Sleep 7 hours."]
	}`)
}

func testProfile(t *testing.T) profile.Profile {
	t.Helper()
	p, err := profile.New("Aman", profile.ExamJEE, profile.LevelIntermediate,
		[]string{"Rotational Motion", "Electrostatics"}, 20, profile.ContextAnxiety)
	require.NoError(t, err)
	return p
}

func TestService_GeneratesPlan(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validPlanJSON()})
	svc := NewService(mock, DefaultConfig())

	got, err := svc.Generate(t.Context(), testProfile(t))
	require.NoError(t, err)

	assert.Equal(t, "Aman ka JEE Physics Plan", got.Title)
	require.Len(t, got.Modules, 3)
	assert.Equal(t, []string{"m-2", "m-1", "m-3"}, []string{got.Modules[0].ID, got.Modules[1].ID, got.Modules[2].ID})
	assert.Equal(t, PriorityHigh, got.Modules[0].Priority)
	assert.Equal(t, PriorityMedium, got.Modules[1].Priority)
	assert.Equal(t, Priority("Urgent"), got.Modules[2].Priority)
	assert.Equal(t, []string{"Torque", "Moment of inertia"}, got.Modules[0].Subtopics)
	assert.Len(t, got.Tips, 2)
}

func TestService_SingleCallWithPersonaAndSchema(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validPlanJSON()})
	svc := NewService(mock, DefaultConfig())

	_, err := svc.Generate(t.Context(), testProfile(t))
	require.NoError(t, err)

	require.Equal(t, 1, mock.CallCount())
	req := mock.Calls[0]
	assert.Equal(t, persona.SystemInstruction, req.System)
	require.NotNil(t, req.Schema)
	assert.Equal(t, "study-plan", req.Schema.Name)
	require.Len(t, req.Messages, 1)
	assert.Equal(t, llm.RoleUser, req.Messages[0].Role)
	assert.Contains(t, req.Messages[0].Content, "Student: Aman")
	assert.Equal(t, 8192, req.MaxTokens)
}

func TestService_ProviderErrorIsPlanUnavailable(t *testing.T) {
	cause := &llm.ErrRateLimit{Err: errors.New("slow down")}
	mock := llm.NewMockProvider(llm.MockResponse{Err: cause})
	svc := NewService(mock, DefaultConfig())

	got, err := svc.Generate(t.Context(), testProfile(t))
	assert.Nil(t, got)
	require.ErrorIs(t, err, ErrPlanUnavailable)

	var rl *llm.ErrRateLimit
	assert.ErrorAs(t, err, &rl)
	assert.Equal(t, 1, mock.CallCount())
}

func TestService_MalformedReplyIsPlanUnavailable(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"title": "half`)})
	svc := NewService(mock, DefaultConfig())

	got, err := svc.Generate(t.Context(), testProfile(t))
	assert.Nil(t, got)
	require.ErrorIs(t, err, ErrPlanUnavailable)
	assert.True(t, strings.Contains(err.Error(), "parse plan response"))
	assert.Equal(t, 1, mock.CallCount())
}

func TestService_EmptyQueueIsPlanUnavailable(t *testing.T) {
	svc := NewService(llm.NewMockProvider(), DefaultConfig())

	_, err := svc.Generate(t.Context(), testProfile(t))
	require.ErrorIs(t, err, ErrPlanUnavailable)
}

func TestService_SetsPurpose(t *testing.T) {
	var purpose string
	svc := NewService(purposeProbe{fn: func(p string) { purpose = p }}, DefaultConfig())

	_, err := svc.Generate(t.Context(), testProfile(t))
	require.NoError(t, err)
	assert.Equal(t, llm.PurposeStudyPlan, purpose)
}
