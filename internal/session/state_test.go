package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantumrishi/rishi/internal/plan"
	"github.com/quantumrishi/rishi/internal/profile"
)

func testProfile(t *testing.T) profile.Profile {
	t.Helper()
	p, err := profile.New("Aman", profile.ExamJEE, profile.LevelBeginner, []string{"Optics"}, 15, profile.ContextSubjectHelp)
	require.NoError(t, err)
	return p
}

func testPlan() *plan.Plan {
	return &plan.Plan{
		Title: "Plan",
		Modules: []plan.Module{
			{ID: "m1", Title: "Optics"},
			{ID: "m2", Title: "Waves"},
		},
		Tips: []string{"Breathe."},
	}
}

func TestState_ZeroValueIsIntake(t *testing.T) {
	var s State
	assert.Equal(t, PhaseIntake, s.Phase())
	assert.False(t, s.Loading())
	_, ok := s.Profile()
	assert.False(t, ok)
	assert.Nil(t, s.Plan())
}

func TestState_HappyPath(t *testing.T) {
	var s State
	require.NoError(t, s.SubmitProfile(testProfile(t)))
	assert.True(t, s.Loading())

	require.NoError(t, s.ReceivePlan(testPlan()))
	assert.Equal(t, PhaseDashboard, s.Phase())

	require.NoError(t, s.SelectModule(1))
	assert.Equal(t, PhaseExplore, s.Phase())
	m, ok := s.ActiveModule()
	require.True(t, ok)
	assert.Equal(t, "Waves", m.Title)

	require.NoError(t, s.LeaveModule())
	assert.Equal(t, PhaseDashboard, s.Phase())
	_, ok = s.ActiveModule()
	assert.False(t, ok)
}

func TestState_SubmitWhileLoading(t *testing.T) {
	var s State
	require.NoError(t, s.SubmitProfile(testProfile(t)))
	assert.ErrorIs(t, s.SubmitProfile(testProfile(t)), ErrPending)
}

func TestState_FailPlanKeepsProfile(t *testing.T) {
	var s State
	p := testProfile(t)
	require.NoError(t, s.SubmitProfile(p))

	cause := errors.New("backend down")
	require.NoError(t, s.FailPlan(cause))

	assert.Equal(t, PhaseIntake, s.Phase())
	assert.False(t, s.Loading())
	assert.Nil(t, s.Plan())
	got, ok := s.Profile()
	require.True(t, ok)
	assert.Equal(t, p.Name, got.Name)
	assert.ErrorIs(t, s.Err(), cause)

	// Resubmittable.
	require.NoError(t, s.SubmitProfile(p))
	assert.Nil(t, s.Err())
}

func TestState_ResubmitFromDashboard(t *testing.T) {
	var s State
	require.NoError(t, s.SubmitProfile(testProfile(t)))
	require.NoError(t, s.ReceivePlan(testPlan()))

	require.NoError(t, s.SubmitProfile(testProfile(t)))
	assert.True(t, s.Loading())
	assert.Nil(t, s.Plan())
}

func TestState_SelectModuleErrors(t *testing.T) {
	var s State
	assert.ErrorIs(t, s.SelectModule(0), ErrNoPlan)

	require.NoError(t, s.SubmitProfile(testProfile(t)))
	require.NoError(t, s.ReceivePlan(testPlan()))
	assert.ErrorIs(t, s.SelectModule(2), ErrUnknownModule)
	assert.ErrorIs(t, s.SelectModule(-1), ErrUnknownModule)
	assert.Equal(t, PhaseDashboard, s.Phase())
}

func TestState_SelectModuleByPosition(t *testing.T) {
	var s State
	require.NoError(t, s.SubmitProfile(testProfile(t)))
	require.NoError(t, s.ReceivePlan(&plan.Plan{
		Title: "Plan",
		Modules: []plan.Module{
			{ID: "m1", Title: "Optics"},
			{ID: "m1", Title: "Waves"},
		},
	}))

	require.NoError(t, s.SelectModule(1))
	m, ok := s.ActiveModule()
	require.True(t, ok)
	assert.Equal(t, "Waves", m.Title)
}

func TestState_WrongPhase(t *testing.T) {
	var s State
	assert.ErrorIs(t, s.ReceivePlan(testPlan()), ErrWrongPhase)
	assert.ErrorIs(t, s.FailPlan(errors.New("x")), ErrWrongPhase)
	assert.ErrorIs(t, s.LeaveModule(), ErrWrongPhase)

	require.NoError(t, s.SubmitProfile(testProfile(t)))
	assert.ErrorIs(t, s.ReceivePlan(nil), ErrNoPlan)
}

func TestState_Reset(t *testing.T) {
	var s State
	require.NoError(t, s.SubmitProfile(testProfile(t)))
	require.NoError(t, s.ReceivePlan(testPlan()))
	require.NoError(t, s.SelectModule(0))

	s.Reset()

	assert.Equal(t, PhaseIntake, s.Phase())
	_, ok := s.Profile()
	assert.False(t, ok)
	assert.Nil(t, s.Plan())
	_, ok = s.ActiveModule()
	assert.False(t, ok)
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "intake", PhaseIntake.String())
	assert.Equal(t, "explore", PhaseExplore.String())
	assert.Equal(t, "phase(9)", Phase(9).String())
}
