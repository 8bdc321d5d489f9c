// Package session holds the per-user context that drives every surface:
// the submitted profile, the generated plan and the module being explored.
package session

import (
	"errors"
	"fmt"

	"github.com/quantumrishi/rishi/internal/plan"
	"github.com/quantumrishi/rishi/internal/profile"
)

var (
	ErrPending       = errors.New("a plan request is already running")
	ErrNoPlan        = errors.New("no plan available")
	ErrUnknownModule = errors.New("module not in plan")
	ErrWrongPhase    = errors.New("transition not allowed in this phase")
)

// Phase is what the user is looking at.
type Phase int

const (
	PhaseIntake Phase = iota
	PhaseLoading
	PhaseDashboard
	PhaseExplore
)

func (p Phase) String() string {
	switch p {
	case PhaseIntake:
		return "intake"
	case PhaseLoading:
		return "loading"
	case PhaseDashboard:
		return "dashboard"
	case PhaseExplore:
		return "explore"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// State is the session context. The zero value is the initial intake
// state. Fields change only through the transition methods.
type State struct {
	phase   Phase
	profile *profile.Profile
	plan    *plan.Plan
	module  *plan.Module
	lastErr error
}

func (s *State) Phase() Phase { return s.phase }

func (s *State) Loading() bool { return s.phase == PhaseLoading }

// Profile returns the last submitted profile.
func (s *State) Profile() (profile.Profile, bool) {
	if s.profile == nil {
		return profile.Profile{}, false
	}
	return *s.profile, true
}

func (s *State) Plan() *plan.Plan { return s.plan }

// ActiveModule returns the module being explored.
func (s *State) ActiveModule() (plan.Module, bool) {
	if s.module == nil {
		return plan.Module{}, false
	}
	return *s.module, true
}

// Err is the failure from the last plan request, cleared on the next
// submit.
func (s *State) Err() error { return s.lastErr }

// SubmitProfile records p and enters loading. It is allowed from intake
// and from the dashboard; a running request yields ErrPending.
func (s *State) SubmitProfile(p profile.Profile) error {
	switch s.phase {
	case PhaseLoading:
		return ErrPending
	case PhaseIntake, PhaseDashboard:
	default:
		return fmt.Errorf("%w: submit from %s", ErrWrongPhase, s.phase)
	}
	s.profile = &p
	s.plan = nil
	s.module = nil
	s.lastErr = nil
	s.phase = PhaseLoading
	return nil
}

// ReceivePlan stores the generated plan and shows the dashboard.
func (s *State) ReceivePlan(pl *plan.Plan) error {
	if s.phase != PhaseLoading {
		return fmt.Errorf("%w: receive plan in %s", ErrWrongPhase, s.phase)
	}
	if pl == nil {
		return ErrNoPlan
	}
	s.plan = pl
	s.phase = PhaseDashboard
	return nil
}

// FailPlan ends loading without a plan. The profile is kept so the
// intake form can be resubmitted.
func (s *State) FailPlan(err error) error {
	if s.phase != PhaseLoading {
		return fmt.Errorf("%w: fail plan in %s", ErrWrongPhase, s.phase)
	}
	s.plan = nil
	s.lastErr = err
	s.phase = PhaseIntake
	return nil
}

// SelectModule opens the module at position i of the current plan. Module
// ids come from the model and may repeat.
func (s *State) SelectModule(i int) error {
	if s.plan == nil {
		return ErrNoPlan
	}
	if s.phase != PhaseDashboard && s.phase != PhaseExplore {
		return fmt.Errorf("%w: select module in %s", ErrWrongPhase, s.phase)
	}
	if i < 0 || i >= len(s.plan.Modules) {
		return fmt.Errorf("%w: index %d", ErrUnknownModule, i)
	}
	m := s.plan.Modules[i]
	s.module = &m
	s.phase = PhaseExplore
	return nil
}

// LeaveModule returns from exploration to the dashboard.
func (s *State) LeaveModule() error {
	if s.phase != PhaseExplore {
		return fmt.Errorf("%w: leave module in %s", ErrWrongPhase, s.phase)
	}
	s.module = nil
	s.phase = PhaseDashboard
	return nil
}

// Reset discards the profile, plan and active module.
func (s *State) Reset() {
	*s = State{}
}
