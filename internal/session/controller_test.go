package session

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantumrishi/rishi/internal/llm"
	"github.com/quantumrishi/rishi/internal/plan"
	"github.com/quantumrishi/rishi/internal/profile"
)

// blockingGen holds Generate until release is closed.
type blockingGen struct {
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
	result  *plan.Plan
	err     error
}

func newBlockingGen(result *plan.Plan, err error) *blockingGen {
	return &blockingGen{started: make(chan struct{}, 1), release: make(chan struct{}), result: result, err: err}
}

func (g *blockingGen) Generate(ctx context.Context, _ profile.Profile) (*plan.Plan, error) {
	g.calls.Add(1)
	g.started <- struct{}{}
	select {
	case <-g.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return g.result, g.err
}

func TestController_SubmitWithPlanService(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: []byte(`{
		"title": "T", "overview": "O",
		"modules": [{"id": "x", "title": "X", "description": "d", "subtopics": [], "estimatedTime": "1h", "priority": "Low"}],
		"tips": ["t"]
	}`)})
	c := NewController(plan.NewService(mock, plan.DefaultConfig()), nil)

	pl, err := c.Submit(t.Context(), testProfile(t))
	require.NoError(t, err)
	assert.Equal(t, "T", pl.Title)

	snap := c.Snapshot()
	assert.Equal(t, PhaseDashboard, snap.Phase())
	require.NoError(t, c.SelectModule(0))
	snap = c.Snapshot()
	assert.Equal(t, PhaseExplore, snap.Phase())
	require.NoError(t, c.LeaveModule())
}

func TestController_FailureReturnsToIntake(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}})
	c := NewController(plan.NewService(mock, plan.DefaultConfig()), nil)

	_, err := c.Submit(t.Context(), testProfile(t))
	require.ErrorIs(t, err, plan.ErrPlanUnavailable)

	snap := c.Snapshot()
	assert.Equal(t, PhaseIntake, snap.Phase())
	assert.False(t, snap.Loading())
	_, ok := snap.Profile()
	assert.True(t, ok)
	assert.Nil(t, snap.Plan())
}

func TestController_SingleOutstandingRequest(t *testing.T) {
	gen := newBlockingGen(testPlan(), nil)
	c := NewController(gen, nil)

	done := make(chan error, 1)
	go func() {
		_, err := c.Submit(context.Background(), testProfile(t))
		done <- err
	}()
	<-gen.started

	_, err := c.Submit(t.Context(), testProfile(t))
	assert.ErrorIs(t, err, ErrPending)

	close(gen.release)
	require.NoError(t, <-done)
	assert.Equal(t, int32(1), gen.calls.Load())
	final := c.Snapshot()
	assert.Equal(t, PhaseDashboard, final.Phase())
}

func TestController_ResetDropsLateReply(t *testing.T) {
	gen := newBlockingGen(testPlan(), nil)
	c := NewController(gen, nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = c.Submit(context.Background(), testProfile(t))
	}()
	<-gen.started

	c.Reset()
	close(gen.release)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Submit did not return")
	}
	snap := c.Snapshot()
	assert.Equal(t, PhaseIntake, snap.Phase())
	assert.Nil(t, snap.Plan())
}
