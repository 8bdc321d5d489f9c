package session

import (
	"context"
	"sync"

	"github.com/quantumrishi/rishi/internal/logger"
	"github.com/quantumrishi/rishi/internal/plan"
	"github.com/quantumrishi/rishi/internal/profile"
)

// Generator produces a plan for a profile. *plan.Service satisfies it.
type Generator interface {
	Generate(ctx context.Context, p profile.Profile) (*plan.Plan, error)
}

// Controller guards a State with a mutex and runs plan requests against
// it. At most one Generate call is outstanding at a time.
type Controller struct {
	gen Generator
	log *logger.Logger

	mu    sync.Mutex
	state State
	// epoch changes on Reset so a late reply for a discarded profile is
	// dropped.
	epoch int
}

func NewController(gen Generator, log *logger.Logger) *Controller {
	if log == nil {
		log = logger.Nop()
	}
	return &Controller{gen: gen, log: log}
}

// Submit runs SubmitProfile, the generate call, then ReceivePlan or
// FailPlan. It blocks until the request finishes and returns the plan or
// the generation error. A concurrent Submit returns ErrPending at once.
func (c *Controller) Submit(ctx context.Context, p profile.Profile) (*plan.Plan, error) {
	c.mu.Lock()
	if err := c.state.SubmitProfile(p); err != nil {
		c.mu.Unlock()
		return nil, err
	}
	epoch := c.epoch
	c.mu.Unlock()

	pl, err := c.gen.Generate(ctx, p)

	c.mu.Lock()
	defer c.mu.Unlock()
	if epoch != c.epoch {
		c.log.Debug("dropping plan reply after reset")
		if err != nil {
			return nil, err
		}
		return pl, nil
	}
	if err != nil {
		c.log.Warn("plan generation failed", "student", p.Name, "err", err)
		_ = c.state.FailPlan(err)
		return nil, err
	}
	if rerr := c.state.ReceivePlan(pl); rerr != nil {
		_ = c.state.FailPlan(rerr)
		return nil, rerr
	}
	c.log.Info("plan generated", "student", p.Name, "modules", len(pl.Modules))
	return pl, nil
}

func (c *Controller) SelectModule(i int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.SelectModule(i)
}

func (c *Controller) LeaveModule() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.LeaveModule()
}

// Reset clears the state. A request still running is left to finish and
// its result is discarded.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Reset()
	c.epoch++
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}
