package chat

import (
	"context"
	"iter"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantumrishi/rishi/internal/llm"
)

// streamFunc adapts a function to llm.StreamProvider.
type streamFunc func(ctx context.Context, req llm.Request) ([]string, error)

func (f streamFunc) Generate(context.Context, llm.Request) (*llm.Response, error) {
	return nil, &llm.ErrProviderUnavailable{}
}

func (f streamFunc) Stream(ctx context.Context, req llm.Request) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		frags, err := f(ctx, req)
		for _, s := range frags {
			if !yield(s, nil) {
				return
			}
		}
		if err != nil {
			yield("", err)
		}
	}
}

func (f streamFunc) ModelID() string { return "func" }

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func TestManager_CreateGetDelete(t *testing.T) {
	m := NewManager(llm.NewMockProvider(), DefaultConfig(), nil)

	s := m.Create(testModule)
	got, ok := m.Get(s.ID())
	require.True(t, ok)
	assert.Same(t, s, got)
	assert.Equal(t, 1, m.Len())

	require.NoError(t, m.Delete(s.ID()))
	_, ok = m.Get(s.ID())
	assert.False(t, ok)
	assert.ErrorIs(t, m.Delete(s.ID()), ErrSessionNotFound)
}

func TestManager_SweepDropsIdleSessions(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)}
	cfg := DefaultConfig()
	cfg.TTL = 10 * time.Minute

	m := NewManager(llm.NewMockProvider(llm.MockResponse{Fragments: []string{"hi"}}), cfg, nil)
	m.now = clock.now

	old := m.Create(testModule)
	clock.t = clock.t.Add(8 * time.Minute)
	fresh := m.Create(testModule)

	clock.t = clock.t.Add(5 * time.Minute)
	// Activity refreshes the idle timer.
	_, err := drain(t.Context(), fresh, "hello")
	require.NoError(t, err)

	assert.Equal(t, 1, m.Sweep())
	_, ok := m.Get(old.ID())
	assert.False(t, ok)
	_, ok = m.Get(fresh.ID())
	assert.True(t, ok)
}

func TestManager_SweepKeepsStreamingSessions(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)}
	cfg := DefaultConfig()
	cfg.TTL = time.Minute

	gate := make(chan struct{})
	m := NewManager(llm.NewMockProvider(llm.MockResponse{Fragments: []string{"x"}, Gate: gate}), cfg, nil)
	m.now = clock.now

	s := m.Create(testModule)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = drain(context.Background(), s, "q")
	}()
	require.Eventually(t, func() bool { return s.State() == StateStreaming }, time.Second, 5*time.Millisecond)

	clock.t = clock.t.Add(time.Hour)
	assert.Equal(t, 0, m.Sweep())

	close(gate)
	<-done
}

func TestManager_ZeroTTLNeverSweeps(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TTL = 0
	m := NewManager(llm.NewMockProvider(), cfg, nil)
	m.Create(testModule)
	assert.Equal(t, 0, m.Sweep())
}

func TestManager_RunStopsOnCancel(t *testing.T) {
	m := NewManager(llm.NewMockProvider(), DefaultConfig(), nil)
	ctx, cancel := context.WithCancel(t.Context())

	done := make(chan struct{})
	go func() {
		m.Run(ctx, time.Millisecond)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
