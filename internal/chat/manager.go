package chat

import (
	"context"
	"sync"
	"time"

	"github.com/quantumrishi/rishi/internal/llm"
	"github.com/quantumrishi/rishi/internal/logger"
	"github.com/quantumrishi/rishi/internal/plan"
)

// Manager owns the sessions served over HTTP, keyed by id.
type Manager struct {
	provider llm.StreamProvider
	cfg      Config
	log      *logger.Logger
	now      func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates an empty manager. Call Run to start the idle sweep.
func NewManager(provider llm.StreamProvider, cfg Config, log *logger.Logger) *Manager {
	if log == nil {
		log = logger.Nop()
	}
	return &Manager{
		provider: provider,
		cfg:      cfg,
		log:      log,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Create opens a session bound to module.
func (m *Manager) Create(module plan.Module) *Session {
	s := NewSession(m.provider, module, m.cfg, m.log)
	s.now = m.now
	s.lastActive = m.now()

	m.mu.Lock()
	m.sessions[s.ID()] = s
	m.mu.Unlock()

	m.log.Debug("chat session created", "session", s.ID(), "module", module.ID)
	return s
}

func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, id)
	return nil
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep drops sessions idle for longer than the TTL and returns how many
// were removed. Streaming sessions are never dropped.
func (m *Manager) Sweep() int {
	if m.cfg.TTL <= 0 {
		return 0
	}
	cutoff := m.now().Add(-m.cfg.TTL)

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, s := range m.sessions {
		last, idle := s.idleSince()
		if idle && last.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		m.log.Debug("swept idle chat sessions", "removed", removed)
	}
	return removed
}

// Run sweeps on every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep()
		}
	}
}
