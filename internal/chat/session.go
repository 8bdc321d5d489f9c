// Package chat runs module-bound counselling conversations: one streamed
// turn at a time over a history of completed turns.
package chat

import (
	"context"
	"errors"
	"iter"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/quantumrishi/rishi/internal/llm"
	"github.com/quantumrishi/rishi/internal/logger"
	"github.com/quantumrishi/rishi/internal/persona"
	"github.com/quantumrishi/rishi/internal/plan"
)

var (
	ErrEmptyMessage    = errors.New("message is empty")
	ErrBusy            = errors.New("a reply is still streaming")
	ErrSessionNotFound = errors.New("chat session not found")
)

// State is the turn state of a session.
type State int

const (
	StateIdle State = iota
	StateStreaming
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStreaming:
		return "streaming"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Config holds chat settings shared by every session.
type Config struct {
	System      string
	MaxTokens   int
	Temperature float64
	TTL         time.Duration
}

// DefaultConfig uses the persona instruction and a 30 minute idle TTL.
// MaxTokens stays zero so each provider applies its own output limit.
func DefaultConfig() Config {
	return Config{
		System: persona.SystemInstruction,
		TTL:    30 * time.Minute,
	}
}

// Session is one conversation about a module. It is safe for concurrent
// use; at most one Send streams at a time.
type Session struct {
	id       string
	module   plan.Module
	provider llm.StreamProvider
	cfg      Config
	log      *logger.Logger
	now      func() time.Time

	mu         sync.Mutex
	state      State
	history    []llm.Message
	transcript Transcript
	lastActive time.Time
}

// NewSession opens a session bound to module. The transcript starts with
// the module greeting; the history sent upstream starts empty.
func NewSession(provider llm.StreamProvider, module plan.Module, cfg Config, log *logger.Logger) *Session {
	if log == nil {
		log = logger.Nop()
	}
	s := &Session{
		id:         uuid.New().String(),
		module:     module,
		provider:   provider,
		cfg:        cfg,
		now:        time.Now,
		transcript: NewTranscript(Greeting(module)),
	}
	s.log = log.With("session", s.id)
	s.lastActive = s.now()
	return s
}

func (s *Session) ID() string { return s.id }

func (s *Session) Module() plan.Module { return s.module }

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Transcript returns a snapshot of the rendered conversation.
func (s *Session) Transcript() Transcript {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Transcript{Messages: slices.Clone(s.transcript.Messages), InProgress: s.transcript.InProgress}
}

// History returns a copy of the completed turns sent upstream.
func (s *Session) History() []llm.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.history)
}

func (s *Session) idleSince() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive, s.state != StateStreaming
}

// Send streams the reply to message. Fragments arrive in order; a non-nil
// error ends the sequence and is yielded once. ErrEmptyMessage and ErrBusy
// are yielded without contacting the backend.
//
// A completed turn appends the user and model messages to the history. A
// failed turn leaves the history alone and parks the session in
// StateFailed until the next Send. Stopping the range loop early, or
// cancelling ctx, abandons the turn and returns the session to StateIdle.
func (s *Session) Send(ctx context.Context, message string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		text := strings.TrimSpace(message)
		if text == "" {
			yield("", ErrEmptyMessage)
			return
		}

		req, ok := s.begin(text)
		if !ok {
			yield("", ErrBusy)
			return
		}

		ctx = llm.WithPurpose(ctx, llm.PurposeChat)

		var reply strings.Builder
		for fragment, err := range s.provider.Stream(ctx, req) {
			if err != nil {
				// A cancelled caller is treated like an early break.
				if ctx.Err() != nil {
					s.abandon()
				} else {
					s.fail(err)
				}
				yield("", err)
				return
			}
			if fragment == "" {
				continue
			}
			reply.WriteString(fragment)
			s.fragment(fragment)
			if !yield(fragment, nil) {
				s.abandon()
				return
			}
		}
		s.complete(text, reply.String())
	}
}

func (s *Session) begin(text string) (llm.Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateStreaming {
		return llm.Request{}, false
	}
	s.state = StateStreaming
	s.lastActive = s.now()
	s.transcript = s.transcript.Apply(Event{Kind: EventUserMessage, Text: text})

	messages := append(slices.Clone(s.history), llm.Message{Role: llm.RoleUser, Content: text})
	return llm.Request{
		System:      s.cfg.System,
		Messages:    messages,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}, true
}

func (s *Session) fragment(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = s.transcript.Apply(Event{Kind: EventFragment, Text: text})
	s.lastActive = s.now()
}

func (s *Session) complete(user, reply string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transcript = s.transcript.Apply(Event{Kind: EventTurnComplete})
	// An empty reply is not recorded; backends reject empty assistant turns.
	if reply != "" {
		s.history = append(s.history,
			llm.Message{Role: llm.RoleUser, Content: user},
			llm.Message{Role: llm.RoleAssistant, Content: reply},
		)
	}
	s.state = StateIdle
	s.lastActive = s.now()
}

func (s *Session) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transcript = s.transcript.Apply(Event{Kind: EventTurnFailed})
	s.state = StateFailed
	s.lastActive = s.now()
	s.log.Warn("chat turn failed", "module", s.module.ID, "err", err)
}

func (s *Session) abandon() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transcript = s.transcript.Apply(Event{Kind: EventTurnAbandoned})
	s.state = StateIdle
	s.lastActive = s.now()
}
