package chat

import (
	"slices"

	"github.com/quantumrishi/rishi/internal/persona"
	"github.com/quantumrishi/rishi/internal/plan"
)

// Role is the speaker of a transcript entry.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Message is one transcript entry. Interrupted marks model text cut short
// by a failed or abandoned turn.
type Message struct {
	Role        Role   `json:"role"`
	Text        string `json:"text"`
	Interrupted bool   `json:"interrupted,omitempty"`
}

// EventKind enumerates what can happen to a transcript.
type EventKind int

const (
	EventUserMessage EventKind = iota
	EventFragment
	EventTurnComplete
	EventTurnFailed
	EventTurnAbandoned
)

// Event is the input to Transcript.Apply. Text carries the user message,
// the fragment, or for EventTurnFailed an optional fallback override.
type Event struct {
	Kind EventKind
	Text string
}

// Transcript is the rendered conversation. InProgress is true while the
// last message is a model reply still receiving fragments.
type Transcript struct {
	Messages   []Message `json:"messages"`
	InProgress bool      `json:"inProgress"`
}

// NewTranscript starts a transcript with the given opening messages.
func NewTranscript(opening ...Message) Transcript {
	return Transcript{Messages: slices.Clone(opening)}
}

// Apply returns the transcript after ev. The receiver is not modified.
//
// Fragments grow the in-progress model message or open one. A completed
// turn closes it. A failed turn keeps any partial text as an interrupted
// message and then appends exactly one fallback message. An abandoned turn
// keeps the partial text without a fallback.
func (t Transcript) Apply(ev Event) Transcript {
	next := Transcript{Messages: slices.Clone(t.Messages), InProgress: t.InProgress}

	switch ev.Kind {
	case EventUserMessage:
		next.InProgress = false
		next.Messages = append(next.Messages, Message{Role: RoleUser, Text: ev.Text})

	case EventFragment:
		if ev.Text == "" {
			return next
		}
		if next.InProgress {
			last := &next.Messages[len(next.Messages)-1]
			last.Text += ev.Text
			return next
		}
		next.Messages = append(next.Messages, Message{Role: RoleModel, Text: ev.Text})
		next.InProgress = true

	case EventTurnComplete:
		next.InProgress = false

	case EventTurnFailed:
		if next.InProgress {
			next.Messages[len(next.Messages)-1].Interrupted = true
		}
		fallback := ev.Text
		if fallback == "" {
			fallback = persona.ChatFallback
		}
		next.Messages = append(next.Messages, Message{Role: RoleModel, Text: fallback})
		next.InProgress = false

	case EventTurnAbandoned:
		if next.InProgress {
			next.Messages[len(next.Messages)-1].Interrupted = true
		}
		next.InProgress = false
	}
	return next
}

// Last returns the final message.
func (t Transcript) Last() (Message, bool) {
	if len(t.Messages) == 0 {
		return Message{}, false
	}
	return t.Messages[len(t.Messages)-1], true
}

// Greeting is the local opening message for a module. It is shown in the
// transcript and never sent to the backend.
func Greeting(m plan.Module) Message {
	return Message{Role: RoleModel, Text: persona.Greeting(m.Title, m.Subtopics)}
}
