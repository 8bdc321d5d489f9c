package explore

import (
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantumrishi/rishi/internal/chat"
	"github.com/quantumrishi/rishi/internal/llm"
	"github.com/quantumrishi/rishi/internal/logger"
	"github.com/quantumrishi/rishi/internal/persona"
	"github.com/quantumrishi/rishi/internal/plan"
	"github.com/quantumrishi/rishi/internal/screen"
)

var testModule = plan.Module{ID: "m-1", Title: "Genetics", Subtopics: []string{"Mendel", "DNA"}}

func newExplore(responses ...llm.MockResponse) (*ExploreScreen, *llm.MockProvider) {
	mock := llm.NewMockProvider(responses...)
	deps := screen.Deps{Chat: mock, ChatConfig: chat.DefaultConfig(), Log: logger.Nop()}
	return New(deps, testModule), mock
}

func typeAndSend(e *ExploreScreen, text string) tea.Cmd {
	e.input.SetValue(text)
	_, cmd := e.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	return cmd
}

// pump feeds stream messages back into the screen until the stream closes
// and returns them.
func pump(t *testing.T, e *ExploreScreen) []tea.Msg {
	t.Helper()
	ch := e.stream
	require.NotNil(t, ch)
	var msgs []tea.Msg
	for {
		msg := waitForStream(ch)()
		msgs = append(msgs, msg)
		e.Update(msg)
		if _, ok := msg.(streamClosedMsg); ok {
			return msgs
		}
	}
}

func TestStartsWithGreeting(t *testing.T) {
	e, mock := newExplore()

	v := e.View(100, 40)
	assert.Contains(t, v, "Genetics")
	assert.Contains(t, v, "Mendel")
	assert.Zero(t, mock.CallCount())
	assert.Equal(t, chat.Greeting(testModule), e.sess.Transcript().Messages[0])
}

func TestStreamedReply(t *testing.T) {
	e, mock := newExplore(llm.MockResponse{Fragments: []string{"Mendel ne ", "matar ", "pe kaam kiya."}})

	cmd := typeAndSend(e, "Mendel kaun the?")
	require.NotNil(t, cmd)
	assert.True(t, e.Streaming())
	assert.True(t, e.input.Disabled)
	assert.Empty(t, e.input.Value())

	msgs := pump(t, e)

	var fragments []string
	for _, m := range msgs {
		if f, ok := m.(fragmentMsg); ok {
			fragments = append(fragments, f.text)
		}
	}
	assert.Equal(t, []string{"Mendel ne ", "matar ", "pe kaam kiya."}, fragments)
	assert.False(t, e.Streaming())
	assert.False(t, e.input.Disabled)

	tr := e.sess.Transcript()
	require.Len(t, tr.Messages, 3)
	assert.Equal(t, chat.Message{Role: chat.RoleUser, Text: "Mendel kaun the?"}, tr.Messages[1])
	assert.Equal(t, "Mendel ne matar pe kaam kiya.", tr.Messages[2].Text)
	assert.Contains(t, e.renderTranscript(96), "Mendel ne matar pe kaam kiya.")

	req, ok := mock.LastCall()
	require.True(t, ok)
	assert.Equal(t, "Mendel kaun the?", req.Messages[len(req.Messages)-1].Content)
}

func TestFailedReplyShowsFallback(t *testing.T) {
	e, _ := newExplore(llm.MockResponse{Fragments: []string{"Ek min"}, Err: errors.New("stream cut")})

	typeAndSend(e, "DNA?")
	msgs := pump(t, e)

	var failed bool
	for _, m := range msgs {
		if _, ok := m.(turnFailedMsg); ok {
			failed = true
		}
	}
	assert.True(t, failed)

	tr := e.sess.Transcript()
	last := tr.Messages[len(tr.Messages)-1]
	assert.Equal(t, persona.ChatFallback, last.Text)
	assert.True(t, tr.Messages[len(tr.Messages)-2].Interrupted)
	assert.Contains(t, e.renderTranscript(96), "interrupted")

	// The screen accepts another message afterwards.
	assert.False(t, e.Streaming())
	assert.False(t, e.input.Disabled)
}

func TestSendIgnoredWhileStreamingOrEmpty(t *testing.T) {
	gate := make(chan struct{})
	e, mock := newExplore(llm.MockResponse{Fragments: []string{"ok"}, Gate: gate})

	assert.Nil(t, typeAndSend(e, "   "))

	require.NotNil(t, typeAndSend(e, "first"))
	assert.Contains(t, e.renderTranscript(96), persona.Thinking)
	assert.Nil(t, typeAndSend(e, "second"))

	close(gate)
	pump(t, e)
	assert.Equal(t, 1, mock.CallCount())
}

func TestLeaveCancelsStream(t *testing.T) {
	gate := make(chan struct{})
	e, _ := newExplore(llm.MockResponse{Fragments: []string{"never"}, Gate: gate})

	typeAndSend(e, "hello")
	e.Leave()
	pump(t, e)

	assert.Equal(t, chat.StateIdle, e.sess.State())
	assert.Nil(t, typeAndSend(e, "again"))

	// Leave is idempotent.
	e.Leave()
}

func TestStaleStreamMessagesIgnored(t *testing.T) {
	e, _ := newExplore()
	other := make(chan tea.Msg)

	_, cmd := e.Update(fragmentMsg{ch: other, text: "x"})
	assert.Nil(t, cmd)
	_, cmd = e.Update(streamClosedMsg{ch: other})
	assert.Nil(t, cmd)
	assert.False(t, strings.Contains(e.renderTranscript(96), "x\n"))
}
