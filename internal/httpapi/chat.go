package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/quantumrishi/rishi/internal/chat"
	"github.com/quantumrishi/rishi/internal/persona"
	"github.com/quantumrishi/rishi/internal/plan"
)

type createChatRequest struct {
	ModuleID    string   `json:"moduleId"`
	ModuleTitle string   `json:"moduleTitle"`
	Subtopics   []string `json:"subtopics"`
}

type chatSessionResponse struct {
	ID         string          `json:"id"`
	State      string          `json:"state"`
	Module     plan.Module     `json:"module"`
	Greeting   string          `json:"greeting,omitempty"`
	Transcript chat.Transcript `json:"transcript"`
}

type sendMessageRequest struct {
	Message string `json:"message"`
}

// streamEvent is the payload of SSE events and websocket frames.
type streamEvent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func (s *Server) handleCreateChat(w http.ResponseWriter, r *http.Request) {
	var req createChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Subtopics == nil {
		req.Subtopics = []string{}
	}

	sess := s.chats.Create(plan.Module{
		ID:        req.ModuleID,
		Title:     req.ModuleTitle,
		Subtopics: req.Subtopics,
	})
	resp := sessionResponse(sess)
	resp.Greeting = chat.Greeting(sess.Module()).Text
	JSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetChat(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.chats.Get(chi.URLParam(r, "id"))
	if !ok {
		Error(w, http.StatusNotFound, chat.ErrSessionNotFound.Error())
		return
	}
	JSON(w, http.StatusOK, sessionResponse(sess))
}

func (s *Server) handleDeleteChat(w http.ResponseWriter, r *http.Request) {
	if err := s.chats.Delete(chi.URLParam(r, "id")); err != nil {
		Error(w, http.StatusNotFound, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSendMessage streams one turn as server-sent events: a "fragment"
// event per fragment, then "done" with the full reply or "error" with the
// fallback text. Busy and empty messages are rejected before streaming.
func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.chats.Get(chi.URLParam(r, "id"))
	if !ok {
		Error(w, http.StatusNotFound, chat.ErrSessionNotFound.Error())
		return
	}

	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	next, stop := iter.Pull2(sess.Send(r.Context(), req.Message))
	defer stop()

	fragment, err, more := next()
	switch {
	case errors.Is(err, chat.ErrBusy):
		Error(w, http.StatusConflict, err.Error())
		return
	case errors.Is(err, chat.ErrEmptyMessage):
		Error(w, http.StatusBadRequest, err.Error())
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, `{"error": "streaming not supported"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	var reply strings.Builder
	for ; more; fragment, err, more = next() {
		if err != nil {
			s.log.Warn("chat stream failed", "session", sess.ID(), "err", err)
			if werr := writeSSE(w, streamEvent{Type: "error", Text: persona.ChatFallback}); werr != nil {
				s.log.Warn("failed to write SSE error event", "err", werr)
			}
			flusher.Flush()
			return
		}
		reply.WriteString(fragment)
		if werr := writeSSE(w, streamEvent{Type: "fragment", Text: fragment}); werr != nil {
			s.log.Debug("client went away", "session", sess.ID(), "err", werr)
			return
		}
		flusher.Flush()
	}

	if werr := writeSSE(w, streamEvent{Type: "done", Text: reply.String()}); werr != nil {
		s.log.Debug("failed to write SSE done event", "err", werr)
	}
	flusher.Flush()
}

func writeSSE(w io.Writer, ev streamEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, data)
	return err
}

func sessionResponse(sess *chat.Session) chatSessionResponse {
	return chatSessionResponse{
		ID:         sess.ID(),
		State:      sess.State().String(),
		Module:     sess.Module(),
		Transcript: sess.Transcript(),
	}
}
