package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/go-chi/chi/v5"

	"github.com/quantumrishi/rishi/internal/chat"
	"github.com/quantumrishi/rishi/internal/persona"
)

// handleChatSocket serves a chat session over a websocket. Each client
// frame {"message": ...} starts a turn; the server answers with fragment
// frames followed by one done or error frame.
func (s *Server) handleChatSocket(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.chats.Get(chi.URLParam(r, "id"))
	if !ok {
		Error(w, http.StatusNotFound, chat.ErrSessionNotFound.Error())
		return
	}

	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.origins,
	})
	if err != nil {
		s.log.Error("failed to accept websocket", "session", sess.ID(), "err", err)
		return
	}
	defer func() {
		if cerr := ws.Close(websocket.StatusNormalClosure, "session ended"); cerr != nil {
			s.log.Debug("failed to close websocket", "session", sess.ID(), "err", cerr)
		}
	}()

	ctx := r.Context()
	for {
		var req sendMessageRequest
		if err := wsjson.Read(ctx, ws, &req); err != nil {
			if websocket.CloseStatus(err) != -1 {
				s.log.Debug("websocket closed by client", "session", sess.ID())
			} else {
				s.log.Warn("websocket read error", "session", sess.ID(), "err", err)
			}
			return
		}

		var reply strings.Builder
		final := streamEvent{Type: "done"}
		for fragment, err := range sess.Send(ctx, req.Message) {
			if err != nil {
				final = streamEvent{Type: "error", Text: persona.ChatFallback}
				if errors.Is(err, chat.ErrBusy) || errors.Is(err, chat.ErrEmptyMessage) {
					final.Text = err.Error()
				} else {
					s.log.Warn("chat stream failed", "session", sess.ID(), "err", err)
				}
				break
			}
			reply.WriteString(fragment)
			if err := wsjson.Write(ctx, ws, streamEvent{Type: "fragment", Text: fragment}); err != nil {
				s.log.Debug("websocket write failed", "session", sess.ID(), "err", err)
				return
			}
		}
		if final.Type == "done" {
			final.Text = reply.String()
		}
		if err := wsjson.Write(ctx, ws, final); err != nil {
			s.log.Debug("websocket write failed", "session", sess.ID(), "err", err)
			return
		}
	}
}
