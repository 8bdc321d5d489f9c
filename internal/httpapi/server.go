// Package httpapi exposes plan generation and module chat over HTTP, with
// SSE and websocket transports for streamed replies.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/quantumrishi/rishi/internal/chat"
	"github.com/quantumrishi/rishi/internal/logger"
	"github.com/quantumrishi/rishi/internal/plan"
	"github.com/quantumrishi/rishi/internal/profile"
)

// PlanGenerator produces a plan for a profile. *plan.Service satisfies it.
type PlanGenerator interface {
	Generate(ctx context.Context, p profile.Profile) (*plan.Plan, error)
}

// Server holds the handlers' dependencies.
type Server struct {
	plans   PlanGenerator
	chats   *chat.Manager
	log     *logger.Logger
	origins []string
}

func NewServer(plans PlanGenerator, chats *chat.Manager, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	return &Server{plans: plans, chats: chats, log: log}
}

// WithOriginPatterns sets the cross-origin hosts allowed to open a chat
// websocket, as glob patterns matched against the Origin host. With none,
// only same-host requests are accepted.
func (s *Server) WithOriginPatterns(patterns ...string) *Server {
	s.origins = patterns
	return s
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/plans", s.handleCreatePlan)

		r.Route("/chat/sessions", func(r chi.Router) {
			r.Post("/", s.handleCreateChat)
			r.Get("/{id}", s.handleGetChat)
			r.Delete("/{id}", s.handleDeleteChat)
			r.Post("/{id}/messages", s.handleSendMessage)
			r.Get("/{id}/ws", s.handleChatSocket)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}
