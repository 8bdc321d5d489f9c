package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/quantumrishi/rishi/internal/persona"
	"github.com/quantumrishi/rishi/internal/profile"
)

func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	var p profile.Profile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		Error(w, http.StatusBadRequest, profileMessage(err))
		return
	}
	if err := p.Validate(); err != nil {
		Error(w, http.StatusBadRequest, profileMessage(err))
		return
	}

	pl, err := s.plans.Generate(r.Context(), p)
	if err != nil {
		s.log.Error("plan generation failed", "err", err)
		Error(w, http.StatusBadGateway, persona.PlanFailure)
		return
	}
	JSON(w, http.StatusOK, pl)
}

// profileMessage maps validation errors to the student-facing wording.
func profileMessage(err error) string {
	switch {
	case errors.Is(err, profile.ErrNameRequired):
		return persona.NameRequired
	case errors.Is(err, profile.ErrTopicsRequired):
		return persona.TopicsRequired
	default:
		return err.Error()
	}
}
