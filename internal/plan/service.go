package plan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/quantumrishi/rishi/internal/llm"
	"github.com/quantumrishi/rishi/internal/persona"
	"github.com/quantumrishi/rishi/internal/profile"
)

// ErrPlanUnavailable is the single failure plan generation reports. The
// underlying cause stays in the chain for logging.
var ErrPlanUnavailable = errors.New("study plan unavailable")

// Config holds plan generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the generation settings used by every surface.
// Temperature zero keeps the backend default.
func DefaultConfig() Config {
	return Config{
		MaxTokens: 8192,
	}
}

// Service generates study plans.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a plan generation service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// Generate issues exactly one generate call for p and parses the reply.
// Module order and ids are kept as the backend sent them.
func (s *Service) Generate(ctx context.Context, p profile.Profile) (*Plan, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeStudyPlan)

	req := llm.Request{
		System: persona.SystemInstruction,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: BuildPrompt(p)},
		},
		Schema:      Schema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPlanUnavailable, err)
	}

	var out Plan
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("%w: parse plan response: %w", ErrPlanUnavailable, err)
	}
	for i := range out.Modules {
		out.Modules[i].Priority = ParsePriority(string(out.Modules[i].Priority))
	}
	return &out, nil
}
