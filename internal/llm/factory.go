package llm

import (
	"fmt"

	"github.com/quantumrishi/rishi/internal/logger"
	"github.com/quantumrishi/rishi/internal/store"
)

// NewProvider creates a StreamProvider from configuration.
// It returns the provider wrapped with retry and logging middleware.
// Provider clients connect lazily, so no network traffic happens here.
func NewProvider(cfg Config, eventRepo store.EventRepo, log *logger.Logger) (StreamProvider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base StreamProvider
	switch cfg.Provider {
	case ProviderGemini:
		base = NewGeminiProvider(cfg.Gemini)
	case ProviderAnthropic:
		base = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base = NewOpenAIProvider(cfg.OpenAI)
	case ProviderOpenRouter:
		base = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}

	// Wrap with middleware: caller → retry → logging → base
	logged := WithLogging(base, cfg.Provider, eventRepo, log)
	return WithRetry(logged, cfg.Retry), nil
}
