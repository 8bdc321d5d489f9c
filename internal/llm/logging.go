package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/quantumrishi/rishi/internal/logger"
	"github.com/quantumrishi/rishi/internal/store"
)

// LoggingProvider is a decorator that records every LLM request as an event.
type LoggingProvider struct {
	inner     StreamProvider
	provider  string
	eventRepo store.EventRepo
	log       *logger.Logger
}

// WithLogging wraps a StreamProvider with event logging. provider is the
// backend name recorded with each event.
func WithLogging(p StreamProvider, provider string, repo store.EventRepo, log *logger.Logger) StreamProvider {
	if repo == nil {
		repo = store.NopEventRepo()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &LoggingProvider{inner: p, provider: provider, eventRepo: repo, log: log}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}

	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
		data.ResponseBody = string(resp.Content)
	}

	if err != nil {
		data.ErrorMessage = err.Error()
	}

	l.record(ctx, data)
	return resp, err
}

// Stream records one event when the stream ends, whether it completed,
// failed, or was abandoned by the consumer.
func (l *LoggingProvider) Stream(ctx context.Context, req Request) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		start := time.Now()
		var reply strings.Builder
		fragments := 0
		var streamErr error

		defer func() {
			data := store.LLMRequestEventData{
				Provider:     l.provider,
				Model:        l.inner.ModelID(),
				Purpose:      PurposeFrom(ctx),
				LatencyMs:    time.Since(start).Milliseconds(),
				Success:      streamErr == nil,
				Streamed:     true,
				Fragments:    fragments,
				RequestBody:  serializeRequest(req),
				ResponseBody: reply.String(),
			}
			if streamErr != nil {
				data.ErrorMessage = streamErr.Error()
			}
			// The consumer's context may already be cancelled.
			l.record(context.WithoutCancel(ctx), data)
		}()

		for fragment, err := range l.inner.Stream(ctx, req) {
			if err != nil {
				streamErr = err
				yield("", err)
				return
			}
			fragments++
			reply.WriteString(fragment)
			if !yield(fragment, nil) {
				return
			}
		}
	}
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// record appends the event but never fails the request.
func (l *LoggingProvider) record(ctx context.Context, data store.LLMRequestEventData) {
	if err := l.eventRepo.AppendLLMRequest(ctx, data); err != nil {
		l.log.Warn("failed to log LLM request event",
			"provider", data.Provider,
			"purpose", data.Purpose,
			"err", err,
		)
	}
}

// serializeRequest builds a readable representation of the LLM request.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		b.WriteString(fmt.Sprintf("[%s]\n", m.Role))
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}

	if req.Schema != nil {
		schemaDef, err := json.Marshal(req.Schema.Definition)
		if err == nil {
			b.WriteString(fmt.Sprintf("[schema: %s]\n", req.Schema.Name))
			b.WriteString(string(schemaDef))
			b.WriteString("\n")
		}
	}

	return b.String()
}
