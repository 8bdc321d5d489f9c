package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-pro", "gemini-3-pro-preview"},
		{"gemini-flash", "gemini-3-flash-preview"},
		{"gemini-2.5-pro", "gemini-2.5-pro"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"title":    map[string]any{"type": "string"},
			"priority": map[string]any{"type": "string", "enum": []any{"High", "Medium", "Low"}},
			"subtopics": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required": []any{"title", "priority"},
	}

	schema := buildGeminiSchema(def)

	assert.EqualValues(t, "OBJECT", schema.Type)
	require.Len(t, schema.Properties, 3)
	assert.EqualValues(t, "STRING", schema.Properties["title"].Type)
	assert.Len(t, schema.Properties["priority"].Enum, 3)
	assert.EqualValues(t, "ARRAY", schema.Properties["subtopics"].Type)
	assert.EqualValues(t, "STRING", schema.Properties["subtopics"].Items.Type)
	assert.ElementsMatch(t, []string{"title", "priority"}, schema.Required)
}

func TestBuildGeminiContents_MapsRoles(t *testing.T) {
	contents := buildGeminiContents([]Message{
		{Role: RoleUser, Content: "hi"},
		{Role: RoleAssistant, Content: "namaste"},
	})
	require.Len(t, contents, 2)
	assert.Equal(t, "user", contents[0].Role)
	assert.Equal(t, "model", contents[1].Role)
	assert.Equal(t, "namaste", contents[1].Parts[0].Text)
}

func TestGeminiProvider_EmptyKeyFailsOnFirstCall(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	p := NewGeminiProvider(GeminiConfig{Model: "gemini-pro"})
	assert.Equal(t, "gemini-3-pro-preview", p.ModelID())

	_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "x"}}})
	var unavail *ErrProviderUnavailable
	require.True(t, errors.As(err, &unavail), "expected ErrProviderUnavailable, got %T (%v)", err, err)

	var streamErr error
	for _, err := range p.Stream(context.Background(), Request{}) {
		streamErr = err
	}
	assert.ErrorAs(t, streamErr, &unavail)
}

func TestGeminiProvider_GenerateStructured(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "gemini-3-pro-preview:generateContent"), r.URL.Path)
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": `{"title":"Optics","hours":3}`}},
				},
				"finishReason": "STOP",
			}},
			"usageMetadata": map[string]any{
				"promptTokenCount":     12,
				"candidatesTokenCount": 8,
				"totalTokenCount":      20,
			},
		})
	}))
	t.Cleanup(server.Close)

	p := NewGeminiProvider(GeminiConfig{APIKey: "test-key", Model: "gemini-pro", BaseURL: server.URL})
	resp, err := p.Generate(context.Background(), Request{
		System:   "persona",
		Messages: []Message{{Role: RoleUser, Content: "make a plan"}},
		Schema:   testSchema(),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Optics","hours":3}`, string(resp.Content))
	assert.Equal(t, 12, resp.Usage.InputTokens)
	assert.Equal(t, 20, resp.Usage.TotalTokens)
	assert.Equal(t, "end", resp.StopReason)

	genCfg, _ := gotBody["generationConfig"].(map[string]any)
	assert.Equal(t, "application/json", genCfg["responseMimeType"])
	assert.NotNil(t, gotBody["systemInstruction"])
}

func TestGeminiProvider_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": 500, "message": "internal", "status": "INTERNAL"},
		})
	}))
	t.Cleanup(server.Close)

	p := NewGeminiProvider(GeminiConfig{APIKey: "test-key", Model: "gemini-pro", BaseURL: server.URL})
	_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "x"}}})
	var unavail *ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavail)
}

func TestGeminiProvider_GenerateMaxTokens(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": `{"title":"Opt`}},
				},
				"finishReason": "MAX_TOKENS",
			}},
		})
	}))
	t.Cleanup(server.Close)

	p := NewGeminiProvider(GeminiConfig{APIKey: "test-key", Model: "gemini-pro", BaseURL: server.URL})
	_, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "make a plan"}},
		Schema:   testSchema(),
	})
	var maxTok *ErrMaxTokensExceeded
	require.ErrorAs(t, err, &maxTok)
	assert.Equal(t, `{"title":"Opt`, string(maxTok.Content))
}

// geminiChunk renders one streamGenerateContent SSE event.
func geminiChunk(text, finishReason string) string {
	candidate := map[string]any{
		"content": map[string]any{
			"role":  "model",
			"parts": []map[string]any{{"text": text}},
		},
	}
	if finishReason != "" {
		candidate["finishReason"] = finishReason
	}
	b, _ := json.Marshal(map[string]any{"candidates": []map[string]any{candidate}})
	return fmt.Sprintf("data: %s\n\n", b)
}

func newGeminiStreamServer(t *testing.T, events ...string) *GeminiProvider {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "gemini-3-pro-preview:streamGenerateContent"), r.URL.Path)
		w.Header().Set("Content-Type", "text/event-stream")
		for _, ev := range events {
			fmt.Fprint(w, ev)
		}
	}))
	t.Cleanup(server.Close)
	return NewGeminiProvider(GeminiConfig{APIKey: "test-key", Model: "gemini-pro", BaseURL: server.URL})
}

func TestGeminiProvider_Stream(t *testing.T) {
	p := newGeminiStreamServer(t,
		geminiChunk("Main hoon aapka", ""),
		geminiChunk(" Quantum", ""),
		geminiChunk(" Rishi.", "STOP"),
	)

	var got []string
	for fragment, err := range p.Stream(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "Aap kaun ho?"}},
	}) {
		require.NoError(t, err)
		got = append(got, fragment)
	}
	assert.Equal(t, []string{"Main hoon aapka", " Quantum", " Rishi."}, got)
}

func TestGeminiProvider_StreamMaxTokens(t *testing.T) {
	p := newGeminiStreamServer(t,
		geminiChunk("Main hoon aapka", ""),
		geminiChunk(" Quantum", "MAX_TOKENS"),
	)

	var got []string
	var streamErr error
	for fragment, err := range p.Stream(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "Aap kaun ho?"}},
	}) {
		if err != nil {
			streamErr = err
			break
		}
		got = append(got, fragment)
	}
	assert.Equal(t, []string{"Main hoon aapka", " Quantum"}, got)
	var maxTok *ErrMaxTokensExceeded
	assert.ErrorAs(t, streamErr, &maxTok)
}

func TestGeminiProvider_StreamErrorMidway(t *testing.T) {
	p := newGeminiStreamServer(t,
		geminiChunk("Namaste", ""),
		`{"error":{"code":503,"message":"overloaded","status":"UNAVAILABLE"}}`+"\n\n",
		geminiChunk(" never", "STOP"),
	)

	var got []string
	var streamErr error
	for fragment, err := range p.Stream(context.Background(), Request{}) {
		if err != nil {
			streamErr = err
			break
		}
		got = append(got, fragment)
	}
	assert.Equal(t, []string{"Namaste"}, got)
	var unavail *ErrProviderUnavailable
	assert.ErrorAs(t, streamErr, &unavail)
}

func TestGeminiProvider_StreamStopsWhenConsumerBreaks(t *testing.T) {
	var events []string
	for i := range 5 {
		events = append(events, geminiChunk(fmt.Sprintf("f%d", i), ""))
	}
	p := newGeminiStreamServer(t, events...)

	var got []string
	for fragment, err := range p.Stream(context.Background(), Request{}) {
		require.NoError(t, err)
		got = append(got, fragment)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"f0", "f1"}, got)
}
