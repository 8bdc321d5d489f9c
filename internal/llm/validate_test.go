package llm

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema() *Schema {
	return &Schema{
		Name:        "test-module",
		Description: "A test object",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"title":    map[string]any{"type": "string"},
				"hours":    map[string]any{"type": "integer", "minimum": 1},
				"priority": map[string]any{"type": "string", "enum": []any{"High", "Medium", "Low"}},
			},
			"required": []any{"title", "hours"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"title":"Kinematics","hours":4,"priority":"High"}`, false},
		{"optional omitted", `{"title":"Optics","hours":2}`, false},
		{"missing required", `{"title":"Optics"}`, true},
		{"wrong type", `{"title":"Optics","hours":"two"}`, true},
		{"invalid enum", `{"title":"Optics","hours":2,"priority":"Urgent"}`, true},
		{"below minimum", `{"title":"Optics","hours":0}`, true},
		{"malformed", `{"title":`, true},
		{"empty", ``, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := validateResponse(testSchema(), json.RawMessage(tt.raw))
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			var invErr *ErrInvalidResponse
			require.True(t, errors.As(err, &invErr), "expected ErrInvalidResponse, got %T", err)
			assert.Equal(t, tt.raw, string(invErr.Content))
		})
	}
}

func TestValidateResponse_NilSchemaPassesThrough(t *testing.T) {
	raw := json.RawMessage("not json at all")
	got, err := validateResponse(nil, raw)
	require.NoError(t, err)
	assert.Equal(t, raw, got)
}

func TestValidateResponse_StripsCodeFence(t *testing.T) {
	raw := json.RawMessage("```json\n{\"title\":\"Optics\",\"hours\":2}\n```\n")
	got, err := validateResponse(testSchema(), raw)
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Optics","hours":2}`, string(got))
}

func TestValidateResponse_NestedObjects(t *testing.T) {
	schema := &Schema{
		Name: "test-nested",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"modules": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type":       "object",
						"properties": map[string]any{"id": map[string]any{"type": "string"}},
						"required":   []any{"id"},
					},
				},
			},
			"required": []any{"modules"},
		},
	}

	_, err := validateResponse(schema, json.RawMessage(`{"modules":[{"id":"m1"},{"id":"m2"}]}`))
	require.NoError(t, err)

	_, err = validateResponse(schema, json.RawMessage(`{"modules":[{"name":"m1"}]}`))
	assert.Error(t, err)
}
