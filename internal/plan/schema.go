package plan

import "github.com/quantumrishi/rishi/internal/llm"

// Schema constrains the backend reply to the plan shape. Every field is
// required and objects are closed, which OpenAI strict mode insists on.
var Schema = &llm.Schema{
	Name:        "study-plan",
	Description: "A personalised exam study plan with modules and tips",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type": "string",
			},
			"overview": map[string]any{
				"type":        "string",
				"description": "Warm Hinglish intro addressing the student's context",
			},
			"modules": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":          map[string]any{"type": "string"},
						"title":       map[string]any{"type": "string"},
						"description": map[string]any{"type": "string"},
						"subtopics": map[string]any{
							"type":  "array",
							"items": map[string]any{"type": "string"},
						},
						"estimatedTime": map[string]any{"type": "string"},
						"priority": map[string]any{
							"type":        "string",
							"description": "High, Medium or Low",
						},
					},
					"required":             []any{"id", "title", "description", "subtopics", "estimatedTime", "priority"},
					"additionalProperties": false,
				},
			},
			"tips": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Academic and psychological tips",
			},
		},
		"required":             []any{"title", "overview", "modules", "tips"},
		"additionalProperties": false,
	},
}
