package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const llmEventsTable = "llm_request_events"

// Column names of llm_request_events.
const (
	colID           = "id"
	colSequence     = "sequence"
	colTimestamp    = "timestamp"
	colProvider     = "provider"
	colModel        = "model"
	colPurpose      = "purpose"
	colInputTokens  = "input_tokens"
	colOutputTokens = "output_tokens"
	colLatencyMs    = "latency_ms"
	colSuccess      = "success"
	colErrorMessage = "error_message"
	colStreamed     = "streamed"
	colFragments    = "fragments"
	colRequestBody  = "request_body"
	colResponseBody = "response_body"
)

var (
	llmEventsColumns = []*schema.Column{
		{Name: colID, Type: field.TypeInt, Increment: true},
		{Name: colSequence, Type: field.TypeInt64, Unique: true},
		// Unix milliseconds, UTC.
		{Name: colTimestamp, Type: field.TypeInt64},
		{Name: colProvider, Type: field.TypeString},
		{Name: colModel, Type: field.TypeString},
		{Name: colPurpose, Type: field.TypeString},
		{Name: colInputTokens, Type: field.TypeInt, Default: 0},
		{Name: colOutputTokens, Type: field.TypeInt, Default: 0},
		{Name: colLatencyMs, Type: field.TypeInt64, Default: 0},
		{Name: colSuccess, Type: field.TypeBool},
		{Name: colErrorMessage, Type: field.TypeString, Default: ""},
		{Name: colStreamed, Type: field.TypeBool, Default: false},
		{Name: colFragments, Type: field.TypeInt, Default: 0},
		{Name: colRequestBody, Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: colResponseBody, Type: field.TypeString, Size: 2147483647, Default: ""},
	}

	llmEventsTableDef = &schema.Table{
		Name:       llmEventsTable,
		Columns:    llmEventsColumns,
		PrimaryKey: []*schema.Column{llmEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequestevent_purpose", Columns: []*schema.Column{llmEventsColumns[5]}},
			{Name: "llmrequestevent_model", Columns: []*schema.Column{llmEventsColumns[4]}},
			{Name: "llmrequestevent_timestamp", Columns: []*schema.Column{llmEventsColumns[2]}},
		},
	}

	tables = []*schema.Table{llmEventsTableDef}
)
