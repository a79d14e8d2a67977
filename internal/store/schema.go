package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table and column names shared by the repositories and the persistence
// gateway allowlist.
const (
	CalculationsTableName = "calculations"
	LLMEventsTableName    = "llm_request_events"

	ColumnID        = "id"
	ColumnQuestion  = "question"
	ColumnAnswer    = "answer"
	ColumnCreatedAt = "created_at"
)

// textSize makes ent map string columns to unbounded TEXT.
const textSize = 2147483647

var (
	// calculationsColumns holds the columns for the "calculations" table.
	// created_at is an ISO-8601 string written by the client, not a
	// database timestamp.
	calculationsColumns = []*schema.Column{
		{Name: ColumnID, Type: field.TypeInt, Increment: true},
		{Name: ColumnQuestion, Type: field.TypeString, Size: textSize},
		{Name: ColumnAnswer, Type: field.TypeString, Size: textSize},
		{Name: ColumnCreatedAt, Type: field.TypeString},
	}
	// CalculationsTable holds the schema information for the "calculations" table.
	CalculationsTable = &schema.Table{
		Name:       CalculationsTableName,
		Columns:    calculationsColumns,
		PrimaryKey: []*schema.Column{calculationsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "calculation_created_at", Columns: []*schema.Column{calculationsColumns[3]}},
		},
	}

	// llmRequestEventsColumns holds the columns for the "llm_request_events" table.
	llmRequestEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64},
		{Name: "success", Type: field.TypeBool},
		{Name: "streamed", Type: field.TypeBool, Default: false},
		{Name: "error_message", Type: field.TypeString, Size: textSize, Default: ""},
		{Name: "request_body", Type: field.TypeString, Size: textSize, Default: ""},
		{Name: "response_body", Type: field.TypeString, Size: textSize, Default: ""},
	}
	// LLMRequestEventsTable holds the schema information for the "llm_request_events" table.
	LLMRequestEventsTable = &schema.Table{
		Name:       LLMEventsTableName,
		Columns:    llmRequestEventsColumns,
		PrimaryKey: []*schema.Column{llmRequestEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequestevent_purpose", Columns: []*schema.Column{llmRequestEventsColumns[4]}},
			{Name: "llmrequestevent_timestamp", Columns: []*schema.Column{llmRequestEventsColumns[1]}},
		},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		CalculationsTable,
		LLMRequestEventsTable,
	}
)
