package store

import (
	"context"
	"time"
)

// QueryOpts configures trace queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	Before  int64     // sequence < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Purpose string    // exact purpose match when set
	Session string    // exact session match when set
}

// LLMRequestEventData captures the data for a single LLM request.
// Generated content is never stored; only the prompt and call metadata.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	SessionID    string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
}

// LLMRequestEventRecord is a stored LLM request as read back from the trace.
type LLMRequestEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// UsageSummary aggregates token usage for one purpose or model.
type UsageSummary struct {
	Key          string
	Requests     int
	Failures     int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to the LLM request trace.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns trace rows, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// GetLLMEvent returns a single row by ID, or ErrNotFound.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error)

	// LLMUsageByPurpose aggregates usage grouped by purpose label.
	LLMUsageByPurpose(ctx context.Context) ([]UsageSummary, error)

	// LLMUsageByModel aggregates usage grouped by model.
	LLMUsageByModel(ctx context.Context) ([]UsageSummary, error)

	// Prune deletes all but the keep most recent rows and reports how many
	// were removed.
	Prune(ctx context.Context, keep int) (int64, error)
}
