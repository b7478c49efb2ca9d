package store

import (
	"context"
	"time"

	"github.com/Mahwas/Cognito/internal/study"
)

// PersistedState is the single record Cognito keeps for its one user: the
// current plan with any cached module content, and the completion set.
type PersistedState struct {
	Plan             study.Plan `json:"plan"`
	CompletedModules []string   `json:"completedModules"`
	LastUpdated      int64      `json:"lastUpdated"` // unix ms
}

// StateRepo loads and saves the persisted state record.
type StateRepo interface {
	// Load returns the stored record, or nil with no error when nothing is
	// stored or the stored value cannot be decoded.
	Load(ctx context.Context) (*PersistedState, error)

	// Save overwrites the stored record.
	Save(ctx context.Context, st PersistedState) error

	// Clear removes the stored record.
	Clear(ctx context.Context) error
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int    // max results (0 = unlimited)
	Purpose string // exact match when set
	After   int64  // id > After
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	Grounded     bool
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsageStats aggregates LLM usage for one purpose.
type LLMUsageStats struct {
	Purpose      string
	Calls        int
	Failures     int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates LLM usage for one model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to the LLM request log.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// GetLLMEvent returns one event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error)

	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error)
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}
