package domain

import "context"

type SortOrder string

const (
	SortRecent     SortOrder = "recent"
	SortConfidence SortOrder = "confidence"
)

// QueryOpts filters a store query. Zero values mean "no filter"; Limit
// defaults to a store-chosen bound when 0.
type QueryOpts struct {
	Types         []EventType
	Sessions      []int64
	MinConfidence float64
	Sort          SortOrder
	Limit         int
}

// Store is the persistent memory graph consumed by the formation pipeline
// and the context assembler. Records are append-only: there is no update or
// delete, corrections supersede rather than overwrite.
//
// The store performs no locking of its own; callers must serialize
// concurrent formation runs against the same store.
type Store interface {
	Append(ctx context.Context, eventType EventType, content string, sessionID int64, confidence float64) (int64, error)
	AppendCorrection(ctx context.Context, content string, sessionID int64, supersedes int64) (int64, error)
	AppendEdge(ctx context.Context, source, target int64, edgeType string, weight float64) error
	Query(ctx context.Context, opts QueryOpts) ([]Node, error)
}

// LLMClient is the chat-as-JSON capability consumed by the extractor. A
// returned error is treated as a hard failure and triggers the pattern
// fallback.
type LLMClient interface {
	ChatJSON(ctx context.Context, messages []Message) (map[string]any, error)
}

type EmbeddingClient interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
