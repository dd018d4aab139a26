package domain

import "time"

type EventType string

const (
	EventTypeFact       EventType = "fact"
	EventTypeDecision   EventType = "decision"
	EventTypeInference  EventType = "inference"
	EventTypeSkill      EventType = "skill"
	EventTypeCorrection EventType = "correction"
)

func ValidEventType(t string) bool {
	switch EventType(t) {
	case EventTypeFact, EventTypeDecision, EventTypeInference, EventTypeSkill, EventTypeCorrection:
		return true
	}
	return false
}

// WritableEventType reports whether events of this type can be appended
// directly to the store. Corrections go through AppendCorrection instead.
func WritableEventType(t EventType) bool {
	switch t {
	case EventTypeFact, EventTypeDecision, EventTypeInference, EventTypeSkill:
		return true
	}
	return false
}

// EdgeTypeSupersedes marks that one record replaces another. Other edge
// types (supports, contradicts, extends, requires) come straight from the
// extraction schema and are stored as-is.
const EdgeTypeSupersedes = "supersedes"

// Node is a read view of a stored memory record. Nodes are immutable once
// written; a correction creates a new node rather than editing an old one.
type Node struct {
	ID         int64     `json:"id"`
	Type       EventType `json:"event_type"`
	Content    string    `json:"content"`
	SessionID  int64     `json:"session_id"`
	Confidence float64   `json:"confidence"`
	Supersedes *int64    `json:"supersedes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Relationship links a newly extracted event to an existing memory,
// referenced by free-text description rather than by id.
type Relationship struct {
	TargetDescription string  `json:"target_description"`
	EdgeType          string  `json:"edge_type"`
	Weight            float64 `json:"weight"`
}

// ExtractedEvent is a single cognitive event extracted from a conversation
// turn. It only exists in flight; the formation pipeline maps it to a store
// write.
type ExtractedEvent struct {
	Type          EventType      `json:"event_type"`
	Content       string         `json:"content"`
	Confidence    float64        `json:"confidence"`
	Relationships []Relationship `json:"relationships,omitempty"`
}

// ExtractedCorrection asserts that an earlier memory is outdated and should
// be superseded by new content.
type ExtractedCorrection struct {
	OldDescription string  `json:"old_description"`
	NewContent     string  `json:"new_content"`
	Confidence     float64 `json:"confidence"`
}

// ExtractionResult is the aggregated output of one extraction pass over a
// conversation turn. It is never mutated after construction.
type ExtractionResult struct {
	Events         []ExtractedEvent      `json:"events"`
	Corrections    []ExtractedCorrection `json:"corrections"`
	SessionSummary string                `json:"session_summary"`
}

// Empty reports whether the result carries nothing worth storing.
func (r ExtractionResult) Empty() bool {
	return len(r.Events) == 0 && len(r.Corrections) == 0
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
