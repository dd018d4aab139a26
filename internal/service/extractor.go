package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/amemlabs/amem/internal/domain"
	"github.com/amemlabs/amem/internal/llm"
	"go.uber.org/zap"
)

const (
	defaultEventConfidence      = 0.8
	defaultCorrectionConfidence = 0.9
	defaultEdgeType             = "supports"
	defaultEdgeWeight           = 0.5

	noExistingMemoriesMarker = "(no existing memories)"
)

// ExtractorService turns one conversation turn into structured cognitive
// events via a single chat-as-JSON call, falling back to the pattern table
// when that call fails or comes back empty.
type ExtractorService struct {
	llm    domain.LLMClient
	logger *zap.Logger
}

func NewExtractorService(lc domain.LLMClient, logger *zap.Logger) *ExtractorService {
	return &ExtractorService{llm: lc, logger: logger}
}

// FormatExistingMemories renders nodes as a numbered grounding summary for
// the extraction prompt:
//
//	1. [ID:42] FACT: User prefers dark mode (confidence: 95%)
//
// Returns a fixed marker when nodes is empty.
func FormatExistingMemories(nodes []domain.Node) string {
	if len(nodes) == 0 {
		return noExistingMemoriesMarker
	}

	var sb strings.Builder
	for i, n := range nodes {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%d. [ID:%d] %s: %s (confidence: %d%%)",
			i+1, n.ID, strings.ToUpper(string(n.Type)), n.Content, pct(n.Confidence))
	}
	return sb.String()
}

func pct(confidence float64) int {
	return int(math.Round(confidence * 100))
}

// Extract runs the structured extraction for one conversation turn. It
// never returns an error: LLM failures and unparseable output degrade to
// the pattern fallback over the user message, and an empty structured
// response is treated as a signal to try the fallback rather than a
// definitive "nothing to remember".
func (s *ExtractorService) Extract(ctx context.Context, userMessage, assistantResponse string, existing []domain.Node) domain.ExtractionResult {
	if userMessage == "" && assistantResponse == "" {
		return domain.ExtractionResult{}
	}

	if s.llm == nil {
		return fallbackExtract(userMessage)
	}

	messages := []domain.Message{
		{Role: "system", Content: llm.ExtractionSystemPrompt()},
		{Role: "user", Content: fmt.Sprintf(llm.ExtractionUserTemplate(),
			userMessage, assistantResponse, FormatExistingMemories(existing))},
	}

	raw, err := s.llm.ChatJSON(ctx, messages)
	if err != nil || raw == nil {
		s.logger.Warn("structured extraction failed, using pattern fallback", zap.Error(err))
		return fallbackExtract(userMessage)
	}

	result := parseExtraction(raw)

	if result.Empty() {
		if fallback := fallbackExtract(userMessage); len(fallback.Events) > 0 {
			s.logger.Info("structured extraction empty, pattern fallback found events",
				zap.Int("events", len(fallback.Events)))
			return fallback
		}
	}

	return result
}

// parseExtraction decodes the LLM's JSON object defensively. Malformed
// entries are dropped one at a time; their siblings survive.
func parseExtraction(raw map[string]any) domain.ExtractionResult {
	result := domain.ExtractionResult{
		SessionSummary: asString(raw["session_summary"]),
	}

	for _, item := range asSlice(raw["events"]) {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}

		content := asString(entry["content"])
		if content == "" {
			continue
		}

		eventType := strings.ToLower(asString(entry["event_type"]))
		if eventType == "" {
			eventType = string(domain.EventTypeFact)
		}

		var rels []domain.Relationship
		for _, r := range asSlice(entry["relationships"]) {
			rm, ok := r.(map[string]any)
			if !ok {
				continue
			}
			target := asString(rm["target_description"])
			if target == "" {
				continue
			}
			edgeType := asString(rm["edge_type"])
			if edgeType == "" {
				edgeType = defaultEdgeType
			}
			rels = append(rels, domain.Relationship{
				TargetDescription: target,
				EdgeType:          edgeType,
				Weight:            asFloat(rm["weight"], defaultEdgeWeight),
			})
		}

		result.Events = append(result.Events, domain.ExtractedEvent{
			Type:          domain.EventType(eventType),
			Content:       content,
			Confidence:    clamp01(asFloat(entry["confidence"], defaultEventConfidence)),
			Relationships: rels,
		})
	}

	for _, item := range asSlice(raw["corrections"]) {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}

		oldDesc := asString(entry["old_description"])
		newContent := asString(entry["new_content"])
		if oldDesc == "" || newContent == "" {
			continue
		}

		result.Corrections = append(result.Corrections, domain.ExtractedCorrection{
			OldDescription: oldDesc,
			NewContent:     newContent,
			Confidence:     clamp01(asFloat(entry["confidence"], defaultCorrectionConfidence)),
		})
	}

	return result
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

func asFloat(v any, def float64) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return def
	}
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
