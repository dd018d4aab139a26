package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/amemlabs/amem/internal/domain"
	"go.uber.org/zap"
)

const (
	// MaxContextChars caps the assembled context near 2000 tokens.
	MaxContextChars = 8000

	contextHeader = "# Memory Context\n" +
		"The following is what I remember from our previous conversations.\n"

	truncationMarker = "\n\n*(memory context truncated)*\n"

	coreFactMinConfidence = 0.8
	coreFactLimit         = 10
	recentContextLimit    = 20
	decisionLimit         = 5
	correctionLimit       = 5
)

// ContextService assembles a layered, budgeted memory context block for
// prompt injection. An empty return value means "no relevant memories" and
// is indistinguishable from a failed build; callers always treat context as
// optional.
type ContextService struct {
	store  domain.Store
	logger *zap.Logger
}

func NewContextService(store domain.Store, logger *zap.Logger) *ContextService {
	return &ContextService{store: store, logger: logger}
}

// Build renders the memory context for a session with the default budget.
// It never fails; any store error yields "".
func (s *ContextService) Build(ctx context.Context, sessionID int64) string {
	return s.BuildWithBudget(ctx, sessionID, MaxContextChars)
}

// BuildWithBudget is Build with an explicit character budget.
func (s *ContextService) BuildWithBudget(ctx context.Context, sessionID int64, maxChars int) (out string) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn("memory context build panicked", zap.Any("panic", r))
			out = ""
		}
	}()

	type layer struct {
		heading string
		opts    domain.QueryOpts
	}

	layers := []layer{
		{"What I Know About You", domain.QueryOpts{
			Types:         []domain.EventType{domain.EventTypeFact},
			MinConfidence: coreFactMinConfidence,
			Sort:          domain.SortConfidence,
			Limit:         coreFactLimit,
		}},
		{"Recent Context", domain.QueryOpts{
			Sessions: adjacentSessionIDs(sessionID),
			Sort:     domain.SortRecent,
			Limit:    recentContextLimit,
		}},
		{"Recent Decisions I've Made", domain.QueryOpts{
			Types: []domain.EventType{domain.EventTypeDecision},
			Sort:  domain.SortRecent,
			Limit: decisionLimit,
		}},
		{"Corrections (Updated Information)", domain.QueryOpts{
			Types: []domain.EventType{domain.EventTypeCorrection},
			Sort:  domain.SortRecent,
			Limit: correctionLimit,
		}},
	}

	var sections []string
	for _, l := range layers {
		nodes, err := s.store.Query(ctx, l.opts)
		if err != nil {
			s.logger.Warn("memory context query failed",
				zap.String("layer", l.heading), zap.Error(err))
			return ""
		}
		if section := formatMemorySection(l.heading, nodes); section != "" {
			sections = append(sections, section)
		}
	}

	if len(sections) == 0 {
		return ""
	}

	text := contextHeader + "\n" + strings.Join(sections, "\n")
	return truncateAtLine(text, maxChars)
}

// formatMemorySection renders nodes as a markdown section, or "" when
// there is nothing to show.
func formatMemorySection(heading string, nodes []domain.Node) string {
	if len(nodes) == 0 {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s\n", heading)
	for _, n := range nodes {
		prefix := ""
		if n.Type != "" {
			prefix = fmt.Sprintf("[%s] ", strings.ToUpper(string(n.Type)))
		}
		fmt.Fprintf(&sb, "\n- %s%s *(confidence: %d%%)*", prefix, n.Content, pct(n.Confidence))
	}
	sb.WriteByte('\n')
	return sb.String()
}

// adjacentSessionIDs returns the current and two preceding session ids,
// clamped at zero with duplicates removed, most recent first.
func adjacentSessionIDs(sessionID int64) []int64 {
	seen := make(map[int64]struct{}, 3)
	var ids []int64
	for i := int64(0); i < 3; i++ {
		sid := sessionID - i
		if sid < 0 {
			sid = 0
		}
		if _, dup := seen[sid]; dup {
			continue
		}
		seen[sid] = struct{}{}
		ids = append(ids, sid)
	}
	return ids
}

// truncateAtLine cuts text at the last full line within maxChars and
// appends the truncation marker.
func truncateAtLine(text string, maxChars int) string {
	if len(text) <= maxChars {
		return text
	}
	cut := text[:maxChars]
	if i := strings.LastIndexByte(cut, '\n'); i >= 0 {
		cut = cut[:i]
	}
	return cut + truncationMarker
}
