package service

import (
	"context"

	"github.com/amemlabs/amem/internal/domain"
	"go.uber.org/zap"
)

// groundingLimit bounds the recent-fact set used to resolve relationship
// and correction targets within one formation run.
const groundingLimit = 50

// FormationService is the top-level memory formation pipeline: it turns one
// conversation turn into store writes. Memory formation must never crash
// the surrounding conversation loop, so every stage is fault-isolated and
// the whole pipeline sits behind a recover boundary.
type FormationService struct {
	store     domain.Store
	extractor *ExtractorService
	logger    *zap.Logger
}

func NewFormationService(store domain.Store, extractor *ExtractorService, logger *zap.Logger) *FormationService {
	return &FormationService{store: store, extractor: extractor, logger: logger}
}

// FormMemory runs extraction and storage for one turn. Events are written
// first, then relationships are resolved against the original grounding
// set, then corrections are processed. One bad item never aborts the batch.
func (s *FormationService) FormMemory(ctx context.Context, userMessage, assistantResponse string, sessionID int64) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn("memory formation panicked", zap.Any("panic", r))
		}
	}()

	// 1. Grounding set for relationship and correction resolution.
	grounding, err := s.store.Query(ctx, domain.QueryOpts{
		Types: []domain.EventType{domain.EventTypeFact},
		Sort:  domain.SortRecent,
		Limit: groundingLimit,
	})
	if err != nil {
		s.logger.Debug("could not fetch grounding memories", zap.Error(err))
		grounding = nil
	}

	// 2. Extraction.
	result := s.extractor.Extract(ctx, userMessage, assistantResponse, grounding)
	if result.Empty() {
		s.logger.Debug("no events or corrections extracted")
		return
	}
	if result.SessionSummary != "" {
		s.logger.Debug("session summary", zap.String("summary", result.SessionSummary))
	}

	// 3. Write events.
	type written struct {
		id   int64
		rels []domain.Relationship
	}
	var stored []written

	for _, ev := range result.Events {
		if !domain.WritableEventType(ev.Type) {
			s.logger.Debug("skipping event with unknown type", zap.String("event_type", string(ev.Type)))
			continue
		}
		id, err := s.store.Append(ctx, ev.Type, ev.Content, sessionID, ev.Confidence)
		if err != nil {
			s.logger.Warn("failed to store event",
				zap.String("event_type", string(ev.Type)),
				zap.String("content", ev.Content),
				zap.Error(err))
			continue
		}
		stored = append(stored, written{id: id, rels: ev.Relationships})
	}

	// 4. Resolve relationships against the original grounding set only;
	// newly written siblings are not candidates.
	for _, w := range stored {
		for _, rel := range w.rels {
			matched := FindBestMatch(rel.TargetDescription, grounding)
			if matched == nil {
				s.logger.Debug("no match for relationship target",
					zap.String("target", rel.TargetDescription))
				continue
			}
			if err := s.store.AppendEdge(ctx, w.id, matched.ID, rel.EdgeType, rel.Weight); err != nil {
				s.logger.Debug("failed to link relationship",
					zap.Int64("source", w.id),
					zap.Int64("target", matched.ID),
					zap.Error(err))
			}
		}
	}

	// 5. Corrections. A correction with no resolvable target degrades to a
	// plain fact; the new information is still worth keeping.
	for _, c := range result.Corrections {
		matched := FindBestMatch(c.OldDescription, grounding)
		if matched == nil {
			if _, err := s.store.Append(ctx, domain.EventTypeFact, c.NewContent, sessionID, c.Confidence); err != nil {
				s.logger.Warn("failed to store degraded correction",
					zap.String("content", c.NewContent), zap.Error(err))
			} else {
				s.logger.Debug("no match for correction, stored as new fact",
					zap.String("old_description", c.OldDescription))
			}
			continue
		}
		if _, err := s.store.AppendCorrection(ctx, c.NewContent, sessionID, matched.ID); err != nil {
			s.logger.Warn("failed to store correction",
				zap.String("content", c.NewContent),
				zap.Int64("supersedes", matched.ID),
				zap.Error(err))
		}
	}
}
