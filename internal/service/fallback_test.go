package service

import (
	"testing"

	"github.com/amemlabs/amem/internal/domain"
)

func findEvent(events []domain.ExtractedEvent, content string) *domain.ExtractedEvent {
	for i := range events {
		if events[i].Content == content {
			return &events[i]
		}
	}
	return nil
}

func TestFallbackExtract_Name(t *testing.T) {
	result := fallbackExtract("My name is Marcus.")

	ev := findEvent(result.Events, "User's name is Marcus")
	if ev == nil {
		t.Fatalf("expected name fact, got %+v", result.Events)
	}
	if ev.Type != domain.EventTypeFact {
		t.Fatalf("expected fact type, got %s", ev.Type)
	}
	if ev.Confidence != 0.7 {
		t.Fatalf("expected confidence 0.7, got %f", ev.Confidence)
	}
}

func TestFallbackExtract_NameStopsAtProperNoun(t *testing.T) {
	result := fallbackExtract("My name is Marcus and I live in Portland.")

	if findEvent(result.Events, "User's name is Marcus") == nil {
		t.Fatalf("expected name capture to stop before 'and', got %+v", result.Events)
	}
	if findEvent(result.Events, "User lives in Portland") == nil {
		t.Fatalf("expected location fact from same sentence, got %+v", result.Events)
	}
}

func TestFallbackExtract_LowercaseName(t *testing.T) {
	result := fallbackExtract("my name is marcus and i work remotely")

	if findEvent(result.Events, "User's name is marcus") == nil {
		t.Fatalf("expected lowercase name captured and stopped before 'and', got %+v", result.Events)
	}
}

func TestFallbackExtract_LowercaseLocation(t *testing.T) {
	result := fallbackExtract("i live in portland")

	if findEvent(result.Events, "User lives in portland") == nil {
		t.Fatalf("expected lowercase location captured, got %+v", result.Events)
	}
}

func TestFallbackExtract_Decision(t *testing.T) {
	result := fallbackExtract("We decided to use PostgreSQL for the new service.")

	ev := findEvent(result.Events, "Decision: use PostgreSQL for the new service")
	if ev == nil {
		t.Fatalf("expected decision event, got %+v", result.Events)
	}
	if ev.Type != domain.EventTypeDecision {
		t.Fatalf("expected decision type, got %s", ev.Type)
	}
}

func TestFallbackExtract_Preference(t *testing.T) {
	result := fallbackExtract("I prefer dark mode")

	if findEvent(result.Events, "I prefer dark mode") == nil {
		t.Fatalf("expected preference kept as full statement, got %+v", result.Events)
	}
}

func TestFallbackExtract_Favourite(t *testing.T) {
	result := fallbackExtract("My favourite color is blue.")

	if findEvent(result.Events, "User's favourite color is blue") == nil {
		t.Fatalf("expected favourite fact, got %+v", result.Events)
	}
}

func TestFallbackExtract_Profession(t *testing.T) {
	result := fallbackExtract("I'm a backend engineer.")

	if findEvent(result.Events, "User is a backend engineer") == nil {
		t.Fatalf("expected profession fact, got %+v", result.Events)
	}
}

func TestFallbackExtract_Dedup(t *testing.T) {
	result := fallbackExtract("I live in Portland. I live in Portland.")

	count := 0
	for _, ev := range result.Events {
		if ev.Content == "User lives in Portland" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected duplicate facts collapsed to one, got %d", count)
	}
}

func TestFallbackExtract_DedupCaseInsensitive(t *testing.T) {
	result := fallbackExtract("My name is Marcus. my name is Marcus.")

	count := 0
	for _, ev := range result.Events {
		if ev.Content == "User's name is Marcus" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected case-insensitive dedup, got %d copies", count)
	}
}

func TestFallbackExtract_Correction(t *testing.T) {
	result := fallbackExtract("Actually I now live in Seattle.")

	if findEvent(result.Events, "Live in Seattle") == nil {
		t.Fatalf("expected capitalized correction content, got %+v", result.Events)
	}
}

func TestFallbackExtract_NoMatch(t *testing.T) {
	result := fallbackExtract("The weather was nice today.")

	if len(result.Events) != 0 {
		t.Fatalf("expected no events, got %+v", result.Events)
	}
}

func TestFallbackExtract_Empty(t *testing.T) {
	result := fallbackExtract("")

	if !result.Empty() {
		t.Fatalf("expected empty result, got %+v", result)
	}
}

func TestFallbackExtract_TrimsTrailingPunctuation(t *testing.T) {
	result := fallbackExtract("I work at Initech!")

	if findEvent(result.Events, "User works at Initech") == nil {
		t.Fatalf("expected workplace fact without punctuation, got %+v", result.Events)
	}
}
