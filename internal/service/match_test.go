package service

import (
	"testing"

	"github.com/amemlabs/amem/internal/domain"
)

func TestFindBestMatch_PicksHighestOverlap(t *testing.T) {
	candidates := []domain.Node{
		{ID: 1, Content: "User prefers dark mode"},
		{ID: 2, Content: "User lives in Portland"},
		{ID: 3, Content: "User works as a backend engineer"},
	}

	match := FindBestMatch("preference for dark mode", candidates)
	if match == nil {
		t.Fatal("expected a match, got nil")
	}
	if match.ID != 1 {
		t.Fatalf("expected node 1, got %d", match.ID)
	}
}

func TestFindBestMatch_EmptyDescription(t *testing.T) {
	candidates := []domain.Node{{ID: 1, Content: "User prefers dark mode"}}
	if match := FindBestMatch("", candidates); match != nil {
		t.Fatalf("expected nil, got node %d", match.ID)
	}
}

func TestFindBestMatch_NoCandidates(t *testing.T) {
	if match := FindBestMatch("dark mode", nil); match != nil {
		t.Fatalf("expected nil, got node %d", match.ID)
	}
}

func TestFindBestMatch_OnlyStopWords(t *testing.T) {
	candidates := []domain.Node{{ID: 1, Content: "User prefers dark mode"}}
	if match := FindBestMatch("the and of it", candidates); match != nil {
		t.Fatalf("expected nil for stop-word-only description, got node %d", match.ID)
	}
}

func TestFindBestMatch_NoSharedKeywords(t *testing.T) {
	candidates := []domain.Node{
		{ID: 1, Content: "User prefers dark mode"},
		{ID: 2, Content: "User lives in Portland"},
	}
	if match := FindBestMatch("quantum entanglement research", candidates); match != nil {
		t.Fatalf("expected nil when nothing overlaps, got node %d", match.ID)
	}
}

func TestFindBestMatch_TieKeepsEarliest(t *testing.T) {
	// Identical content scores identically; the first candidate should win
	// so callers can rank by recency.
	candidates := []domain.Node{
		{ID: 10, Content: "User likes coffee"},
		{ID: 20, Content: "User likes coffee"},
	}

	match := FindBestMatch("likes coffee", candidates)
	if match == nil {
		t.Fatal("expected a match, got nil")
	}
	if match.ID != 10 {
		t.Fatalf("expected earliest candidate 10 on a tie, got %d", match.ID)
	}
}

func TestFindBestMatch_CaseInsensitive(t *testing.T) {
	candidates := []domain.Node{{ID: 1, Content: "User Prefers DARK Mode"}}

	match := FindBestMatch("dark mode preference", candidates)
	if match == nil {
		t.Fatal("expected case-insensitive match, got nil")
	}
}

func TestKeywords_DropsStopWordsAndShortTokens(t *testing.T) {
	kw := keywords("I am a backend engineer in Portland")

	for _, want := range []string{"backend", "engineer", "portland"} {
		if _, ok := kw[want]; !ok {
			t.Errorf("expected keyword %q", want)
		}
	}
	for _, reject := range []string{"i", "a", "in"} {
		if _, ok := kw[reject]; ok {
			t.Errorf("expected %q to be filtered", reject)
		}
	}
}
