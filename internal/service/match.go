package service

import (
	"strings"

	"github.com/amemlabs/amem/internal/domain"
)

// stopWords filters noise tokens before keyword comparison: articles,
// pronouns, auxiliary verbs, prepositions, question words.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "is": {}, "are": {}, "was": {}, "were": {},
	"be": {}, "been": {}, "being": {}, "have": {}, "has": {}, "had": {},
	"do": {}, "does": {}, "did": {}, "will": {}, "would": {}, "shall": {},
	"should": {}, "may": {}, "might": {}, "must": {}, "can": {}, "could": {},
	"to": {}, "of": {}, "in": {}, "for": {}, "on": {}, "with": {}, "at": {},
	"by": {}, "from": {}, "as": {}, "into": {}, "through": {}, "during": {},
	"before": {}, "after": {}, "about": {}, "between": {}, "and": {},
	"but": {}, "or": {}, "not": {}, "no": {}, "nor": {}, "so": {}, "yet": {},
	"both": {}, "either": {}, "neither": {}, "each": {}, "every": {},
	"all": {}, "any": {}, "few": {}, "more": {}, "most": {}, "other": {},
	"some": {}, "such": {}, "than": {}, "too": {}, "very": {}, "just": {},
	"that": {}, "this": {}, "these": {}, "those": {}, "it": {}, "its": {},
	"i": {}, "me": {}, "my": {}, "we": {}, "us": {}, "our": {}, "you": {},
	"your": {}, "he": {}, "him": {}, "his": {}, "she": {}, "her": {},
	"they": {}, "them": {}, "their": {}, "what": {}, "which": {}, "who": {},
	"whom": {}, "how": {}, "when": {}, "where": {}, "why": {},
}

// keywords tokenizes text by whitespace, lowercases, and drops stop words
// and single-character tokens.
func keywords(text string) map[string]struct{} {
	kw := make(map[string]struct{})
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		if len(tok) <= 1 {
			continue
		}
		if _, stop := stopWords[tok]; stop {
			continue
		}
		kw[tok] = struct{}{}
	}
	return kw
}

// FindBestMatch picks the candidate whose content has the highest Jaccard
// keyword overlap with description. A candidate only replaces the current
// best on a strictly greater score, so ties keep the earliest-seen
// candidate and caller ordering (typically recency) acts as the tie-break.
//
// Returns nil when description or candidates are empty, when description
// yields no keywords, or when no candidate shares a keyword.
func FindBestMatch(description string, candidates []domain.Node) *domain.Node {
	if description == "" || len(candidates) == 0 {
		return nil
	}

	descKW := keywords(description)
	if len(descKW) == 0 {
		return nil
	}

	var best *domain.Node
	bestScore := 0.0

	for i := range candidates {
		candKW := keywords(candidates[i].Content)
		if len(candKW) == 0 {
			continue
		}

		overlap := 0
		for w := range descKW {
			if _, ok := candKW[w]; ok {
				overlap++
			}
		}
		union := len(descKW) + len(candKW) - overlap
		score := float64(overlap) / float64(union)

		if score > bestScore {
			bestScore = score
			best = &candidates[i]
		}
	}

	return best
}
