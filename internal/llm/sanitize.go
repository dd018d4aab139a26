package llm

import (
	"encoding/json"
	"strings"
)

// SanitizeJSON extracts a best-effort JSON document from raw LLM output.
// Models wrap their JSON in markdown fences, prose, byte-order marks and
// zero-width characters; this strips all of that and hands back something a
// JSON parser has a fighting chance with. Already-valid JSON is returned
// unchanged. Empty input maps to "{}". Never fails; if nothing parseable is
// found the stripped text is returned and the caller's parse reports the
// error.
func SanitizeJSON(raw string) string {
	text := stripInvisible(raw)
	text = strings.TrimSpace(text)
	if text == "" {
		return "{}"
	}

	text = stripFences(text)
	if json.Valid([]byte(text)) {
		return text
	}

	if span, ok := outermostSpan(text, '{', '}'); ok {
		return span
	}
	if span, ok := outermostSpan(text, '[', ']'); ok {
		return span
	}

	return text
}

func stripInvisible(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\ufeff', '\u200b', '\u200c', '\u200d':
			return -1
		}
		return r
	}, s)
}

func stripFences(s string) string {
	t := s
	if strings.HasPrefix(t, "```") {
		t = strings.TrimPrefix(t, "```json")
		t = strings.TrimPrefix(t, "```")
		t = strings.TrimSpace(t)
	}
	if strings.HasSuffix(t, "```") {
		t = strings.TrimSuffix(t, "```")
		t = strings.TrimSpace(t)
	}
	return t
}

// outermostSpan returns the substring from the first open delimiter to the
// last close delimiter, provided that span is valid JSON.
func outermostSpan(s string, open, close byte) (string, bool) {
	start := strings.IndexByte(s, open)
	end := strings.LastIndexByte(s, close)
	if start < 0 || end <= start {
		return "", false
	}
	span := s[start : end+1]
	if !json.Valid([]byte(span)) {
		return "", false
	}
	return span, true
}
