package llm

import (
	"encoding/json"
	"testing"
)

func TestSanitizeJSON_ValidUnchanged(t *testing.T) {
	cases := []string{
		`{"a":1}`,
		`{"events":[],"corrections":[]}`,
		`[1,2,3]`,
		`{"nested":{"deep":{"a":[1,{"b":2}]}}}`,
	}
	for _, raw := range cases {
		if got := SanitizeJSON(raw); got != raw {
			t.Errorf("SanitizeJSON(%q) = %q, want unchanged", raw, got)
		}
	}
}

func TestSanitizeJSON_MarkdownFences(t *testing.T) {
	raw := "```json\n{\"a\":1}\n```"
	if got := SanitizeJSON(raw); got != `{"a":1}` {
		t.Errorf("got %q", got)
	}
}

func TestSanitizeJSON_BareFences(t *testing.T) {
	raw := "```\n{\"a\":1}\n```"
	if got := SanitizeJSON(raw); got != `{"a":1}` {
		t.Errorf("got %q", got)
	}
}

func TestSanitizeJSON_LeadingProse(t *testing.T) {
	raw := "Sure, here is the JSON you asked for:\n{\"a\": 1, \"b\": [2, 3]}\nHope that helps!"
	got := SanitizeJSON(raw)
	var out map[string]any
	if err := json.Unmarshal([]byte(got), &out); err != nil {
		t.Fatalf("result not parseable: %v (got %q)", err, got)
	}
	if out["a"] != float64(1) {
		t.Errorf("unexpected object: %v", out)
	}
}

func TestSanitizeJSON_FencesWithinProse(t *testing.T) {
	raw := "Here you go:\n```json\n{\"ok\": true}\n```\nLet me know if you need anything else."
	got := SanitizeJSON(raw)
	var out map[string]any
	if err := json.Unmarshal([]byte(got), &out); err != nil {
		t.Fatalf("result not parseable: %v (got %q)", err, got)
	}
	if out["ok"] != true {
		t.Errorf("unexpected object: %v", out)
	}
}

func TestSanitizeJSON_BOMAndZeroWidth(t *testing.T) {
	raw := "\ufeff{\"a\":\u200b1}"
	if got := SanitizeJSON(raw); got != `{"a":1}` {
		t.Errorf("got %q", got)
	}
}

func TestSanitizeJSON_Array(t *testing.T) {
	raw := "The result is: [1, 2, 3] as requested."
	got := SanitizeJSON(raw)
	var out []any
	if err := json.Unmarshal([]byte(got), &out); err != nil {
		t.Fatalf("result not parseable: %v (got %q)", err, got)
	}
	if len(out) != 3 {
		t.Errorf("unexpected array: %v", out)
	}
}

func TestSanitizeJSON_NestedBraces(t *testing.T) {
	raw := "prefix {\"outer\": {\"inner\": {\"x\": 1}}} suffix"
	got := SanitizeJSON(raw)
	if !json.Valid([]byte(got)) {
		t.Fatalf("result not valid JSON: %q", got)
	}
	if got != `{"outer": {"inner": {"x": 1}}}` {
		t.Errorf("got %q", got)
	}
}

func TestSanitizeJSON_Empty(t *testing.T) {
	if got := SanitizeJSON(""); got != "{}" {
		t.Errorf("got %q, want {}", got)
	}
	if got := SanitizeJSON("   \n\t  "); got != "{}" {
		t.Errorf("got %q, want {}", got)
	}
}

func TestSanitizeJSON_Unrecoverable(t *testing.T) {
	raw := "no json here at all"
	if got := SanitizeJSON(raw); got != raw {
		t.Errorf("got %q, want stripped text back", got)
	}
}
