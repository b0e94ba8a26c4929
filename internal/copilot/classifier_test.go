package copilot

import "testing"

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare json", `{"type":"leaders"}`, `{"type":"leaders"}`},
		{"plain fence", "```\n{\"type\":\"leaders\"}\n```", `{"type":"leaders"}`},
		{"json tag", "```json\n{\"type\":\"leaders\"}\n```", `{"type":"leaders"}`},
		{"surrounding whitespace", "  ```json\n{\"a\":1}\n```  ", `{"a":1}`},
	}
	for _, tt := range tests {
		if got := StripCodeFence(tt.in); got != tt.want {
			t.Errorf("%s: StripCodeFence = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestParseClassification(t *testing.T) {
	raw := "```json\n" +
		`{"type":"leaders","stats":["points"],"is_leaders_query":true,"top_n":5}` +
		"\n```"

	cls, ok := ParseClassification(raw)
	if !ok {
		t.Fatal("fenced classification should parse")
	}
	if cls.Type != IntentLeaders || !cls.IsLeadersQuery || cls.TopN != 5 {
		t.Errorf("parsed = %+v", cls)
	}
	if cls.Players == nil || cls.Teams == nil {
		t.Error("absent slices should default to empty, not nil")
	}
}

func TestParseClassificationDefaultsType(t *testing.T) {
	cls, ok := ParseClassification(`{"players":["Auston Matthews"]}`)
	if !ok {
		t.Fatal("valid JSON should parse")
	}
	if cls.Type != IntentUnknown {
		t.Errorf("missing type should default to unknown, got %q", cls.Type)
	}
}

func TestParseClassificationRejectsProse(t *testing.T) {
	if _, ok := ParseClassification("Sure! Here is the classification."); ok {
		t.Error("prose should not parse as a classification")
	}
}
