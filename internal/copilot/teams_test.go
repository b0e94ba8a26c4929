package copilot

import "testing"

func TestResolveTeam(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"TOR", "TOR", true},
		{"mtl", "MTL", true},
		{"leafs", "TOR", true},
		{"Habs", "MTL", true},
		{"caps", "WSH", true},
		{"Utah Mammoth", "UTA", true},
		{"the toronto maple leafs game", "TOR", true},
		{"new york rangers", "NYR", true},
		{"", "", false},
		{"some soccer club", "", false},
	}
	for _, tt := range tests {
		got, ok := ResolveTeam(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ResolveTeam(%q) = %q,%v want %q,%v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestResolveTeamPrefersLongestAlias(t *testing.T) {
	// "new york islanders" contains no shorter conflicting alias, but a
	// sentence mentioning both city and nickname must land on the full name
	got, ok := ResolveTeam("how are the new york islanders doing")
	if !ok || got != "NYI" {
		t.Errorf("got %q,%v want NYI", got, ok)
	}
}
