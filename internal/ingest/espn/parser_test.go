package espn

import "testing"

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "Unknown"},
		{"Long-Term Injured Reserve", "LTIR"},
		{"LTIR", "LTIR"},
		{"Injured Reserve", "IR"},
		{"IR", "IR"},
		{"Day-To-Day", "Day-to-Day"},
		{"DTD", "Day-to-Day"},
		{"Out", "Out"},
		{"Questionable", "Questionable"},
		{"Probable", "Probable"},
		{"Suspension", "Suspended"},
		{"Week-to-Week", "Week-to-Week"},
	}
	for _, tt := range tests {
		if got := NormalizeStatus(tt.in); got != tt.want {
			t.Errorf("NormalizeStatus(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeStatusLTIRBeforeIR(t *testing.T) {
	// "long-term injured reserve" contains "injured reserve"; the
	// long-term check has to win
	if got := NormalizeStatus("long-term injured reserve"); got != "LTIR" {
		t.Errorf("got %q, want LTIR", got)
	}
}

func TestTeamAbbrev(t *testing.T) {
	tests := []struct {
		name string
		want string
		ok   bool
	}{
		{"Toronto Maple Leafs", "TOR", true},
		{"Montréal Canadiens", "MTL", true},
		{"Montreal Canadiens", "MTL", true},
		{"Utah Mammoth", "UTA", true},
		{"Utah Hockey Club", "UTA", true},
		{"Quebec Nordiques", "", false},
	}
	for _, tt := range tests {
		got, ok := TeamAbbrev(tt.name)
		if got != tt.want || ok != tt.ok {
			t.Errorf("TeamAbbrev(%q) = %q,%v want %q,%v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}
