package copilot

import (
	"testing"
)

func sectionsEqual(a, b []section) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestContextSections(t *testing.T) {
	tests := []struct {
		name string
		cls  *Classification
		want []section
	}{
		{
			name: "team question with a named player keeps both",
			cls:  &Classification{Type: IntentTeamBreakdown, Teams: []string{"TOR"}, Players: []string{"Auston Matthews"}},
			want: []section{sectionTeams, sectionPlayers, sectionDocuments},
		},
		{
			name: "prediction with a named player keeps both",
			cls:  &Classification{Type: IntentPrediction, IsPredictionQuery: true, Teams: []string{"TOR"}, Players: []string{"Auston Matthews"}},
			want: []section{sectionPrediction, sectionPlayers, sectionDocuments},
		},
		{
			name: "trade question appends player rows",
			cls:  &Classification{Type: IntentTradeSuggestion, IsTradeQuery: true, Players: []string{"Mitch Marner"}},
			want: []section{sectionTrade, sectionPlayers, sectionDocuments},
		},
		{
			name: "leaders only",
			cls:  &Classification{Type: IntentLeaders, IsLeadersQuery: true},
			want: []section{sectionLeaders, sectionDocuments},
		},
		{
			name: "all-teams beats team list",
			cls:  &Classification{IsAllTeamsQuery: true, Teams: []string{"TOR", "MTL"}},
			want: []section{sectionAllTeams, sectionDocuments},
		},
		{
			name: "nothing classified still searches documents",
			cls:  &Classification{Type: IntentUnknown},
			want: []section{sectionDocuments},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := contextSections(tt.cls); !sectionsEqual(got, tt.want) {
				t.Errorf("contextSections = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTradeBand(t *testing.T) {
	low, high := tradeBand(80)
	if low != 64 || high != 96 {
		t.Errorf("tradeBand(80) = (%v, %v), want (64, 96)", low, high)
	}
	// a two-player package widens the band around the combined score
	low, high = tradeBand(50 + 30)
	if low != 64 || high != 96 {
		t.Errorf("tradeBand(50+30) = (%v, %v), want (64, 96)", low, high)
	}
}

func TestLeadersHeader(t *testing.T) {
	tests := []struct {
		limit  int
		stat   string
		season string
		want   string
	}{
		{10, "xg", "20152016", "**Top 10 players by Xg (2015-16 season):**"},
		{5, "points", "20242025", "**Top 5 players by Points (2024-25 season):**"},
		{3, "corsi_for_pct", "20232024", "**Top 3 players by Corsi_For_Pct (2023-24 season):**"},
	}
	for _, tt := range tests {
		if got := LeadersHeader(tt.limit, tt.stat, tt.season); got != tt.want {
			t.Errorf("LeadersHeader(%d, %q, %q) = %q, want %q", tt.limit, tt.stat, tt.season, got, tt.want)
		}
	}
}
