package espn

import (
	"database/sql"
	"testing"

	"github.com/halverson/puckcast/internal/store"
)

func playerOn(id int, name, abbrev string) *store.Player {
	return &store.Player{
		ID:         id,
		Name:       name,
		TeamAbbrev: sql.NullString{String: abbrev, Valid: true},
	}
}

func TestPickMatch(t *testing.T) {
	nick := playerOn(1, "Nick Foligno", "CHI")
	marcus := playerOn(2, "Marcus Foligno", "MIN")

	tests := []struct {
		name       string
		candidates []*store.Player
		teamAbbrev string
		want       *store.Player
	}{
		{"lone hit wins without a team", []*store.Player{nick}, "", nick},
		{"team breaks a surname tie", []*store.Player{nick, marcus}, "MIN", marcus},
		{"ambiguous without a team matches nothing", []*store.Player{nick, marcus}, "", nil},
		{"wrong team matches nothing", []*store.Player{nick, marcus}, "TOR", nil},
		{"no candidates", nil, "TOR", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pickMatch(tt.candidates, tt.teamAbbrev); got != tt.want {
				t.Errorf("pickMatch(%d candidates, %q) = %v, want %v",
					len(tt.candidates), tt.teamAbbrev, got, tt.want)
			}
		})
	}
}
