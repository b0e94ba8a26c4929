package nhl

import "testing"

func TestParseTOI(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"18:30", 18.5},
		{"00:30", 0.5},
		{"20:00", 20},
		{"21:45", 21.75},
		{"", 0},
		{"abc", 0},
		{"12", 0},
		{"12:xx", 0},
	}
	for _, tt := range tests {
		if got := ParseTOI(tt.in); got != tt.want {
			t.Errorf("ParseTOI(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIsCompleted(t *testing.T) {
	for _, state := range []string{"FINAL", "OFF"} {
		if !IsCompleted(state) {
			t.Errorf("IsCompleted(%q) = false, want true", state)
		}
	}
	for _, state := range []string{"FUT", "LIVE", "PRE", ""} {
		if IsCompleted(state) {
			t.Errorf("IsCompleted(%q) = true, want false", state)
		}
	}
}

func TestProjectScheduleGamePrefersDayDate(t *testing.T) {
	score := 3
	g := ScheduleGame{
		ID:           2024020001,
		Season:       20242025,
		GameType:     2,
		GameState:    "FINAL",
		StartTimeUTC: "2024-03-02T01:00:00Z",
		HomeTeam:     ScheduleTeam{Abbrev: "TOR", Score: &score},
		AwayTeam:     ScheduleTeam{Abbrev: "BOS"},
	}

	// evening game: local calendar date is the day before the UTC start
	game, err := ProjectScheduleGame("2024-03-01", g)
	if err != nil {
		t.Fatalf("ProjectScheduleGame: %v", err)
	}
	if got := game.GameDate.Format("2006-01-02"); got != "2024-03-01" {
		t.Errorf("game date = %s, want 2024-03-01", got)
	}
	if !game.IsCompleted {
		t.Error("FINAL game should be completed")
	}
	if !game.HomeScore.Valid || game.HomeScore.Int32 != 3 {
		t.Errorf("home score = %+v, want 3", game.HomeScore)
	}
	if game.AwayScore.Valid {
		t.Error("absent away score should stay null")
	}

	// missing day date falls back to the UTC start
	game, err = ProjectScheduleGame("", g)
	if err != nil {
		t.Fatalf("ProjectScheduleGame fallback: %v", err)
	}
	if got := game.GameDate.Format("2006-01-02"); got != "2024-03-02" {
		t.Errorf("fallback game date = %s, want 2024-03-02", got)
	}
}

func TestProjectGameLogHomeAway(t *testing.T) {
	entry := GameLogEntry{
		GameID:       2024020100,
		GameDate:     "2024-11-05",
		HomeRoadFlag: "H",
		Goals:        1,
		Points:       2,
		TOI:          "19:30",
	}

	gl, err := ProjectGameLog(7, "20242025", entry)
	if err != nil {
		t.Fatalf("ProjectGameLog: %v", err)
	}
	if gl.HomeAway.String != "home" {
		t.Errorf("home flag H = %q, want home", gl.HomeAway.String)
	}
	if gl.TOI.Float64 != 19.5 {
		t.Errorf("toi = %v, want 19.5", gl.TOI.Float64)
	}

	entry.HomeRoadFlag = "R"
	gl, _ = ProjectGameLog(7, "20242025", entry)
	if gl.HomeAway.String != "away" {
		t.Errorf("road flag R = %q, want away", gl.HomeAway.String)
	}
}

func TestFlattenRoster(t *testing.T) {
	r := &RosterResponse{
		Forwards: []RosterEntry{
			{ID: 1, FirstName: LocalizedString{Default: "Auston"}, LastName: LocalizedString{Default: "Matthews"}, PositionCode: "C"},
			{ID: 2, FirstName: LocalizedString{Default: "No"}, LastName: LocalizedString{Default: "Position"}},
			{ID: 0},
		},
		Defensemen: []RosterEntry{
			{ID: 3, FirstName: LocalizedString{Default: "Morgan"}, LastName: LocalizedString{Default: "Rielly"}},
		},
		Goalies: []RosterEntry{
			{ID: 4, FirstName: LocalizedString{Default: "Joseph"}, LastName: LocalizedString{Default: "Woll"}},
		},
	}

	players := FlattenRoster(r)
	if len(players) != 4 {
		t.Fatalf("got %d players, want 4 (zero-ID entry skipped)", len(players))
	}

	if players[0].Position != "C" {
		t.Errorf("explicit position = %q, want C", players[0].Position)
	}
	if players[1].Position != "F" {
		t.Errorf("forward default = %q, want F", players[1].Position)
	}
	if players[2].Position != "D" {
		t.Errorf("defenseman default = %q, want D", players[2].Position)
	}
	if players[3].Position != "G" {
		t.Errorf("goalie default = %q, want G", players[3].Position)
	}
	if players[0].Name != "Auston Matthews" {
		t.Errorf("name = %q", players[0].Name)
	}
}

func TestFirstTeamAbbrev(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"TOR", "TOR"},
		{"TOR, BOS", "TOR"},
		{"MTL,TOR,BOS", "MTL"},
		{"  EDM  ", "EDM"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := FirstTeamAbbrev(tt.in); got != tt.want {
			t.Errorf("FirstTeamAbbrev(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
