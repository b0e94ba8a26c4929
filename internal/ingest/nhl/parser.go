package nhl

import (
	"database/sql"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/halverson/puckcast/internal/store"
)

// ParseTOI converts a "MM:SS" time-on-ice string to decimal minutes,
// rounded to two places. Malformed inputs yield 0.
func ParseTOI(s string) float64 {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0
	}
	seconds, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0
	}
	return math.Round((float64(minutes)+float64(seconds)/60)*100) / 100
}

// completedStates are the game states that mark a final result
var completedStates = map[string]bool{
	"FINAL": true,
	"OFF":   true,
}

// IsCompleted reports whether a game state marks a finished game
func IsCompleted(state string) bool {
	return completedStates[state]
}

// ProjectScheduleGame converts a schedule feed entry into a store game.
// dayDate is the source-provided local calendar date for the game day and is
// preferred over the UTC start time, which rolls evening games onto the
// next day.
func ProjectScheduleGame(dayDate string, g ScheduleGame) (*store.Game, error) {
	gameDate, err := time.Parse("2006-01-02", dayDate)
	if err != nil {
		start, serr := time.Parse(time.RFC3339, g.StartTimeUTC)
		if serr != nil {
			return nil, err
		}
		gameDate = start.UTC().Truncate(24 * time.Hour)
	}

	game := &store.Game{
		NHLGameID:   g.ID,
		Season:      strconv.Itoa(g.Season),
		GameType:    g.GameType,
		GameDate:    gameDate,
		GameState:   g.GameState,
		IsCompleted: IsCompleted(g.GameState),
		HomeAbbrev:  g.HomeTeam.Abbrev,
		AwayAbbrev:  g.AwayTeam.Abbrev,
	}

	if start, err := time.Parse(time.RFC3339, g.StartTimeUTC); err == nil {
		game.StartTimeUTC = sql.NullTime{Time: start, Valid: true}
	}
	if g.Venue.Default != "" {
		game.Venue = sql.NullString{String: g.Venue.Default, Valid: true}
	}
	if g.HomeTeam.Score != nil {
		game.HomeScore = sql.NullInt32{Int32: int32(*g.HomeTeam.Score), Valid: true}
	}
	if g.AwayTeam.Score != nil {
		game.AwayScore = sql.NullInt32{Int32: int32(*g.AwayTeam.Score), Valid: true}
	}

	return game, nil
}

// ProjectGameLog converts a league game-log entry into a store game log.
// homeRoadFlag "H" maps to "home", anything else to "away".
func ProjectGameLog(playerID int, seasonCode string, e GameLogEntry) (*store.GameLog, error) {
	gameDate, err := time.Parse("2006-01-02", e.GameDate)
	if err != nil {
		return nil, err
	}

	homeAway := "away"
	if e.HomeRoadFlag == "H" {
		homeAway = "home"
	}

	gl := &store.GameLog{
		PlayerID:         playerID,
		GameID:           e.GameID,
		GameDate:         gameDate,
		Season:           seasonCode,
		Goals:            e.Goals,
		Assists:          e.Assists,
		Points:           e.Points,
		Shots:            e.Shots,
		PowerplayGoals:   e.PowerPlayGoals,
		PowerplayPoints:  e.PowerPlayPoints,
		ShorthandedGoals: e.ShorthandedGoals,
		GameWinningGoals: e.GameWinningGoals,
		OTGoals:          e.OTGoals,
		HomeAway:         sql.NullString{String: homeAway, Valid: true},
		TOI:              sql.NullFloat64{Float64: ParseTOI(e.TOI), Valid: true},
		PlusMinus:        sql.NullInt32{Int32: int32(e.PlusMinus), Valid: true},
		PIM:              sql.NullInt32{Int32: int32(e.PIM), Valid: true},
	}
	if e.TeamAbbrev != "" {
		gl.TeamAbbrev = sql.NullString{String: e.TeamAbbrev, Valid: true}
	}
	if e.OpponentAbbrev != "" {
		gl.OpponentAbbrev = sql.NullString{String: e.OpponentAbbrev, Valid: true}
	}
	if e.Shifts > 0 {
		gl.Shifts = sql.NullInt32{Int32: int32(e.Shifts), Valid: true}
	}

	return gl, nil
}

// RosterPlayer is a roster entry flattened out of its position-group bucket
type RosterPlayer struct {
	NHLID         int
	Name          string
	Position      string
	BirthDate     string
	ShootsCatches string
	HeightInches  int
	WeightLbs     int
}

// FlattenRoster merges the three position-group buckets into one list,
// tagging entries missing a position code with the bucket default.
func FlattenRoster(r *RosterResponse) []RosterPlayer {
	var players []RosterPlayer

	groups := []struct {
		entries    []RosterEntry
		defaultPos string
	}{
		{r.Forwards, "F"},
		{r.Defensemen, "D"},
		{r.Goalies, "G"},
	}

	for _, g := range groups {
		for _, e := range g.entries {
			if e.ID == 0 {
				continue
			}
			pos := e.PositionCode
			if pos == "" {
				pos = g.defaultPos
			}
			name := strings.TrimSpace(e.FirstName.Default + " " + e.LastName.Default)
			players = append(players, RosterPlayer{
				NHLID:         e.ID,
				Name:          name,
				Position:      pos,
				BirthDate:     e.BirthDate,
				ShootsCatches: e.ShootsCatches,
				HeightInches:  e.HeightInInches,
				WeightLbs:     e.WeightInPounds,
			})
		}
	}

	return players
}

// FirstTeamAbbrev picks the first code from a comma-separated teamAbbrevs
// value. A goalie traded mid-season carries every stop in one field.
func FirstTeamAbbrev(teamAbbrevs string) string {
	if i := strings.IndexByte(teamAbbrevs, ','); i >= 0 {
		return strings.TrimSpace(teamAbbrevs[:i])
	}
	return strings.TrimSpace(teamAbbrevs)
}
