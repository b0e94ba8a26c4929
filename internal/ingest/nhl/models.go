package nhl

// LocalizedString is the league API's {"default": "..."} wrapper
type LocalizedString struct {
	Default string `json:"default"`
}

// ScheduleResponse is the /schedule/{date} payload. The source returns a
// full week of game days regardless of the requested date.
type ScheduleResponse struct {
	GameWeek []ScheduleDay `json:"gameWeek"`
}

// ScheduleDay groups games under the league's local calendar date
type ScheduleDay struct {
	Date  string         `json:"date"`
	Games []ScheduleGame `json:"games"`
}

// ScheduleGame is one game entry in the schedule feed
type ScheduleGame struct {
	ID           int64           `json:"id"`
	Season       int             `json:"season"`
	GameType     int             `json:"gameType"`
	GameState    string          `json:"gameState"`
	StartTimeUTC string          `json:"startTimeUTC"`
	Venue        LocalizedString `json:"venue"`
	HomeTeam     ScheduleTeam    `json:"homeTeam"`
	AwayTeam     ScheduleTeam    `json:"awayTeam"`
}

// ScheduleTeam carries a side's code and score (absent for future games)
type ScheduleTeam struct {
	Abbrev string `json:"abbrev"`
	Score  *int   `json:"score"`
}

// GameLogResponse is the /player/{id}/game-log payload
type GameLogResponse struct {
	GameLog []GameLogEntry `json:"gameLog"`
}

// GameLogEntry is one player-game line from the league API
type GameLogEntry struct {
	GameID           int64  `json:"gameId"`
	GameDate         string `json:"gameDate"`
	TeamAbbrev       string `json:"teamAbbrev"`
	OpponentAbbrev   string `json:"opponentAbbrev"`
	HomeRoadFlag     string `json:"homeRoadFlag"`
	Goals            int    `json:"goals"`
	Assists          int    `json:"assists"`
	Points           int    `json:"points"`
	Shots            int    `json:"shots"`
	TOI              string `json:"toi"`
	PlusMinus        int    `json:"plusMinus"`
	PIM              int    `json:"pim"`
	PowerPlayGoals   int    `json:"powerPlayGoals"`
	PowerPlayPoints  int    `json:"powerPlayPoints"`
	ShorthandedGoals int    `json:"shorthandedGoals"`
	GameWinningGoals int    `json:"gameWinningGoals"`
	OTGoals          int    `json:"otGoals"`
	Shifts           int    `json:"shifts"`
}

// RosterResponse is the /roster/{team}/{season} payload
type RosterResponse struct {
	Forwards   []RosterEntry `json:"forwards"`
	Defensemen []RosterEntry `json:"defensemen"`
	Goalies    []RosterEntry `json:"goalies"`
}

// RosterEntry is one player on a team roster
type RosterEntry struct {
	ID             int             `json:"id"`
	FirstName      LocalizedString `json:"firstName"`
	LastName       LocalizedString `json:"lastName"`
	PositionCode   string          `json:"positionCode"`
	BirthDate      string          `json:"birthDate"`
	ShootsCatches  string          `json:"shootsCatches"`
	HeightInInches int             `json:"heightInInches"`
	WeightInPounds int             `json:"weightInPounds"`
}

// StandingsResponse is the /standings/now payload
type StandingsResponse struct {
	Standings []StandingsEntry `json:"standings"`
}

// StandingsEntry is one team record in the standings feed
type StandingsEntry struct {
	TeamAbbrev     LocalizedString `json:"teamAbbrev"`
	TeamName       LocalizedString `json:"teamName"`
	ConferenceName string          `json:"conferenceName"`
	DivisionName   string          `json:"divisionName"`
}

// BoxscoreResponse is the /gamecenter/{id}/boxscore payload, projected to
// the fields the score refresher needs.
type BoxscoreResponse struct {
	ID        int64        `json:"id"`
	GameState string       `json:"gameState"`
	HomeTeam  BoxscoreTeam `json:"homeTeam"`
	AwayTeam  BoxscoreTeam `json:"awayTeam"`
}

// BoxscoreTeam carries a side's final score
type BoxscoreTeam struct {
	Abbrev string `json:"abbrev"`
	Score  *int   `json:"score"`
}

// statsData wraps the stats API's {"data": [...]} envelope
type statsData[T any] struct {
	Data []T `json:"data"`
}

// GoalieSummaryRow is one goalie line from the stats API goalie/summary report
type GoalieSummaryRow struct {
	PlayerID            int     `json:"playerId"`
	GoalieFullName      string  `json:"goalieFullName"`
	TeamAbbrevs         string  `json:"teamAbbrevs"`
	GamesPlayed         int     `json:"gamesPlayed"`
	GamesStarted        int     `json:"gamesStarted"`
	Wins                int     `json:"wins"`
	Losses              int     `json:"losses"`
	OTLosses            int     `json:"otLosses"`
	Shutouts            int     `json:"shutouts"`
	SavePct             float64 `json:"savePct"`
	GoalsAgainstAverage float64 `json:"goalsAgainstAverage"`
	ShotsAgainst        int     `json:"shotsAgainst"`
	Saves               int     `json:"saves"`
	TimeOnIce           float64 `json:"timeOnIce"`
}

// TeamSummaryRow is one team line from the stats API team/summary report
type TeamSummaryRow struct {
	TeamID              int     `json:"teamId"`
	TeamFullName        string  `json:"teamFullName"`
	GamesPlayed         int     `json:"gamesPlayed"`
	Wins                int     `json:"wins"`
	Losses              int     `json:"losses"`
	OTLosses            int     `json:"otLosses"`
	GoalsForPerGame     float64 `json:"goalsForPerGame"`
	GoalsAgainstPerGame float64 `json:"goalsAgainstPerGame"`
	ShotsForPerGame     float64 `json:"shotsForPerGame"`
	ShotsAgainstPerGame float64 `json:"shotsAgainstPerGame"`
	PowerPlayPct        float64 `json:"powerPlayPct"`
	PenaltyKillPct      float64 `json:"penaltyKillPct"`
}
