package store

import (
	"database/sql"
	"time"
)

// Player represents an NHL skater or goalie
type Player struct {
	ID             int             `json:"id" db:"id"`
	NHLID          int             `json:"nhl_id" db:"nhl_id"`
	Name           string          `json:"name" db:"name"`
	Position       sql.NullString  `json:"position,omitempty" db:"position"`
	TeamAbbrev     sql.NullString  `json:"team_abbrev,omitempty" db:"team_abbrev"`
	BirthDate      sql.NullTime    `json:"birth_date,omitempty" db:"birth_date"`
	ShootsCatches  sql.NullString  `json:"shoots_catches,omitempty" db:"shoots_catches"`
	HeightInches   sql.NullInt32   `json:"height_inches,omitempty" db:"height_inches"`
	WeightLbs      sql.NullInt32   `json:"weight_lbs,omitempty" db:"weight_lbs"`
	CapHitCents    sql.NullInt64   `json:"cap_hit_cents,omitempty" db:"cap_hit_cents"`
	ContractYears  sql.NullInt32   `json:"contract_years,omitempty" db:"contract_years"`
	ContractExpiry sql.NullString  `json:"contract_expiry,omitempty" db:"contract_expiry"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
}

// Team represents an NHL franchise
type Team struct {
	ID         int            `json:"id" db:"id"`
	NHLID      sql.NullInt32  `json:"nhl_id,omitempty" db:"nhl_id"`
	Name       string         `json:"name" db:"name"`
	Abbrev     string         `json:"abbrev" db:"abbrev"`
	Conference sql.NullString `json:"conference,omitempty" db:"conference"`
	Division   sql.NullString `json:"division,omitempty" db:"division"`
	CreatedAt  time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at" db:"updated_at"`
}

// Game represents a scheduled or completed NHL game
type Game struct {
	ID           int             `json:"id" db:"id"`
	NHLGameID    int64           `json:"nhl_game_id" db:"nhl_game_id"`
	Season       string          `json:"season" db:"season"`
	GameType     int             `json:"game_type" db:"game_type"`
	GameDate     time.Time       `json:"game_date" db:"game_date"`
	StartTimeUTC sql.NullTime    `json:"start_time_utc,omitempty" db:"start_time_utc"`
	Venue        sql.NullString  `json:"venue,omitempty" db:"venue"`
	HomeAbbrev   string          `json:"home_team_abbrev" db:"home_team_abbrev"`
	AwayAbbrev   string          `json:"away_team_abbrev" db:"away_team_abbrev"`
	HomeScore    sql.NullInt32   `json:"home_score,omitempty" db:"home_score"`
	AwayScore    sql.NullInt32   `json:"away_score,omitempty" db:"away_score"`
	GameState    string          `json:"game_state" db:"game_state"`
	IsCompleted  bool            `json:"is_completed" db:"is_completed"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at" db:"updated_at"`
}

// SeasonStat represents a player's season totals including advanced metrics
type SeasonStat struct {
	ID            int             `json:"id" db:"id"`
	PlayerID      int             `json:"player_id" db:"player_id"`
	Season        string          `json:"season" db:"season"`
	TeamAbbrev    sql.NullString  `json:"team_abbrev,omitempty" db:"team_abbrev"`
	GamesPlayed   int             `json:"games_played" db:"games_played"`
	Goals         int             `json:"goals" db:"goals"`
	Assists       int             `json:"assists" db:"assists"`
	Points        int             `json:"points" db:"points"`
	Shots         int             `json:"shots" db:"shots"`
	TOIPerGame    sql.NullFloat64 `json:"toi_per_game,omitempty" db:"toi_per_game"`
	XG            sql.NullFloat64 `json:"xg,omitempty" db:"xg"`
	XGPer60       sql.NullFloat64 `json:"xg_per_60,omitempty" db:"xg_per_60"`
	CorsiForPct   sql.NullFloat64 `json:"corsi_for_pct,omitempty" db:"corsi_for_pct"`
	FenwickForPct sql.NullFloat64 `json:"fenwick_for_pct,omitempty" db:"fenwick_for_pct"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`

	// Populated by joins for leader and roster queries
	PlayerName     string `json:"player_name,omitempty" db:"-"`
	PlayerPosition string `json:"player_position,omitempty" db:"-"`
}

// GameLog represents a single player-game line
type GameLog struct {
	ID               int             `json:"id" db:"id"`
	PlayerID         int             `json:"player_id" db:"player_id"`
	GameID           int64           `json:"game_id" db:"game_id"`
	GameDate         time.Time       `json:"game_date" db:"game_date"`
	Season           string          `json:"season" db:"season"`
	TeamAbbrev       sql.NullString  `json:"team_abbrev,omitempty" db:"team_abbrev"`
	OpponentAbbrev   sql.NullString  `json:"opponent_abbrev,omitempty" db:"opponent_abbrev"`
	HomeAway         sql.NullString  `json:"home_away,omitempty" db:"home_away"`
	Goals            int             `json:"goals" db:"goals"`
	Assists          int             `json:"assists" db:"assists"`
	Points           int             `json:"points" db:"points"`
	Shots            int             `json:"shots" db:"shots"`
	TOI              sql.NullFloat64 `json:"toi,omitempty" db:"toi"`
	PlusMinus        sql.NullInt32   `json:"plus_minus,omitempty" db:"plus_minus"`
	PIM              sql.NullInt32   `json:"pim,omitempty" db:"pim"`
	PowerplayGoals   int             `json:"powerplay_goals" db:"powerplay_goals"`
	PowerplayPoints  int             `json:"powerplay_points" db:"powerplay_points"`
	ShorthandedGoals int             `json:"shorthanded_goals" db:"shorthanded_goals"`
	GameWinningGoals int             `json:"game_winning_goals" db:"game_winning_goals"`
	OTGoals          int             `json:"ot_goals" db:"ot_goals"`
	Shifts           sql.NullInt32   `json:"shifts,omitempty" db:"shifts"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at" db:"updated_at"`
}

// GoalieStat represents a goalie's season totals
type GoalieStat struct {
	ID           int             `json:"id" db:"id"`
	PlayerID     int             `json:"player_id" db:"player_id"`
	Season       string          `json:"season" db:"season"`
	TeamAbbrev   sql.NullString  `json:"team_abbrev,omitempty" db:"team_abbrev"`
	GamesPlayed  int             `json:"games_played" db:"games_played"`
	GamesStarted int             `json:"games_started" db:"games_started"`
	Wins         int             `json:"wins" db:"wins"`
	Losses       int             `json:"losses" db:"losses"`
	OTLosses     int             `json:"ot_losses" db:"ot_losses"`
	Shutouts     int             `json:"shutouts" db:"shutouts"`
	SavePct      sql.NullFloat64 `json:"save_pct,omitempty" db:"save_pct"`
	GAA          sql.NullFloat64 `json:"goals_against_avg,omitempty" db:"goals_against_avg"`
	ShotsAgainst int             `json:"shots_against" db:"shots_against"`
	Saves        int             `json:"saves" db:"saves"`
	TimeOnIce    sql.NullFloat64 `json:"time_on_ice,omitempty" db:"time_on_ice"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at" db:"updated_at"`

	PlayerName string `json:"player_name,omitempty" db:"-"`
}

// TeamSeasonStat represents a team's season record and pace metrics
type TeamSeasonStat struct {
	ID                  int             `json:"id" db:"id"`
	TeamAbbrev          string          `json:"team_abbrev" db:"team_abbrev"`
	Season              string          `json:"season" db:"season"`
	GamesPlayed         int             `json:"games_played" db:"games_played"`
	Wins                int             `json:"wins" db:"wins"`
	Losses              int             `json:"losses" db:"losses"`
	OTLosses            int             `json:"ot_losses" db:"ot_losses"`
	GoalsForPerGame     sql.NullFloat64 `json:"goals_for_per_game,omitempty" db:"goals_for_per_game"`
	GoalsAgainstPerGame sql.NullFloat64 `json:"goals_against_per_game,omitempty" db:"goals_against_per_game"`
	ShotsForPerGame     sql.NullFloat64 `json:"shots_for_per_game,omitempty" db:"shots_for_per_game"`
	ShotsAgainstPerGame sql.NullFloat64 `json:"shots_against_per_game,omitempty" db:"shots_against_per_game"`
	PowerplayPct        sql.NullFloat64 `json:"powerplay_pct,omitempty" db:"powerplay_pct"`
	PenaltyKillPct      sql.NullFloat64 `json:"penalty_kill_pct,omitempty" db:"penalty_kill_pct"`
	TotalGoalsPerGame   sql.NullFloat64 `json:"total_goals_per_game,omitempty" db:"total_goals_per_game"`
	CreatedAt           time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at" db:"updated_at"`
}

// Injury represents a player injury report entry
type Injury struct {
	ID           int            `json:"id" db:"id"`
	PlayerID     int            `json:"player_id" db:"player_id"`
	IsActive     bool           `json:"is_active" db:"is_active"`
	Status       string         `json:"status" db:"status"`
	InjuryType   sql.NullString `json:"injury_type,omitempty" db:"injury_type"`
	Description  sql.NullString `json:"description,omitempty" db:"description"`
	ReportedDate sql.NullTime   `json:"reported_date,omitempty" db:"reported_date"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" db:"updated_at"`

	PlayerName string `json:"player_name,omitempty" db:"-"`
	TeamAbbrev string `json:"team_abbrev,omitempty" db:"-"`
}

// Document represents an embedded text chunk for semantic search
type Document struct {
	ID         int            `json:"id" db:"id"`
	Title      sql.NullString `json:"title,omitempty" db:"title"`
	Source     sql.NullString `json:"source,omitempty" db:"source"`
	Content    string         `json:"content" db:"content"`
	URL        sql.NullString `json:"url,omitempty" db:"url"`
	Similarity float64        `json:"similarity,omitempty" db:"-"`
	CreatedAt  time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at" db:"updated_at"`
}
