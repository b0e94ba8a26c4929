package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/halverson/puckcast/internal/store"
	"github.com/lib/pq"
)

// statColumns whitelists the sortable stat names accepted by leader and
// roster queries and maps them to their SQL columns.
var statColumns = map[string]string{
	"goals":         "goals",
	"assists":       "assists",
	"points":        "points",
	"xg":            "xg",
	"corsi_for_pct": "corsi_for_pct",
}

// ValidStat reports whether a stat name is queryable
func ValidStat(stat string) bool {
	_, ok := statColumns[stat]
	return ok
}

// StatRepository handles player season stat data access
type StatRepository struct {
	db *store.Database
}

// NewStatRepository creates a new season stat repository
func NewStatRepository(db *store.Database) *StatRepository {
	return &StatRepository{db: db}
}

const seasonStatColumns = `s.id, s.player_id, s.season, s.team_abbrev, s.games_played,
	s.goals, s.assists, s.points, s.shots, s.toi_per_game, s.xg, s.xg_per_60,
	s.corsi_for_pct, s.fenwick_for_pct, s.created_at, s.updated_at`

// Upsert inserts or updates a season stat row keyed on (player_id, season)
func (r *StatRepository) Upsert(ctx context.Context, stat *store.SeasonStat) error {
	query := `
		INSERT INTO player_season_stats (player_id, season, team_abbrev,
			games_played, goals, assists, points, shots, toi_per_game,
			xg, xg_per_60, corsi_for_pct, fenwick_for_pct)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (player_id, season) DO UPDATE SET
			team_abbrev = EXCLUDED.team_abbrev,
			games_played = EXCLUDED.games_played,
			goals = EXCLUDED.goals,
			assists = EXCLUDED.assists,
			points = EXCLUDED.points,
			shots = EXCLUDED.shots,
			toi_per_game = EXCLUDED.toi_per_game,
			xg = EXCLUDED.xg,
			xg_per_60 = EXCLUDED.xg_per_60,
			corsi_for_pct = EXCLUDED.corsi_for_pct,
			fenwick_for_pct = EXCLUDED.fenwick_for_pct,
			updated_at = NOW()
		RETURNING id
	`

	err := r.db.DB().QueryRowContext(ctx, query,
		stat.PlayerID, stat.Season, stat.TeamAbbrev, stat.GamesPlayed,
		stat.Goals, stat.Assists, stat.Points, stat.Shots, stat.TOIPerGame,
		stat.XG, stat.XGPer60, stat.CorsiForPct, stat.FenwickForPct,
	).Scan(&stat.ID)

	if err != nil {
		return fmt.Errorf("upserting season stats: %w", err)
	}

	return nil
}

// MostRecentSeason returns the latest season code present in the table
func (r *StatRepository) MostRecentSeason(ctx context.Context) (string, error) {
	var season sql.NullString
	err := r.db.DB().QueryRowContext(ctx, "SELECT MAX(season) FROM player_season_stats").Scan(&season)
	if err != nil {
		return "", fmt.Errorf("querying most recent season: %w", err)
	}
	if !season.Valid {
		return "", fmt.Errorf("no season stats present")
	}
	return season.String, nil
}

// GetLatestForPlayer returns a player's most recent season row
func (r *StatRepository) GetLatestForPlayer(ctx context.Context, playerID int) (*store.SeasonStat, error) {
	query := `
		SELECT ` + seasonStatColumns + `
		FROM player_season_stats s
		WHERE s.player_id = $1
		ORDER BY s.season DESC
		LIMIT 1
	`

	stat := &store.SeasonStat{}
	err := r.db.DB().QueryRowContext(ctx, query, playerID).Scan(
		&stat.ID, &stat.PlayerID, &stat.Season, &stat.TeamAbbrev, &stat.GamesPlayed,
		&stat.Goals, &stat.Assists, &stat.Points, &stat.Shots, &stat.TOIPerGame,
		&stat.XG, &stat.XGPer60, &stat.CorsiForPct, &stat.FenwickForPct,
		&stat.CreatedAt, &stat.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("season stats not found for player %d", playerID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying season stats: %w", err)
	}

	return stat, nil
}

// GetAllForPlayer returns every season row for a player, newest first
func (r *StatRepository) GetAllForPlayer(ctx context.Context, playerID int) ([]*store.SeasonStat, error) {
	query := `
		SELECT ` + seasonStatColumns + `
		FROM player_season_stats s
		WHERE s.player_id = $1
		ORDER BY s.season DESC
	`

	rows, err := r.db.DB().QueryContext(ctx, query, playerID)
	if err != nil {
		return nil, fmt.Errorf("querying season stats: %w", err)
	}
	defer rows.Close()

	return r.scanStats(rows, false)
}

// Count returns the number of season stat rows. The orchestrator uses this
// to decide whether the store needs a first-run seed.
func (r *StatRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.DB().QueryRowContext(ctx, "SELECT COUNT(*) FROM player_season_stats").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting season stats: %w", err)
	}
	return count, nil
}

// TeamTopByStat returns a team's top players for one season ordered by a stat
func (r *StatRepository) TeamTopByStat(ctx context.Context, teamAbbrev, season, stat string, limit int) ([]*store.SeasonStat, error) {
	col, ok := statColumns[stat]
	if !ok {
		return nil, fmt.Errorf("invalid stat: %s", stat)
	}

	query := `
		SELECT ` + seasonStatColumns + `, p.name, COALESCE(p.position, '')
		FROM player_season_stats s
		INNER JOIN players p ON p.id = s.player_id
		WHERE s.team_abbrev = $1 AND s.season = $2
		ORDER BY s.` + col + ` DESC NULLS LAST
		LIMIT $3
	`

	rows, err := r.db.DB().QueryContext(ctx, query, teamAbbrev, season, limit)
	if err != nil {
		return nil, fmt.Errorf("querying team stats: %w", err)
	}
	defer rows.Close()

	return r.scanStats(rows, true)
}

// LeagueLeaders returns the league-wide top players by a stat, optionally
// restricted to one season. With no season filter the most recent season wins.
func (r *StatRepository) LeagueLeaders(ctx context.Context, stat, season string, limit int) ([]*store.SeasonStat, error) {
	col, ok := statColumns[stat]
	if !ok {
		return nil, fmt.Errorf("invalid stat: %s", stat)
	}

	if season == "" {
		latest, err := r.MostRecentSeason(ctx)
		if err != nil {
			return nil, err
		}
		season = latest
	}

	query := `
		SELECT ` + seasonStatColumns + `, p.name, COALESCE(p.position, '')
		FROM player_season_stats s
		INNER JOIN players p ON p.id = s.player_id
		WHERE s.season = $1
		ORDER BY s.` + col + ` DESC NULLS LAST
		LIMIT $2
	`

	rows, err := r.db.DB().QueryContext(ctx, query, season, limit)
	if err != nil {
		return nil, fmt.Errorf("querying leaders: %w", err)
	}
	defer rows.Close()

	return r.scanStats(rows, true)
}

// AllTeamsTopByStat returns the top-N players per team for a season,
// ranked by a stat within each team.
func (r *StatRepository) AllTeamsTopByStat(ctx context.Context, season, stat string, topN int) ([]*store.SeasonStat, error) {
	col, ok := statColumns[stat]
	if !ok {
		return nil, fmt.Errorf("invalid stat: %s", stat)
	}

	query := `
		SELECT id, player_id, season, team_abbrev, games_played,
			goals, assists, points, shots, toi_per_game, xg, xg_per_60,
			corsi_for_pct, fenwick_for_pct, created_at, updated_at, name, position
		FROM (
			SELECT ` + seasonStatColumns + `, p.name, COALESCE(p.position, '') AS position,
				ROW_NUMBER() OVER (PARTITION BY s.team_abbrev ORDER BY s.` + col + ` DESC NULLS LAST) AS rank
			FROM player_season_stats s
			INNER JOIN players p ON p.id = s.player_id
			WHERE s.season = $1 AND s.team_abbrev IS NOT NULL
		) ranked
		WHERE rank <= $2
		ORDER BY team_abbrev, rank
	`

	rows, err := r.db.DB().QueryContext(ctx, query, season, topN)
	if err != nil {
		return nil, fmt.Errorf("querying all-teams breakdown: %w", err)
	}
	defer rows.Close()

	return r.scanStats(rows, true)
}

// TopBySeasonPoints returns a team's top players by season points,
// the candidate list for matchup predictions.
func (r *StatRepository) TopBySeasonPoints(ctx context.Context, teamAbbrev, season string, limit int) ([]*store.SeasonStat, error) {
	return r.TeamTopByStat(ctx, teamAbbrev, season, "points", limit)
}

// TradeValueRow carries the season stats a trade value is computed from
type TradeValueRow struct {
	PlayerID    int     `json:"player_id"`
	Name        string  `json:"name"`
	TeamAbbrev  string  `json:"team_abbrev"`
	Season      string  `json:"season"`
	GamesPlayed int     `json:"games_played"`
	Points      int     `json:"points"`
	XG          float64 `json:"xg"`
	CorsiForPct float64 `json:"corsi_for_pct"`
	Value       float64 `json:"value"`
}

const tradeValueExpr = `(s.points::float / s.games_played) * 50
			+ (COALESCE(s.xg, 0) / s.games_played) * 30
			+ COALESCE(s.corsi_for_pct, 0) * 0.5`

// TradeValueForPlayer computes a player's trade value from their most
// recent season row.
func (r *StatRepository) TradeValueForPlayer(ctx context.Context, name string) (*TradeValueRow, error) {
	query := `
		SELECT s.player_id, p.name, COALESCE(s.team_abbrev, ''), s.season,
			s.games_played, s.points, COALESCE(s.xg, 0), COALESCE(s.corsi_for_pct, 0),
			` + tradeValueExpr + ` AS value
		FROM player_season_stats s
		INNER JOIN players p ON p.id = s.player_id
		WHERE p.name ILIKE $1 AND s.games_played > 0
		ORDER BY s.season DESC
		LIMIT 1
	`

	row := &TradeValueRow{}
	err := r.db.DB().QueryRowContext(ctx, query, "%"+name+"%").Scan(
		&row.PlayerID, &row.Name, &row.TeamAbbrev, &row.Season,
		&row.GamesPlayed, &row.Points, &row.XG, &row.CorsiForPct, &row.Value,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("player not found: %s", name)
	}
	if err != nil {
		return nil, fmt.Errorf("querying trade value: %w", err)
	}

	return row, nil
}

// TradeCandidates returns players in the current season whose trade value
// falls inside [minValue, maxValue], excluding the named players.
func (r *StatRepository) TradeCandidates(ctx context.Context, minValue, maxValue float64, excludeNames []string, limit int) ([]*TradeValueRow, error) {
	if excludeNames == nil {
		excludeNames = []string{}
	}

	query := `
		SELECT s.player_id, p.name, COALESCE(s.team_abbrev, ''), s.season,
			s.games_played, s.points, COALESCE(s.xg, 0), COALESCE(s.corsi_for_pct, 0),
			` + tradeValueExpr + ` AS value
		FROM player_season_stats s
		INNER JOIN players p ON p.id = s.player_id
		WHERE s.season = (SELECT MAX(season) FROM player_season_stats)
			AND s.games_played >= 20
			AND NOT (p.name = ANY($1))
			AND ` + tradeValueExpr + ` BETWEEN $2 AND $3
		ORDER BY value DESC
		LIMIT $4
	`

	rows, err := r.db.DB().QueryContext(ctx, query, pq.Array(excludeNames), minValue, maxValue, limit)
	if err != nil {
		return nil, fmt.Errorf("querying trade candidates: %w", err)
	}
	defer rows.Close()

	var candidates []*TradeValueRow
	for rows.Next() {
		row := &TradeValueRow{}
		err := rows.Scan(
			&row.PlayerID, &row.Name, &row.TeamAbbrev, &row.Season,
			&row.GamesPlayed, &row.Points, &row.XG, &row.CorsiForPct, &row.Value,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning trade candidate: %w", err)
		}
		candidates = append(candidates, row)
	}

	return candidates, rows.Err()
}

// scanStats is a helper to scan multiple season stat rows
func (r *StatRepository) scanStats(rows *sql.Rows, withPlayer bool) ([]*store.SeasonStat, error) {
	var stats []*store.SeasonStat
	for rows.Next() {
		stat := &store.SeasonStat{}
		dest := []any{
			&stat.ID, &stat.PlayerID, &stat.Season, &stat.TeamAbbrev, &stat.GamesPlayed,
			&stat.Goals, &stat.Assists, &stat.Points, &stat.Shots, &stat.TOIPerGame,
			&stat.XG, &stat.XGPer60, &stat.CorsiForPct, &stat.FenwickForPct,
			&stat.CreatedAt, &stat.UpdatedAt,
		}
		if withPlayer {
			dest = append(dest, &stat.PlayerName, &stat.PlayerPosition)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scanning season stats: %w", err)
		}
		stats = append(stats, stat)
	}

	return stats, rows.Err()
}
