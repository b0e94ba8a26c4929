package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/halverson/puckcast/internal/store"
)

// LogAggregate summarizes a set of game logs for the prediction engine
type LogAggregate struct {
	Games   int `json:"games"`
	Goals   int `json:"goals"`
	Assists int `json:"assists"`
	Points  int `json:"points"`
	Shots   int `json:"shots"`
}

// HomeAwaySplit holds per-side career point totals
type HomeAwaySplit struct {
	Games  int `json:"games"`
	Points int `json:"points"`
}

// GameLogRepository handles per-game player stat lines
type GameLogRepository struct {
	db *store.Database
}

// NewGameLogRepository creates a new game log repository
func NewGameLogRepository(db *store.Database) *GameLogRepository {
	return &GameLogRepository{db: db}
}

// Upsert inserts or updates a game log keyed on (player_id, game_id)
func (r *GameLogRepository) Upsert(ctx context.Context, gl *store.GameLog) error {
	query := `
		INSERT INTO game_logs (player_id, game_id, game_date, season, team_abbrev,
			opponent_abbrev, home_away, goals, assists, points, shots, toi,
			plus_minus, pim, powerplay_goals, powerplay_points, shorthanded_goals,
			game_winning_goals, ot_goals, shifts)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		ON CONFLICT (player_id, game_id) DO UPDATE SET
			goals = EXCLUDED.goals,
			assists = EXCLUDED.assists,
			points = EXCLUDED.points,
			shots = EXCLUDED.shots,
			toi = EXCLUDED.toi,
			plus_minus = EXCLUDED.plus_minus,
			pim = EXCLUDED.pim,
			powerplay_goals = EXCLUDED.powerplay_goals,
			powerplay_points = EXCLUDED.powerplay_points,
			shorthanded_goals = EXCLUDED.shorthanded_goals,
			game_winning_goals = EXCLUDED.game_winning_goals,
			ot_goals = EXCLUDED.ot_goals,
			shifts = EXCLUDED.shifts,
			updated_at = NOW()
		RETURNING id
	`

	err := r.db.DB().QueryRowContext(ctx, query,
		gl.PlayerID, gl.GameID, gl.GameDate, gl.Season, gl.TeamAbbrev,
		gl.OpponentAbbrev, gl.HomeAway, gl.Goals, gl.Assists, gl.Points, gl.Shots,
		gl.TOI, gl.PlusMinus, gl.PIM, gl.PowerplayGoals, gl.PowerplayPoints,
		gl.ShorthandedGoals, gl.GameWinningGoals, gl.OTGoals, gl.Shifts,
	).Scan(&gl.ID)

	if err != nil {
		return fmt.Errorf("upserting game log: %w", err)
	}

	return nil
}

// RecentForm aggregates a player's last N games strictly before a date
func (r *GameLogRepository) RecentForm(ctx context.Context, playerID int, before time.Time, limit int) (*LogAggregate, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(goals), 0), COALESCE(SUM(assists), 0),
			COALESCE(SUM(points), 0), COALESCE(SUM(shots), 0)
		FROM (
			SELECT goals, assists, points, shots
			FROM game_logs
			WHERE player_id = $1 AND game_date < $2
			ORDER BY game_date DESC
			LIMIT $3
		) recent
	`

	agg := &LogAggregate{}
	err := r.db.DB().QueryRowContext(ctx, query, playerID, before.Format("2006-01-02"), limit).Scan(
		&agg.Games, &agg.Goals, &agg.Assists, &agg.Points, &agg.Shots,
	)
	if err != nil {
		return nil, fmt.Errorf("querying recent form: %w", err)
	}

	return agg, nil
}

// HeadToHead aggregates a player's career games against one opponent
func (r *GameLogRepository) HeadToHead(ctx context.Context, playerID int, opponentAbbrev string) (*LogAggregate, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(goals), 0), COALESCE(SUM(assists), 0),
			COALESCE(SUM(points), 0), COALESCE(SUM(shots), 0)
		FROM game_logs
		WHERE player_id = $1 AND opponent_abbrev = $2
	`

	agg := &LogAggregate{}
	err := r.db.DB().QueryRowContext(ctx, query, playerID, opponentAbbrev).Scan(
		&agg.Games, &agg.Goals, &agg.Assists, &agg.Points, &agg.Shots,
	)
	if err != nil {
		return nil, fmt.Errorf("querying head-to-head: %w", err)
	}

	return agg, nil
}

// HomeAwaySplits groups a player's career point totals by side
func (r *GameLogRepository) HomeAwaySplits(ctx context.Context, playerID int) (map[string]HomeAwaySplit, error) {
	query := `
		SELECT home_away, COUNT(*), COALESCE(SUM(points), 0)
		FROM game_logs
		WHERE player_id = $1 AND home_away IS NOT NULL
		GROUP BY home_away
	`

	rows, err := r.db.DB().QueryContext(ctx, query, playerID)
	if err != nil {
		return nil, fmt.Errorf("querying home/away splits: %w", err)
	}
	defer rows.Close()

	splits := make(map[string]HomeAwaySplit)
	for rows.Next() {
		var side string
		var split HomeAwaySplit
		if err := rows.Scan(&side, &split.Games, &split.Points); err != nil {
			return nil, fmt.Errorf("scanning split: %w", err)
		}
		splits[side] = split
	}

	return splits, rows.Err()
}

// RecentForPlayer returns a player's latest game log lines
func (r *GameLogRepository) RecentForPlayer(ctx context.Context, playerID, limit int) ([]*store.GameLog, error) {
	query := `
		SELECT id, player_id, game_id, game_date, season, team_abbrev,
			opponent_abbrev, home_away, goals, assists, points, shots, toi,
			plus_minus, pim, powerplay_goals, powerplay_points, shorthanded_goals,
			game_winning_goals, ot_goals, shifts, created_at, updated_at
		FROM game_logs
		WHERE player_id = $1
		ORDER BY game_date DESC
		LIMIT $2
	`

	rows, err := r.db.DB().QueryContext(ctx, query, playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying game logs: %w", err)
	}
	defer rows.Close()

	return r.scanLogs(rows)
}

// Count returns the total number of game log rows
func (r *GameLogRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.DB().QueryRowContext(ctx, "SELECT COUNT(*) FROM game_logs").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting game logs: %w", err)
	}
	return count, nil
}

func (r *GameLogRepository) scanLogs(rows *sql.Rows) ([]*store.GameLog, error) {
	var logs []*store.GameLog
	for rows.Next() {
		gl := &store.GameLog{}
		err := rows.Scan(
			&gl.ID, &gl.PlayerID, &gl.GameID, &gl.GameDate, &gl.Season, &gl.TeamAbbrev,
			&gl.OpponentAbbrev, &gl.HomeAway, &gl.Goals, &gl.Assists, &gl.Points, &gl.Shots,
			&gl.TOI, &gl.PlusMinus, &gl.PIM, &gl.PowerplayGoals, &gl.PowerplayPoints,
			&gl.ShorthandedGoals, &gl.GameWinningGoals, &gl.OTGoals, &gl.Shifts,
			&gl.CreatedAt, &gl.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning game log: %w", err)
		}
		logs = append(logs, gl)
	}

	return logs, rows.Err()
}
