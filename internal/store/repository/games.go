package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/halverson/puckcast/internal/store"
)

// GameRepository handles game schedule data access
type GameRepository struct {
	db *store.Database
}

// NewGameRepository creates a new game repository
func NewGameRepository(db *store.Database) *GameRepository {
	return &GameRepository{db: db}
}

const gameColumns = `id, nhl_game_id, season, game_type, game_date, start_time_utc,
	venue, home_team_abbrev, away_team_abbrev, home_score, away_score,
	game_state, is_completed, created_at, updated_at`

// Upsert inserts or updates a game keyed on nhl_game_id. On conflict only the
// live fields move; scores never regress to NULL when the source omits them.
func (r *GameRepository) Upsert(ctx context.Context, game *store.Game) error {
	query := `
		INSERT INTO games (nhl_game_id, season, game_type, game_date, start_time_utc,
			venue, home_team_abbrev, away_team_abbrev, home_score, away_score,
			game_state, is_completed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (nhl_game_id) DO UPDATE SET
			home_score = COALESCE(EXCLUDED.home_score, games.home_score),
			away_score = COALESCE(EXCLUDED.away_score, games.away_score),
			game_state = EXCLUDED.game_state,
			is_completed = EXCLUDED.is_completed,
			updated_at = NOW()
		RETURNING id
	`

	err := r.db.DB().QueryRowContext(ctx, query,
		game.NHLGameID, game.Season, game.GameType, game.GameDate, game.StartTimeUTC,
		game.Venue, game.HomeAbbrev, game.AwayAbbrev, game.HomeScore, game.AwayScore,
		game.GameState, game.IsCompleted,
	).Scan(&game.ID)

	if err != nil {
		return fmt.Errorf("upserting game: %w", err)
	}

	return nil
}

// GetByDate returns all games on a calendar date
func (r *GameRepository) GetByDate(ctx context.Context, date time.Time) ([]*store.Game, error) {
	query := `
		SELECT ` + gameColumns + `
		FROM games
		WHERE game_date = $1
		ORDER BY start_time_utc NULLS LAST, nhl_game_id
	`

	rows, err := r.db.DB().QueryContext(ctx, query, date.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("querying games: %w", err)
	}
	defer rows.Close()

	return r.scanGames(rows)
}

// GetTeamGameOnDate returns the game a team plays on a date, or nil
// when the team is idle that day.
func (r *GameRepository) GetTeamGameOnDate(ctx context.Context, teamAbbrev string, date time.Time) (*store.Game, error) {
	query := `
		SELECT ` + gameColumns + `
		FROM games
		WHERE game_date = $1 AND (home_team_abbrev = $2 OR away_team_abbrev = $2)
		LIMIT 1
	`

	game := &store.Game{}
	err := r.scanGameRow(r.db.DB().QueryRowContext(ctx, query, date.Format("2006-01-02"), teamAbbrev), game)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying team game: %w", err)
	}

	return game, nil
}

// Count returns the total number of game rows
func (r *GameRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.DB().QueryRowContext(ctx, "SELECT COUNT(*) FROM games").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting games: %w", err)
	}
	return count, nil
}

func (r *GameRepository) scanGameRow(row rowScanner, game *store.Game) error {
	return row.Scan(
		&game.ID, &game.NHLGameID, &game.Season, &game.GameType, &game.GameDate,
		&game.StartTimeUTC, &game.Venue, &game.HomeAbbrev, &game.AwayAbbrev,
		&game.HomeScore, &game.AwayScore, &game.GameState, &game.IsCompleted,
		&game.CreatedAt, &game.UpdatedAt,
	)
}

func (r *GameRepository) scanGames(rows *sql.Rows) ([]*store.Game, error) {
	var games []*store.Game
	for rows.Next() {
		game := &store.Game{}
		if err := r.scanGameRow(rows, game); err != nil {
			return nil, fmt.Errorf("scanning game: %w", err)
		}
		games = append(games, game)
	}

	return games, rows.Err()
}
