package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/halverson/puckcast/internal/store"
)

// GoalieRepository handles goalie season stat data access
type GoalieRepository struct {
	db *store.Database
}

// NewGoalieRepository creates a new goalie stat repository
func NewGoalieRepository(db *store.Database) *GoalieRepository {
	return &GoalieRepository{db: db}
}

// Upsert inserts or updates a goalie stat row keyed on (player_id, season)
func (r *GoalieRepository) Upsert(ctx context.Context, stat *store.GoalieStat) error {
	query := `
		INSERT INTO goalie_stats (player_id, season, team_abbrev, games_played,
			games_started, wins, losses, ot_losses, shutouts, save_pct,
			goals_against_avg, shots_against, saves, time_on_ice)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (player_id, season) DO UPDATE SET
			team_abbrev = EXCLUDED.team_abbrev,
			games_played = EXCLUDED.games_played,
			games_started = EXCLUDED.games_started,
			wins = EXCLUDED.wins,
			losses = EXCLUDED.losses,
			ot_losses = EXCLUDED.ot_losses,
			shutouts = EXCLUDED.shutouts,
			save_pct = EXCLUDED.save_pct,
			goals_against_avg = EXCLUDED.goals_against_avg,
			shots_against = EXCLUDED.shots_against,
			saves = EXCLUDED.saves,
			time_on_ice = EXCLUDED.time_on_ice,
			updated_at = NOW()
		RETURNING id
	`

	err := r.db.DB().QueryRowContext(ctx, query,
		stat.PlayerID, stat.Season, stat.TeamAbbrev, stat.GamesPlayed,
		stat.GamesStarted, stat.Wins, stat.Losses, stat.OTLosses, stat.Shutouts,
		stat.SavePct, stat.GAA, stat.ShotsAgainst, stat.Saves, stat.TimeOnIce,
	).Scan(&stat.ID)

	if err != nil {
		return fmt.Errorf("upserting goalie stats: %w", err)
	}

	return nil
}

// StarterForTeam returns the presumed starting goalie for a team and season,
// the goalie with the most starts.
func (r *GoalieRepository) StarterForTeam(ctx context.Context, teamAbbrev, season string) (*store.GoalieStat, error) {
	query := `
		SELECT g.id, g.player_id, g.season, g.team_abbrev, g.games_played,
			g.games_started, g.wins, g.losses, g.ot_losses, g.shutouts,
			g.save_pct, g.goals_against_avg, g.shots_against, g.saves,
			g.time_on_ice, g.created_at, g.updated_at, p.name
		FROM goalie_stats g
		INNER JOIN players p ON p.id = g.player_id
		WHERE g.team_abbrev = $1 AND g.season = $2
		ORDER BY g.games_started DESC
		LIMIT 1
	`

	stat := &store.GoalieStat{}
	err := r.db.DB().QueryRowContext(ctx, query, teamAbbrev, season).Scan(
		&stat.ID, &stat.PlayerID, &stat.Season, &stat.TeamAbbrev, &stat.GamesPlayed,
		&stat.GamesStarted, &stat.Wins, &stat.Losses, &stat.OTLosses, &stat.Shutouts,
		&stat.SavePct, &stat.GAA, &stat.ShotsAgainst, &stat.Saves,
		&stat.TimeOnIce, &stat.CreatedAt, &stat.UpdatedAt, &stat.PlayerName,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no goalie stats for %s in %s", teamAbbrev, season)
	}
	if err != nil {
		return nil, fmt.Errorf("querying starter: %w", err)
	}

	return stat, nil
}
