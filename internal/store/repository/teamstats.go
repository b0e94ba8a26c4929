package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/halverson/puckcast/internal/store"
)

// TeamStatRepository handles team season stat data access
type TeamStatRepository struct {
	db *store.Database
}

// NewTeamStatRepository creates a new team stat repository
func NewTeamStatRepository(db *store.Database) *TeamStatRepository {
	return &TeamStatRepository{db: db}
}

// Upsert inserts or updates a team season stat row keyed on (team_abbrev, season)
func (r *TeamStatRepository) Upsert(ctx context.Context, stat *store.TeamSeasonStat) error {
	query := `
		INSERT INTO team_season_stats (team_abbrev, season, games_played, wins,
			losses, ot_losses, goals_for_per_game, goals_against_per_game,
			shots_for_per_game, shots_against_per_game, powerplay_pct,
			penalty_kill_pct, total_goals_per_game)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (team_abbrev, season) DO UPDATE SET
			games_played = EXCLUDED.games_played,
			wins = EXCLUDED.wins,
			losses = EXCLUDED.losses,
			ot_losses = EXCLUDED.ot_losses,
			goals_for_per_game = EXCLUDED.goals_for_per_game,
			goals_against_per_game = EXCLUDED.goals_against_per_game,
			shots_for_per_game = EXCLUDED.shots_for_per_game,
			shots_against_per_game = EXCLUDED.shots_against_per_game,
			powerplay_pct = EXCLUDED.powerplay_pct,
			penalty_kill_pct = EXCLUDED.penalty_kill_pct,
			total_goals_per_game = EXCLUDED.total_goals_per_game,
			updated_at = NOW()
		RETURNING id
	`

	err := r.db.DB().QueryRowContext(ctx, query,
		stat.TeamAbbrev, stat.Season, stat.GamesPlayed, stat.Wins,
		stat.Losses, stat.OTLosses, stat.GoalsForPerGame, stat.GoalsAgainstPerGame,
		stat.ShotsForPerGame, stat.ShotsAgainstPerGame, stat.PowerplayPct,
		stat.PenaltyKillPct, stat.TotalGoalsPerGame,
	).Scan(&stat.ID)

	if err != nil {
		return fmt.Errorf("upserting team stats: %w", err)
	}

	return nil
}

// GetForTeam returns a team's stat row for one season
func (r *TeamStatRepository) GetForTeam(ctx context.Context, teamAbbrev, season string) (*store.TeamSeasonStat, error) {
	query := `
		SELECT id, team_abbrev, season, games_played, wins, losses, ot_losses,
			goals_for_per_game, goals_against_per_game, shots_for_per_game,
			shots_against_per_game, powerplay_pct, penalty_kill_pct,
			total_goals_per_game, created_at, updated_at
		FROM team_season_stats
		WHERE team_abbrev = $1 AND season = $2
	`

	stat := &store.TeamSeasonStat{}
	err := r.db.DB().QueryRowContext(ctx, query, teamAbbrev, season).Scan(
		&stat.ID, &stat.TeamAbbrev, &stat.Season, &stat.GamesPlayed, &stat.Wins,
		&stat.Losses, &stat.OTLosses, &stat.GoalsForPerGame, &stat.GoalsAgainstPerGame,
		&stat.ShotsForPerGame, &stat.ShotsAgainstPerGame, &stat.PowerplayPct,
		&stat.PenaltyKillPct, &stat.TotalGoalsPerGame, &stat.CreatedAt, &stat.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no team stats for %s in %s", teamAbbrev, season)
	}
	if err != nil {
		return nil, fmt.Errorf("querying team stats: %w", err)
	}

	return stat, nil
}
