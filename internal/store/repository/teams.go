package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/halverson/puckcast/internal/store"
)

// TeamRepository handles team data access
type TeamRepository struct {
	db *store.Database
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db *store.Database) *TeamRepository {
	return &TeamRepository{db: db}
}

// GetByAbbrev finds a team by its 3-letter code
func (r *TeamRepository) GetByAbbrev(ctx context.Context, abbrev string) (*store.Team, error) {
	query := `
		SELECT id, nhl_id, name, abbrev, conference, division, created_at, updated_at
		FROM teams
		WHERE abbrev = $1
	`

	team := &store.Team{}
	err := r.db.DB().QueryRowContext(ctx, query, abbrev).Scan(
		&team.ID, &team.NHLID, &team.Name, &team.Abbrev,
		&team.Conference, &team.Division, &team.CreatedAt, &team.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("team not found: %s", abbrev)
	}
	if err != nil {
		return nil, fmt.Errorf("querying team: %w", err)
	}

	return team, nil
}

// GetAll returns every team ordered by code
func (r *TeamRepository) GetAll(ctx context.Context) ([]*store.Team, error) {
	query := `
		SELECT id, nhl_id, name, abbrev, conference, division, created_at, updated_at
		FROM teams
		ORDER BY abbrev
	`

	rows, err := r.db.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying teams: %w", err)
	}
	defer rows.Close()

	var teams []*store.Team
	for rows.Next() {
		team := &store.Team{}
		err := rows.Scan(
			&team.ID, &team.NHLID, &team.Name, &team.Abbrev,
			&team.Conference, &team.Division, &team.CreatedAt, &team.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning team: %w", err)
		}
		teams = append(teams, team)
	}

	return teams, rows.Err()
}

// Upsert inserts or updates a team keyed on abbrev
func (r *TeamRepository) Upsert(ctx context.Context, team *store.Team) error {
	query := `
		INSERT INTO teams (nhl_id, name, abbrev, conference, division)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (abbrev) DO UPDATE SET
			name = EXCLUDED.name,
			conference = COALESCE(EXCLUDED.conference, teams.conference),
			division = COALESCE(EXCLUDED.division, teams.division),
			updated_at = NOW()
		RETURNING id
	`

	err := r.db.DB().QueryRowContext(ctx, query,
		team.NHLID, team.Name, team.Abbrev, team.Conference, team.Division,
	).Scan(&team.ID)

	if err != nil {
		return fmt.Errorf("upserting team: %w", err)
	}

	return nil
}
