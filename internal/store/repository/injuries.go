package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/halverson/puckcast/internal/store"
)

// InjuryRepository handles injury report data access
type InjuryRepository struct {
	db *store.Database
}

// NewInjuryRepository creates a new injury repository
func NewInjuryRepository(db *store.Database) *InjuryRepository {
	return &InjuryRepository{db: db}
}

// DeactivateAll clears the active flag on every injury. An ingestion pass
// calls this first, then re-asserts current injuries from the source.
func (r *InjuryRepository) DeactivateAll(ctx context.Context) error {
	_, err := r.db.DB().ExecContext(ctx,
		"UPDATE injuries SET is_active = FALSE, updated_at = NOW() WHERE is_active")
	if err != nil {
		return fmt.Errorf("deactivating injuries: %w", err)
	}
	return nil
}

// Assert records a player's current injury, updating the active row if one
// exists. A previously reported date survives a source that omits it.
func (r *InjuryRepository) Assert(ctx context.Context, injury *store.Injury) error {
	query := `
		INSERT INTO injuries (player_id, is_active, status, injury_type, description, reported_date)
		VALUES ($1, TRUE, $2, $3, $4, $5)
		ON CONFLICT (player_id) WHERE is_active DO UPDATE SET
			status = EXCLUDED.status,
			injury_type = COALESCE(EXCLUDED.injury_type, injuries.injury_type),
			description = COALESCE(EXCLUDED.description, injuries.description),
			reported_date = COALESCE(EXCLUDED.reported_date, injuries.reported_date),
			updated_at = NOW()
		RETURNING id
	`

	err := r.db.DB().QueryRowContext(ctx, query,
		injury.PlayerID, injury.Status, injury.InjuryType, injury.Description, injury.ReportedDate,
	).Scan(&injury.ID)

	if err != nil {
		return fmt.Errorf("asserting injury: %w", err)
	}

	return nil
}

// GetActive returns all active injuries, optionally filtered by team
func (r *InjuryRepository) GetActive(ctx context.Context, teamAbbrev string) ([]*store.Injury, error) {
	query := `
		SELECT i.id, i.player_id, i.is_active, i.status, i.injury_type,
			i.description, i.reported_date, i.created_at, i.updated_at,
			p.name, COALESCE(p.team_abbrev, '')
		FROM injuries i
		INNER JOIN players p ON p.id = i.player_id
		WHERE i.is_active AND ($1 = '' OR p.team_abbrev = $1)
		ORDER BY p.team_abbrev, p.name
	`

	rows, err := r.db.DB().QueryContext(ctx, query, teamAbbrev)
	if err != nil {
		return nil, fmt.Errorf("querying injuries: %w", err)
	}
	defer rows.Close()

	var injuries []*store.Injury
	for rows.Next() {
		injury := &store.Injury{}
		err := rows.Scan(
			&injury.ID, &injury.PlayerID, &injury.IsActive, &injury.Status,
			&injury.InjuryType, &injury.Description, &injury.ReportedDate,
			&injury.CreatedAt, &injury.UpdatedAt, &injury.PlayerName, &injury.TeamAbbrev,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning injury: %w", err)
		}
		injuries = append(injuries, injury)
	}

	return injuries, rows.Err()
}

// ActiveForPlayer returns a player's active injury, if any
func (r *InjuryRepository) ActiveForPlayer(ctx context.Context, playerID int) (*store.Injury, error) {
	query := `
		SELECT id, player_id, is_active, status, injury_type, description,
			reported_date, created_at, updated_at
		FROM injuries
		WHERE player_id = $1 AND is_active
	`

	injury := &store.Injury{}
	err := r.db.DB().QueryRowContext(ctx, query, playerID).Scan(
		&injury.ID, &injury.PlayerID, &injury.IsActive, &injury.Status,
		&injury.InjuryType, &injury.Description, &injury.ReportedDate,
		&injury.CreatedAt, &injury.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying injury: %w", err)
	}

	return injury, nil
}

// CountActive returns the number of active injuries
func (r *InjuryRepository) CountActive(ctx context.Context) (int, error) {
	var count int
	err := r.db.DB().QueryRowContext(ctx, "SELECT COUNT(*) FROM injuries WHERE is_active").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting injuries: %w", err)
	}
	return count, nil
}
