package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/halverson/puckcast/internal/store"
)

// PlayerRepository handles player data access
type PlayerRepository struct {
	db *store.Database
}

// NewPlayerRepository creates a new player repository
func NewPlayerRepository(db *store.Database) *PlayerRepository {
	return &PlayerRepository{db: db}
}

const playerColumns = `id, nhl_id, name, position, team_abbrev, birth_date,
	shoots_catches, height_inches, weight_lbs, cap_hit_cents, contract_years,
	contract_expiry, created_at, updated_at`

// GetByID finds a player by internal ID
func (r *PlayerRepository) GetByID(ctx context.Context, playerID int) (*store.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = $1`

	player := &store.Player{}
	err := r.scanPlayerRow(r.db.DB().QueryRowContext(ctx, query, playerID), player)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("player not found: %d", playerID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying player: %w", err)
	}

	return player, nil
}

// GetByNHLID finds a player by NHL external ID
func (r *PlayerRepository) GetByNHLID(ctx context.Context, nhlID int) (*store.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE nhl_id = $1`

	player := &store.Player{}
	err := r.scanPlayerRow(r.db.DB().QueryRowContext(ctx, query, nhlID), player)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("player not found: %d", nhlID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying player: %w", err)
	}

	return player, nil
}

// GetByName finds the best-matching player by name (case-insensitive partial match)
func (r *PlayerRepository) GetByName(ctx context.Context, name string) (*store.Player, error) {
	query := `
		SELECT ` + playerColumns + `
		FROM players
		WHERE name ILIKE $1
		ORDER BY name
		LIMIT 1
	`

	player := &store.Player{}
	err := r.scanPlayerRow(r.db.DB().QueryRowContext(ctx, query, "%"+name+"%"), player)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("player not found: %s", name)
	}
	if err != nil {
		return nil, fmt.Errorf("querying player: %w", err)
	}

	return player, nil
}

// SearchByName returns all players matching a name fragment
func (r *PlayerRepository) SearchByName(ctx context.Context, name string) ([]*store.Player, error) {
	query := `
		SELECT ` + playerColumns + `
		FROM players
		WHERE name ILIKE $1
		ORDER BY name
		LIMIT 50
	`

	rows, err := r.db.DB().QueryContext(ctx, query, "%"+name+"%")
	if err != nil {
		return nil, fmt.Errorf("querying players: %w", err)
	}
	defer rows.Close()

	return r.scanPlayers(rows)
}

// Upsert inserts or updates a player keyed on nhl_id
func (r *PlayerRepository) Upsert(ctx context.Context, player *store.Player) error {
	query := `
		INSERT INTO players (nhl_id, name, position, team_abbrev, birth_date,
			shoots_catches, height_inches, weight_lbs, cap_hit_cents,
			contract_years, contract_expiry)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (nhl_id) DO UPDATE SET
			name = EXCLUDED.name,
			position = COALESCE(EXCLUDED.position, players.position),
			team_abbrev = COALESCE(EXCLUDED.team_abbrev, players.team_abbrev),
			birth_date = COALESCE(EXCLUDED.birth_date, players.birth_date),
			shoots_catches = COALESCE(EXCLUDED.shoots_catches, players.shoots_catches),
			height_inches = COALESCE(EXCLUDED.height_inches, players.height_inches),
			weight_lbs = COALESCE(EXCLUDED.weight_lbs, players.weight_lbs),
			cap_hit_cents = COALESCE(EXCLUDED.cap_hit_cents, players.cap_hit_cents),
			contract_years = COALESCE(EXCLUDED.contract_years, players.contract_years),
			contract_expiry = COALESCE(EXCLUDED.contract_expiry, players.contract_expiry),
			updated_at = NOW()
		RETURNING id
	`

	err := r.db.DB().QueryRowContext(ctx, query,
		player.NHLID, player.Name, player.Position, player.TeamAbbrev, player.BirthDate,
		player.ShootsCatches, player.HeightInches, player.WeightLbs, player.CapHitCents,
		player.ContractYears, player.ContractExpiry,
	).Scan(&player.ID)

	if err != nil {
		return fmt.Errorf("upserting player: %w", err)
	}

	return nil
}

// InsertIfMissing creates a minimal player row when the NHL ID is unknown.
// Returns the internal id either way.
func (r *PlayerRepository) InsertIfMissing(ctx context.Context, nhlID int, name, teamAbbrev string) (int, error) {
	query := `
		INSERT INTO players (nhl_id, name, team_abbrev)
		VALUES ($1, $2, NULLIF($3, ''))
		ON CONFLICT (nhl_id) DO UPDATE SET updated_at = players.updated_at
		RETURNING id
	`

	var id int
	if err := r.db.DB().QueryRowContext(ctx, query, nhlID, name, teamAbbrev).Scan(&id); err != nil {
		return 0, fmt.Errorf("inserting player %d: %w", nhlID, err)
	}

	return id, nil
}

// UpdateRosterAssignment updates a player's current team and bio data from a
// roster record. Returns false when no player row matches the NHL ID.
func (r *PlayerRepository) UpdateRosterAssignment(ctx context.Context, nhlID int, teamAbbrev, name, position string, birthDate sql.NullTime) (bool, error) {
	query := `
		UPDATE players
		SET team_abbrev = $1,
			position = COALESCE(NULLIF($2, ''), position),
			birth_date = COALESCE($3, birth_date),
			name = COALESCE(NULLIF($4, ''), name),
			updated_at = NOW()
		WHERE nhl_id = $5
		RETURNING id
	`

	var id int
	err := r.db.DB().QueryRowContext(ctx, query, teamAbbrev, position, birthDate, name, nhlID).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("updating roster assignment: %w", err)
	}

	return true, nil
}

// UpdateCapHit sets contract data for a player matched by name.
// Matching tries the full name first, then the last name.
func (r *PlayerRepository) UpdateCapHit(ctx context.Context, name string, capHitCents int64, contractYears int, expiry string) (bool, error) {
	query := `
		UPDATE players
		SET cap_hit_cents = $1,
			contract_years = NULLIF($2, 0),
			contract_expiry = NULLIF($3, ''),
			updated_at = NOW()
		WHERE name ILIKE $4
		RETURNING id
	`

	var id int
	err := r.db.DB().QueryRowContext(ctx, query, capHitCents, contractYears, expiry, name).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("updating cap hit: %w", err)
	}

	return true, nil
}

// ActiveNHLIDs returns the NHL IDs of players with a season-stat row for the season
func (r *PlayerRepository) ActiveNHLIDs(ctx context.Context, season string) ([]int, error) {
	query := `
		SELECT p.nhl_id
		FROM players p
		INNER JOIN player_season_stats s ON s.player_id = p.id
		WHERE s.season = $1
		ORDER BY p.nhl_id
	`

	rows, err := r.db.DB().QueryContext(ctx, query, season)
	if err != nil {
		return nil, fmt.Errorf("querying active players: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning player id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// Count returns the total number of player rows
func (r *PlayerRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.DB().QueryRowContext(ctx, "SELECT COUNT(*) FROM players").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting players: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *PlayerRepository) scanPlayerRow(row rowScanner, player *store.Player) error {
	return row.Scan(
		&player.ID, &player.NHLID, &player.Name, &player.Position, &player.TeamAbbrev,
		&player.BirthDate, &player.ShootsCatches, &player.HeightInches, &player.WeightLbs,
		&player.CapHitCents, &player.ContractYears, &player.ContractExpiry,
		&player.CreatedAt, &player.UpdatedAt,
	)
}

// scanPlayers is a helper to scan multiple player rows
func (r *PlayerRepository) scanPlayers(rows *sql.Rows) ([]*store.Player, error) {
	var players []*store.Player
	for rows.Next() {
		player := &store.Player{}
		if err := r.scanPlayerRow(rows, player); err != nil {
			return nil, fmt.Errorf("scanning player: %w", err)
		}
		players = append(players, player)
	}

	return players, rows.Err()
}
