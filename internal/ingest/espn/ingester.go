package espn

import (
	"context"
	"database/sql"
	"time"

	"github.com/charmbracelet/log"

	"github.com/halverson/puckcast/internal/store"
	"github.com/halverson/puckcast/internal/store/repository"
)

// IngestStats summarizes an injury ingestion pass
type IngestStats struct {
	Fetched  int `json:"fetched"`
	Matched  int `json:"matched"`
	Asserted int `json:"asserted"`
}

// Ingester replaces the stored injury view with the feed's current truth
type Ingester struct {
	client   *Client
	players  *repository.PlayerRepository
	injuries *repository.InjuryRepository
	logger   *log.Logger
}

// NewIngester creates an injury ingester
func NewIngester(client *Client, db *store.Database) *Ingester {
	return &Ingester{
		client:   client,
		players:  repository.NewPlayerRepository(db),
		injuries: repository.NewInjuryRepository(db),
		logger:   log.WithPrefix("espn"),
	}
}

// Ingest deactivates every stored injury then re-asserts the feed's current
// list, so a player absent from the feed reads as recovered. An empty fetch
// leaves the stored view untouched.
func (ing *Ingester) Ingest(ctx context.Context) (*IngestStats, error) {
	stats := &IngestStats{}

	reports := ing.client.FetchInjuries(ctx)
	stats.Fetched = len(reports)
	if len(reports) == 0 {
		return stats, nil
	}

	if err := ing.injuries.DeactivateAll(ctx); err != nil {
		return stats, err
	}

	for _, report := range reports {
		player := ing.matchPlayer(ctx, report)
		if player == nil {
			ing.logger.Debug("injured player not in store", "player", report.PlayerName)
			continue
		}
		stats.Matched++

		injury := &store.Injury{
			PlayerID: player.ID,
			Status:   NormalizeStatus(report.Status),
		}
		if report.Position != "" {
			injury.InjuryType = sql.NullString{String: report.Position, Valid: true}
		}
		if report.Description != "" {
			injury.Description = sql.NullString{String: report.Description, Valid: true}
		}
		if report.HasDate {
			injury.ReportedDate = sql.NullTime{Time: report.ReportedDate, Valid: true}
		} else {
			injury.ReportedDate = sql.NullTime{Time: time.Now(), Valid: true}
		}

		if err := ing.injuries.Assert(ctx, injury); err != nil {
			ing.logger.Warn("injury assert failed", "player", report.PlayerName, "error", err)
			continue
		}
		stats.Asserted++
	}

	ing.logger.Info("injuries ingested",
		"fetched", stats.Fetched, "matched", stats.Matched, "asserted", stats.Asserted)
	return stats, nil
}

// matchPlayer resolves a feed athlete to a stored player. A last-name
// search runs first, disambiguated by the report's team; the full display
// name is the fallback.
func (ing *Ingester) matchPlayer(ctx context.Context, report InjuryReport) *store.Player {
	if report.LastName != "" {
		candidates, err := ing.players.SearchByName(ctx, report.LastName)
		if err == nil {
			if player := pickMatch(candidates, report.TeamAbbrev); player != nil {
				return player
			}
		}
	}
	if report.PlayerName != "" {
		if player, err := ing.players.GetByName(ctx, report.PlayerName); err == nil {
			return player
		}
	}
	return nil
}

// pickMatch chooses among players sharing a name fragment. A lone hit wins
// outright; several hits need the report's team to break the tie.
func pickMatch(candidates []*store.Player, teamAbbrev string) *store.Player {
	if len(candidates) == 1 {
		return candidates[0]
	}
	if teamAbbrev == "" {
		return nil
	}
	for _, player := range candidates {
		if player.TeamAbbrev.String == teamAbbrev {
			return player
		}
	}
	return nil
}
