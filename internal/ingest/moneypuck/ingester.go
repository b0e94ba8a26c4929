package moneypuck

import (
	"context"
	"database/sql"

	"github.com/charmbracelet/log"

	"github.com/halverson/puckcast/internal/season"
	"github.com/halverson/puckcast/internal/store"
	"github.com/halverson/puckcast/internal/store/repository"
)

// Ingester writes advanced stat seasons through the store gateway
type Ingester struct {
	client  *Client
	players *repository.PlayerRepository
	stats   *repository.StatRepository
	logger  *log.Logger
}

// NewIngester creates an advanced stats ingester
func NewIngester(client *Client, db *store.Database) *Ingester {
	return &Ingester{
		client:  client,
		players: repository.NewPlayerRepository(db),
		stats:   repository.NewStatRepository(db),
		logger:  log.WithPrefix("moneypuck"),
	}
}

// IngestSeason downloads and upserts one season of skater stats, creating
// minimal player rows for skaters the store has not seen. Returns the number
// of stat rows written.
func (ing *Ingester) IngestSeason(ctx context.Context, year int) (int, error) {
	data, err := ing.client.DownloadSeason(ctx, year)
	if err != nil {
		return 0, err
	}

	records, err := ParseSkaters(data)
	if err != nil {
		return 0, err
	}

	seasonCode := season.Encode(year)
	count := 0
	for _, rec := range records {
		playerID, err := ing.players.InsertIfMissing(ctx, rec.NHLPlayerID, rec.Name, rec.Team)
		if err != nil {
			ing.logger.Warn("player insert failed", "player", rec.NHLPlayerID, "error", err)
			continue
		}

		stat := &store.SeasonStat{
			PlayerID:      playerID,
			Season:        seasonCode,
			TeamAbbrev:    sql.NullString{String: rec.Team, Valid: rec.Team != ""},
			GamesPlayed:   rec.GamesPlayed,
			Goals:         rec.Goals,
			Assists:       rec.Assists,
			Points:        rec.Points,
			Shots:         rec.Shots,
			TOIPerGame:    sql.NullFloat64{Float64: rec.TOIPerGame, Valid: true},
			XG:            sql.NullFloat64{Float64: rec.XG, Valid: true},
			XGPer60:       sql.NullFloat64{Float64: rec.XGPer60, Valid: true},
			CorsiForPct:   sql.NullFloat64{Float64: rec.CorsiForPct, Valid: true},
			FenwickForPct: sql.NullFloat64{Float64: rec.FenwickForPct, Valid: true},
		}
		if err := ing.stats.Upsert(ctx, stat); err != nil {
			ing.logger.Warn("stat upsert failed", "player", rec.NHLPlayerID, "error", err)
			continue
		}
		count++
	}

	ing.logger.Info("season ingested", "year", year, "records", count)
	return count, nil
}
