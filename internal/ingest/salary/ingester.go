package salary

import (
	"context"
	"sort"
	"time"

	"github.com/charmbracelet/log"

	"github.com/halverson/puckcast/internal/store"
	"github.com/halverson/puckcast/internal/store/repository"
)

const teamScrapeDelay = 2 * time.Second

// IngestStats summarizes a salary ingestion pass
type IngestStats struct {
	TeamsProcessed int `json:"teams_processed"`
	Fetched        int `json:"fetched"`
	Matched        int `json:"matched"`
}

// Ingester writes scraped cap hits onto player rows
type Ingester struct {
	scraper *Scraper
	players *repository.PlayerRepository
	logger  *log.Logger
}

// NewIngester creates a salary ingester
func NewIngester(scraper *Scraper, db *store.Database) *Ingester {
	return &Ingester{
		scraper: scraper,
		players: repository.NewPlayerRepository(db),
		logger:  log.WithPrefix("salary"),
	}
}

// IngestAll scrapes every team's cap page with a polite delay between
// requests and updates matching players' cap hits.
func (ing *Ingester) IngestAll(ctx context.Context) (*IngestStats, error) {
	stats := &IngestStats{}

	codes := TeamCodes()
	sort.Strings(codes)

	for i, team := range codes {
		contracts := ing.scraper.FetchTeam(ctx, team)
		stats.Fetched += len(contracts)

		for _, contract := range contracts {
			matched, err := ing.players.UpdateCapHit(ctx, "%"+contract.PlayerName+"%", contract.CapHitCents, 0, "")
			if err != nil {
				return stats, err
			}
			if matched {
				stats.Matched++
			}
		}

		stats.TeamsProcessed++
		if i < len(codes)-1 {
			time.Sleep(teamScrapeDelay)
		}
	}

	ing.logger.Info("salaries ingested",
		"teams", stats.TeamsProcessed, "fetched", stats.Fetched, "matched", stats.Matched)
	return stats, nil
}
