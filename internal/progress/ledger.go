// Package progress persists ingestion checkpoints to a small JSON file so
// catch-up logic survives restarts.
package progress

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const dateLayout = "2006-01-02"

// Filename is the ledger's name under the data directory
const Filename = "ingestion_progress.json"

// DefaultPath locates the ledger file under a data directory
func DefaultPath(dataDir string) string {
	return filepath.Join(dataDir, Filename)
}

// Record is the on-disk shape of the ledger. Timestamps are ISO-8601;
// absent markers are empty strings.
type Record struct {
	CompletedSeasons        []string `json:"completed_seasons"`
	LastUpdate              string   `json:"last_update,omitempty"`
	CurrentSeasonLastUpdate string   `json:"current_season_last_update,omitempty"`
	LastGameLogDate         string   `json:"last_game_log_date,omitempty"`
	LastInjuryUpdate        string   `json:"last_injury_update,omitempty"`
	LastTeamStatsUpdate     string   `json:"last_team_stats_update,omitempty"`
	LastRosterSync          string   `json:"last_roster_sync,omitempty"`
	LastMoneypuckUpdate     string   `json:"last_moneypuck_update,omitempty"`
	LastSalaryUpdate        string   `json:"last_salary_update,omitempty"`
}

// Ledger is a file-backed progress store. All methods are safe for
// concurrent use; writes are full-file rewrites via rename.
type Ledger struct {
	mu   sync.Mutex
	path string
}

// NewLedger creates a ledger backed by the given file path
func NewLedger(path string) *Ledger {
	return &Ledger{path: path}
}

// Load reads the ledger, returning a defaulted record when the file is
// missing or unreadable.
func (l *Ledger) Load() Record {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load()
}

func (l *Ledger) load() Record {
	rec := Record{CompletedSeasons: []string{}}

	data, err := os.ReadFile(l.path)
	if err != nil {
		return rec
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{CompletedSeasons: []string{}}
	}
	if rec.CompletedSeasons == nil {
		rec.CompletedSeasons = []string{}
	}
	return rec
}

// Update applies fn to the current record and persists the result atomically
func (l *Ledger) Update(fn func(*Record)) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec := l.load()
	fn(&rec)
	return l.save(rec)
}

func (l *Ledger) save(rec Record) error {
	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating ledger dir: %w", err)
		}
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding ledger: %w", err)
	}

	tmp := l.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing ledger: %w", err)
	}
	if err := os.Rename(tmp, l.path); err != nil {
		return fmt.Errorf("replacing ledger: %w", err)
	}
	return nil
}

// MarkSeasonComplete appends a season start year to completed_seasons
func (l *Ledger) MarkSeasonComplete(startYear string) error {
	return l.Update(func(rec *Record) {
		for _, s := range rec.CompletedSeasons {
			if s == startYear {
				rec.LastUpdate = time.Now().Format(time.RFC3339)
				return
			}
		}
		rec.CompletedSeasons = append(rec.CompletedSeasons, startYear)
		rec.LastUpdate = time.Now().Format(time.RFC3339)
	})
}

// SetTimestamp writes time.Now into the marker selected by set
func (l *Ledger) SetTimestamp(set func(*Record, string)) error {
	now := time.Now().Format(time.RFC3339)
	return l.Update(func(rec *Record) { set(rec, now) })
}

// SetLastGameLogDate records the most recent fully ingested game-log date
func (l *Ledger) SetLastGameLogDate(d time.Time) error {
	return l.Update(func(rec *Record) {
		rec.LastGameLogDate = d.Format(dateLayout)
	})
}

// LastGameLogDate parses the game-log marker; ok is false when unset or
// malformed.
func (rec Record) LastGameLogDateParsed() (time.Time, bool) {
	return parseDate(rec.LastGameLogDate)
}

// ParseTimestamp parses an RFC3339 marker value; ok is false when unset or
// malformed.
func ParseTimestamp(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func parseDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
