// Package scheduler orchestrates the ingestion jobs: startup catch-up,
// the daily refresh and on-demand bulk seeding. One job runs at a time;
// individual task failures are recorded and never abort the rest of a
// job.
package scheduler

import (
	"context"
	"errors"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/halverson/puckcast/internal/ingest/espn"
	"github.com/halverson/puckcast/internal/ingest/moneypuck"
	"github.com/halverson/puckcast/internal/ingest/nhl"
	"github.com/halverson/puckcast/internal/ingest/salary"
	"github.com/halverson/puckcast/internal/progress"
	"github.com/halverson/puckcast/internal/publisher"
	"github.com/halverson/puckcast/internal/season"
	"github.com/halverson/puckcast/internal/store"
	"github.com/halverson/puckcast/internal/store/repository"
)

// Freshness thresholds. Sources refreshed within their window are
// skipped with a "recently_updated" result.
const (
	injuryMaxAge    = 4 * time.Hour
	teamStatsMaxAge = 12 * time.Hour
	moneypuckMaxAge = 12 * time.Hour
	rosterMaxAge    = 24 * time.Hour

	skipRecentlyUpdated = "recently_updated"

	// below this row count the store is treated as empty and seeded
	seedMinSeasonRows = 100
)

// ErrAlreadyRunning reports that another update job holds the latch
var ErrAlreadyRunning = errors.New("already_running")

// Notifier receives job lifecycle events for client fanout
type Notifier interface {
	BroadcastJSON(v any)
}

// Narrow views of the ingesters, so jobs can be exercised against fakes
type leagueIngester interface {
	IngestScheduleDate(ctx context.Context, date time.Time) (int, error)
	IngestScheduleRange(ctx context.Context, start, end time.Time) (int, error)
	IngestActivePlayerLogs(ctx context.Context, seasonCode string) (int, int, error)
	RefreshScores(ctx context.Context, date time.Time) (int, error)
	IngestTeams(ctx context.Context) (int, error)
	IngestTeamStats(ctx context.Context, seasonCode string) (int, error)
	IngestGoalieStats(ctx context.Context, seasonCode string) (int, error)
	SyncRosters(ctx context.Context, seasonCode string) (*nhl.RosterSyncStats, error)
}

type advancedStatsIngester interface {
	IngestSeason(ctx context.Context, year int) (int, error)
}

type injuryIngester interface {
	Ingest(ctx context.Context) (*espn.IngestStats, error)
}

type capHitIngester interface {
	IngestAll(ctx context.Context) (*salary.IngestStats, error)
}

type seasonStatCounter interface {
	Count(ctx context.Context) (int, error)
}

// Config holds scheduler configuration
type Config struct {
	DailyUpdateHour   int
	RateLimitDelay    time.Duration
	BulkStartYear     int
	EnableDailyUpdate bool
}

// DefaultConfig returns the standard scheduler configuration
func DefaultConfig() *Config {
	return &Config{
		DailyUpdateHour:   5,
		RateLimitDelay:    3 * time.Second,
		BulkStartYear:     season.FirstCSVSeason,
		EnableDailyUpdate: true,
	}
}

// Orchestrator coordinates all ingestion jobs
type Orchestrator struct {
	ledger    *progress.Ledger
	nhl       leagueIngester
	moneypuck advancedStatsIngester
	espn      injuryIngester
	salary    capHitIngester
	stats     seasonStatCounter
	events    *publisher.EventPublisher
	notifier  Notifier
	config    *Config
	logger    *log.Logger
	running   atomic.Bool
	cancel    context.CancelFunc
	now       func() time.Time
}

// NewOrchestrator creates a scheduler. events and notifier may be nil.
func NewOrchestrator(db *store.Database, ledger *progress.Ledger, dataDir string, events *publisher.EventPublisher, notifier Notifier, config *Config) *Orchestrator {
	if config == nil {
		config = DefaultConfig()
	}

	return &Orchestrator{
		ledger:    ledger,
		nhl:       nhl.NewIngester(nhl.NewClient(), db),
		moneypuck: moneypuck.NewIngester(moneypuck.NewClient(dataDir), db),
		espn:      espn.NewIngester(espn.NewClient(), db),
		salary:    salary.NewIngester(salary.NewScraper(), db),
		stats:     repository.NewStatRepository(db),
		events:    events,
		notifier:  notifier,
		config:    config,
		logger:    log.WithPrefix("scheduler"),
		now:       time.Now,
	}
}

// Start blocks running the daily refresh loop until ctx is cancelled
func (o *Orchestrator) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	if !o.config.EnableDailyUpdate {
		<-ctx.Done()
		return
	}

	o.logger.Info("daily update scheduled", "hour", o.config.DailyUpdateHour)

	for {
		now := o.now()
		next := time.Date(now.Year(), now.Month(), now.Day(), o.config.DailyUpdateHour, 0, 0, 0, now.Location())
		if !now.Before(next) {
			next = next.AddDate(0, 0, 1)
		}
		o.logger.Info("next daily update", "at", next.Format("2006-01-02 15:04"))

		select {
		case <-ctx.Done():
			o.logger.Info("scheduler stopped")
			return
		case <-time.After(time.Until(next)):
			if _, err := o.RunDailyUpdate(ctx); err != nil && !errors.Is(err, ErrAlreadyRunning) {
				o.logger.Error("daily update failed", "error", err)
			}
		}
	}
}

// Stop cancels the scheduler loop
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
}

// Running reports whether an update job currently holds the latch
func (o *Orchestrator) Running() bool {
	return o.running.Load()
}

// Status summarizes scheduler state and ingestion checkpoints
func (o *Orchestrator) Status() map[string]any {
	rec := o.ledger.Load()
	return map[string]any{
		"running":            o.running.Load(),
		"daily_update_hour":  o.config.DailyUpdateHour,
		"completed_seasons":  rec.CompletedSeasons,
		"last_update":        rec.LastUpdate,
		"last_game_log_date": rec.LastGameLogDate,
		"last_injury_update": rec.LastInjuryUpdate,
		"last_roster_sync":   rec.LastRosterSync,
	}
}

// RunStartupUpdates brings a freshly started instance current: seed an
// empty store, refresh today's schedule, catch up game logs, then
// refresh the staleness-gated sources.
func (o *Orchestrator) RunStartupUpdates(ctx context.Context) (map[string]any, error) {
	if !o.running.CompareAndSwap(false, true) {
		return nil, ErrAlreadyRunning
	}
	defer o.running.Store(false)

	o.announce(ctx, "startup_updates", "started", nil)
	results := map[string]any{}
	today := truncateDay(o.now())
	seasonCode := season.Current(today)

	o.seedIfEmpty(ctx, results)

	if count, err := o.nhl.IngestScheduleDate(ctx, today); err != nil {
		results["schedule_today"] = errResult(err)
	} else {
		results["schedule_today"] = map[string]any{"games": count}
	}

	results["game_logs"] = o.catchUpGameLogs(ctx, today, seasonCode)

	rec := o.ledger.Load()

	if fresh(rec.LastInjuryUpdate, injuryMaxAge, o.now()) {
		results["injuries"] = skipRecentlyUpdated
	} else {
		results["injuries"] = o.refreshInjuries(ctx)
	}

	if fresh(rec.LastTeamStatsUpdate, teamStatsMaxAge, o.now()) {
		results["team_stats"] = skipRecentlyUpdated
	} else {
		results["team_stats"] = o.refreshTeamAndGoalieStats(ctx, seasonCode)
	}

	if fresh(rec.LastRosterSync, rosterMaxAge, o.now()) {
		results["rosters"] = skipRecentlyUpdated
	} else {
		results["rosters"] = o.refreshRosters(ctx, seasonCode)
	}

	if fresh(rec.LastMoneypuckUpdate, moneypuckMaxAge, o.now()) {
		results["advanced_stats"] = skipRecentlyUpdated
	} else {
		results["advanced_stats"] = o.refreshAdvancedStats(ctx, today)
	}

	o.ledger.SetTimestamp(func(r *progress.Record, ts string) { r.LastUpdate = ts })
	o.announce(ctx, "startup_updates", "completed", results)
	return results, nil
}

// RunDailyUpdate refreshes every source unconditionally: the week's
// schedule, yesterday's scores, a full game-log re-ingest and all
// ancillary data.
func (o *Orchestrator) RunDailyUpdate(ctx context.Context) (map[string]any, error) {
	if !o.running.CompareAndSwap(false, true) {
		return nil, ErrAlreadyRunning
	}
	defer o.running.Store(false)

	o.announce(ctx, "daily_update", "started", nil)
	results := map[string]any{}
	today := truncateDay(o.now())
	seasonCode := season.Current(today)

	if count, err := o.nhl.IngestScheduleRange(ctx, today, today.AddDate(0, 0, 7)); err != nil {
		results["schedule"] = errResult(err)
	} else {
		results["schedule"] = map[string]any{"games": count}
	}

	if count, err := o.nhl.RefreshScores(ctx, today.AddDate(0, 0, -1)); err != nil {
		results["scores"] = errResult(err)
	} else {
		results["scores"] = map[string]any{"games": count}
	}

	if players, logs, err := o.nhl.IngestActivePlayerLogs(ctx, seasonCode); err != nil {
		results["game_logs"] = errResult(err)
	} else {
		results["game_logs"] = map[string]any{"players": players, "logs": logs}
		o.ledger.SetLastGameLogDate(today.AddDate(0, 0, -1))
	}

	results["injuries"] = o.refreshInjuries(ctx)
	results["team_stats"] = o.refreshTeamAndGoalieStats(ctx, seasonCode)
	results["rosters"] = o.refreshRosters(ctx, seasonCode)
	results["advanced_stats"] = o.refreshAdvancedStats(ctx, today)

	o.ledger.SetTimestamp(func(r *progress.Record, ts string) {
		r.LastUpdate = ts
		r.CurrentSeasonLastUpdate = ts
	})
	o.announce(ctx, "daily_update", "completed", results)
	return results, nil
}

// RunSalaryUpdate scrapes cap hits for every team
func (o *Orchestrator) RunSalaryUpdate(ctx context.Context) (map[string]any, error) {
	if !o.running.CompareAndSwap(false, true) {
		return nil, ErrAlreadyRunning
	}
	defer o.running.Store(false)

	o.announce(ctx, "salary_update", "started", nil)

	stats, err := o.salary.IngestAll(ctx)
	if err != nil {
		o.announceFailed(ctx, "salary_update", err)
		return nil, err
	}

	o.ledger.SetTimestamp(func(r *progress.Record, ts string) { r.LastSalaryUpdate = ts })

	results := map[string]any{
		"teams":   stats.TeamsProcessed,
		"fetched": stats.Fetched,
		"matched": stats.Matched,
	}
	o.announce(ctx, "salary_update", "completed", results)
	return results, nil
}

// RunBulkSeed ingests advanced stats for every season not yet marked
// complete, oldest first, pausing between seasons to stay polite.
func (o *Orchestrator) RunBulkSeed(ctx context.Context) (map[string]any, error) {
	if !o.running.CompareAndSwap(false, true) {
		return nil, ErrAlreadyRunning
	}
	defer o.running.Store(false)

	o.announce(ctx, "bulk_seed", "started", nil)
	results := map[string]any{}

	if count, err := o.nhl.IngestTeams(ctx); err != nil {
		results["teams"] = errResult(err)
	} else {
		results["teams"] = map[string]any{"teams": count}
	}

	rec := o.ledger.Load()
	currentYear := season.CurrentStartYear(o.now())
	pending := season.Pending(o.config.BulkStartYear, currentYear, rec.CompletedSeasons)

	seasons := map[string]any{}
	for i, year := range pending {
		select {
		case <-ctx.Done():
			results["seasons"] = seasons
			o.announceFailed(ctx, "bulk_seed", ctx.Err())
			return results, ctx.Err()
		default:
		}

		key := season.Encode(year)
		count, err := o.moneypuck.IngestSeason(ctx, year)
		if err != nil {
			seasons[key] = errResult(err)
			continue
		}
		seasons[key] = map[string]any{"players": count}
		o.ledger.MarkSeasonComplete(strconv.Itoa(year))

		if i < len(pending)-1 {
			time.Sleep(o.config.RateLimitDelay)
		}
	}
	results["seasons"] = seasons

	o.announce(ctx, "bulk_seed", "completed", results)
	return results, nil
}

// seedIfEmpty bulk-loads the current season when the store has no
// meaningful stat coverage yet.
func (o *Orchestrator) seedIfEmpty(ctx context.Context, results map[string]any) {
	count, err := o.stats.Count(ctx)
	if err != nil {
		results["seed"] = errResult(err)
		return
	}
	if count >= seedMinSeasonRows {
		return
	}

	o.logger.Info("store looks empty, seeding current season", "rows", count)
	year := season.CurrentStartYear(o.now())

	if teams, err := o.nhl.IngestTeams(ctx); err != nil {
		results["seed"] = errResult(err)
	} else if players, err := o.moneypuck.IngestSeason(ctx, year); err != nil {
		results["seed"] = errResult(err)
	} else {
		results["seed"] = map[string]any{"teams": teams, "players": players}
	}
}

// catchUpGameLogs fills the schedule and game-log gap since the last
// checkpoint, then advances the checkpoint to yesterday.
func (o *Orchestrator) catchUpGameLogs(ctx context.Context, today time.Time, seasonCode string) map[string]any {
	rec := o.ledger.Load()
	last, has := rec.LastGameLogDateParsed()

	start, end, ok := CatchUpWindow(last, has, today)
	if !ok {
		return map[string]any{"status": "up_to_date"}
	}

	result := map[string]any{
		"from": start.Format("2006-01-02"),
		"to":   end.Format("2006-01-02"),
	}

	if count, err := o.nhl.IngestScheduleRange(ctx, start, end); err != nil {
		result["schedule_error"] = err.Error()
	} else {
		result["games"] = count
	}

	players, logs, err := o.nhl.IngestActivePlayerLogs(ctx, seasonCode)
	if err != nil {
		result["error"] = err.Error()
		return result
	}
	result["players"] = players
	result["logs"] = logs

	o.ledger.SetLastGameLogDate(end)
	return result
}

func (o *Orchestrator) refreshInjuries(ctx context.Context) any {
	stats, err := o.espn.Ingest(ctx)
	if err != nil {
		return errResult(err)
	}
	o.ledger.SetTimestamp(func(r *progress.Record, ts string) { r.LastInjuryUpdate = ts })
	return map[string]any{
		"fetched":  stats.Fetched,
		"matched":  stats.Matched,
		"asserted": stats.Asserted,
	}
}

func (o *Orchestrator) refreshTeamAndGoalieStats(ctx context.Context, seasonCode string) any {
	result := map[string]any{}

	teams, err := o.nhl.IngestTeamStats(ctx, seasonCode)
	if err != nil {
		result["team_error"] = err.Error()
	} else {
		result["teams"] = teams
	}

	goalies, err := o.nhl.IngestGoalieStats(ctx, seasonCode)
	if err != nil {
		result["goalie_error"] = err.Error()
		return result
	}
	result["goalies"] = goalies

	o.ledger.SetTimestamp(func(r *progress.Record, ts string) { r.LastTeamStatsUpdate = ts })
	return result
}

func (o *Orchestrator) refreshRosters(ctx context.Context, seasonCode string) any {
	stats, err := o.nhl.SyncRosters(ctx, seasonCode)
	if err != nil {
		return errResult(err)
	}
	o.ledger.SetTimestamp(func(r *progress.Record, ts string) { r.LastRosterSync = ts })
	return map[string]any{
		"teams":     stats.TeamsProcessed,
		"updated":   stats.PlayersUpdated,
		"not_found": stats.PlayersNotFound,
	}
}

func (o *Orchestrator) refreshAdvancedStats(ctx context.Context, today time.Time) any {
	year := season.CurrentStartYear(today)
	count, err := o.moneypuck.IngestSeason(ctx, year)
	if err != nil {
		return errResult(err)
	}
	o.ledger.SetTimestamp(func(r *progress.Record, ts string) { r.LastMoneypuckUpdate = ts })
	return map[string]any{"players": count}
}

// announce publishes a job lifecycle event to the stream and websocket
func (o *Orchestrator) announce(ctx context.Context, job, phase string, detail map[string]any) {
	switch phase {
	case "started":
		o.events.JobStarted(ctx, job)
	case "completed":
		o.events.JobCompleted(ctx, job, detail)
	}
	if o.notifier != nil {
		o.notifier.BroadcastJSON(map[string]any{
			"job":    job,
			"phase":  phase,
			"detail": detail,
		})
	}
	o.logger.Info("job "+phase, "job", job)
}

func (o *Orchestrator) announceFailed(ctx context.Context, job string, err error) {
	o.events.JobFailed(ctx, job, err)
	if o.notifier != nil {
		o.notifier.BroadcastJSON(map[string]any{
			"job":   job,
			"phase": "failed",
			"error": err.Error(),
		})
	}
	o.logger.Error("job failed", "job", job, "error", err)
}

// fresh reports whether a ledger marker is newer than maxAge
func fresh(marker string, maxAge time.Duration, now time.Time) bool {
	t, ok := progress.ParseTimestamp(marker)
	return ok && now.Sub(t) < maxAge
}

func errResult(err error) map[string]any {
	return map[string]any{"error": err.Error()}
}
