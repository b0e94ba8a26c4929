package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/halverson/puckcast/internal/ingest/espn"
	"github.com/halverson/puckcast/internal/ingest/nhl"
	"github.com/halverson/puckcast/internal/ingest/salary"
	"github.com/halverson/puckcast/internal/progress"
)

type fakeLeague struct {
	scheduleRanges int
	activeLogCalls int
	scoreRefreshes int
}

func (f *fakeLeague) IngestScheduleDate(context.Context, time.Time) (int, error) { return 1, nil }
func (f *fakeLeague) IngestScheduleRange(context.Context, time.Time, time.Time) (int, error) {
	f.scheduleRanges++
	return 3, nil
}
func (f *fakeLeague) IngestActivePlayerLogs(context.Context, string) (int, int, error) {
	f.activeLogCalls++
	return 40, 120, nil
}
func (f *fakeLeague) RefreshScores(context.Context, time.Time) (int, error) {
	f.scoreRefreshes++
	return 2, nil
}
func (f *fakeLeague) IngestTeams(context.Context) (int, error)               { return 32, nil }
func (f *fakeLeague) IngestTeamStats(context.Context, string) (int, error)   { return 32, nil }
func (f *fakeLeague) IngestGoalieStats(context.Context, string) (int, error) { return 60, nil }
func (f *fakeLeague) SyncRosters(context.Context, string) (*nhl.RosterSyncStats, error) {
	return &nhl.RosterSyncStats{TeamsProcessed: 32}, nil
}

type fakeAdvanced struct{ seasons []int }

func (f *fakeAdvanced) IngestSeason(_ context.Context, year int) (int, error) {
	f.seasons = append(f.seasons, year)
	return 500, nil
}

type fakeInjuries struct{ calls int }

func (f *fakeInjuries) Ingest(context.Context) (*espn.IngestStats, error) {
	f.calls++
	return &espn.IngestStats{Fetched: 10, Matched: 8, Asserted: 8}, nil
}

type fakeSalaries struct{}

func (f *fakeSalaries) IngestAll(context.Context) (*salary.IngestStats, error) {
	return &salary.IngestStats{TeamsProcessed: 32}, nil
}

type fakeCounter struct{ rows int }

func (f *fakeCounter) Count(context.Context) (int, error) { return f.rows, nil }

func newTestOrchestrator(t *testing.T, league *fakeLeague, injuries *fakeInjuries, now time.Time) *Orchestrator {
	t.Helper()
	return &Orchestrator{
		ledger:    progress.NewLedger(progress.DefaultPath(t.TempDir())),
		nhl:       league,
		moneypuck: &fakeAdvanced{},
		espn:      injuries,
		salary:    &fakeSalaries{},
		stats:     &fakeCounter{rows: 1000},
		config:    DefaultConfig(),
		logger:    log.WithPrefix("scheduler"),
		now:       func() time.Time { return now },
	}
}

func TestRunDailyUpdateReingestsLogsWhenCheckpointCurrent(t *testing.T) {
	now := time.Date(2026, time.January, 15, 5, 0, 0, 0, time.UTC)
	league := &fakeLeague{}
	o := newTestOrchestrator(t, league, &fakeInjuries{}, now)

	// a checkpoint at yesterday means startup catch-up would skip; the
	// daily job must not
	o.ledger.SetLastGameLogDate(now.AddDate(0, 0, -1))

	results, err := o.RunDailyUpdate(context.Background())
	if err != nil {
		t.Fatalf("RunDailyUpdate: %v", err)
	}
	if league.activeLogCalls != 1 {
		t.Errorf("game logs ingested %d times, want 1", league.activeLogCalls)
	}
	logs, ok := results["game_logs"].(map[string]any)
	if !ok || logs["players"] != 40 || logs["logs"] != 120 {
		t.Errorf("game_logs result = %v", results["game_logs"])
	}

	got, ok := o.ledger.Load().LastGameLogDateParsed()
	if !ok || got.Format("2006-01-02") != "2026-01-14" {
		t.Errorf("checkpoint = %v (%v), want 2026-01-14", got, ok)
	}
}

func TestRunDailyUpdateLatch(t *testing.T) {
	now := time.Date(2026, time.January, 15, 5, 0, 0, 0, time.UTC)
	o := newTestOrchestrator(t, &fakeLeague{}, &fakeInjuries{}, now)

	o.running.Store(true)
	if _, err := o.RunDailyUpdate(context.Background()); err != ErrAlreadyRunning {
		t.Errorf("RunDailyUpdate with latch held = %v, want ErrAlreadyRunning", err)
	}
}

func TestRunStartupUpdatesSkipsFreshSources(t *testing.T) {
	now := time.Date(2026, time.January, 15, 9, 0, 0, 0, time.UTC)
	league := &fakeLeague{}
	injuries := &fakeInjuries{}
	o := newTestOrchestrator(t, league, injuries, now)

	o.ledger.Update(func(r *progress.Record) {
		r.LastInjuryUpdate = now.Add(-time.Hour).Format(time.RFC3339)
		r.LastTeamStatsUpdate = now.Add(-24 * time.Hour).Format(time.RFC3339)
	})

	results, err := o.RunStartupUpdates(context.Background())
	if err != nil {
		t.Fatalf("RunStartupUpdates: %v", err)
	}
	if results["injuries"] != skipRecentlyUpdated {
		t.Errorf("injuries = %v, want %q", results["injuries"], skipRecentlyUpdated)
	}
	if injuries.calls != 0 {
		t.Errorf("injury ingest ran %d times despite a fresh marker", injuries.calls)
	}
	// team stats marker is stale, so that refresh runs
	if _, ok := results["team_stats"].(map[string]any); !ok {
		t.Errorf("team_stats = %v, want a refresh result", results["team_stats"])
	}
}

func TestStatusReportsCheckpoints(t *testing.T) {
	now := time.Date(2026, time.January, 15, 9, 0, 0, 0, time.UTC)
	o := newTestOrchestrator(t, &fakeLeague{}, &fakeInjuries{}, now)
	o.ledger.SetLastGameLogDate(now.AddDate(0, 0, -1))

	status := o.Status()
	if status["running"] != false {
		t.Errorf("running = %v", status["running"])
	}
	if status["last_game_log_date"] != "2026-01-14" {
		t.Errorf("last_game_log_date = %v", status["last_game_log_date"])
	}
}
