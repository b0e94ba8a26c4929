package scheduler

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCatchUpWindowNoCheckpointMidSeason(t *testing.T) {
	today := time.Date(2026, time.January, 15, 9, 30, 0, 0, time.UTC)

	start, end, ok := CatchUpWindow(time.Time{}, false, today)
	if !ok {
		t.Fatal("mid-season cold start should have a window")
	}
	if !start.Equal(day(2026, time.January, 1)) {
		t.Errorf("start = %v, want 14 days back", start)
	}
	if !end.Equal(day(2026, time.January, 14)) {
		t.Errorf("end = %v, want yesterday", end)
	}
}

func TestCatchUpWindowNoCheckpointEarlySeason(t *testing.T) {
	today := day(2025, time.October, 5)

	start, end, ok := CatchUpWindow(time.Time{}, false, today)
	if !ok {
		t.Fatal("early-season cold start should have a window")
	}
	// the cap would reach into September; the season start clips it
	if !start.Equal(day(2025, time.October, 1)) {
		t.Errorf("start = %v, want season start", start)
	}
	if !end.Equal(day(2025, time.October, 4)) {
		t.Errorf("end = %v, want yesterday", end)
	}
}

func TestCatchUpWindowResumesAfterCheckpoint(t *testing.T) {
	today := day(2026, time.January, 15)
	last := time.Date(2026, time.January, 10, 23, 0, 0, 0, time.UTC)

	start, end, ok := CatchUpWindow(last, true, today)
	if !ok {
		t.Fatal("stale checkpoint should have a window")
	}
	if !start.Equal(day(2026, time.January, 11)) {
		t.Errorf("start = %v, want day after checkpoint", start)
	}
	if !end.Equal(day(2026, time.January, 14)) {
		t.Errorf("end = %v, want yesterday", end)
	}
}

func TestCatchUpWindowUpToDate(t *testing.T) {
	today := day(2026, time.January, 15)

	if _, _, ok := CatchUpWindow(day(2026, time.January, 14), true, today); ok {
		t.Error("checkpoint at yesterday means nothing is missing")
	}
	if _, _, ok := CatchUpWindow(today, true, today); ok {
		t.Error("checkpoint at today means nothing is missing")
	}
}
