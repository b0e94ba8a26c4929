package scheduler

import (
	"time"

	"github.com/halverson/puckcast/internal/season"
)

// maxCatchUpDays caps how far back a cold start reaches for game logs
const maxCatchUpDays = 14

// CatchUpWindow computes the game-log date range [start, today-1] still
// missing from the store. With no checkpoint the window opens at the
// later of the season start and the catch-up cap; a checkpoint resumes
// the day after it. ok is false when nothing is missing.
func CatchUpWindow(lastIngested time.Time, hasCheckpoint bool, today time.Time) (start, end time.Time, ok bool) {
	today = truncateDay(today)

	if hasCheckpoint {
		start = truncateDay(lastIngested).AddDate(0, 0, 1)
	} else {
		seasonStart := season.StartDate(season.CurrentStartYear(today), today.Location())
		start = today.AddDate(0, 0, -maxCatchUpDays)
		if seasonStart.After(start) {
			start = seasonStart
		}
	}

	end = today.AddDate(0, 0, -1)
	if start.After(end) {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
