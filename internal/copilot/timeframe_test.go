package copilot

import (
	"testing"
	"time"
)

func TestResolveGameDate(t *testing.T) {
	// a Thursday
	now := time.Date(2026, time.March, 5, 19, 30, 0, 0, time.UTC)

	tests := []struct {
		timeframe string
		want      string
	}{
		{"", "2026-03-05"},
		{"null", "2026-03-05"},
		{"tonight", "2026-03-05"},
		{"Today", "2026-03-05"},
		{"tomorrow", "2026-03-06"},
		{"saturday", "2026-03-07"},
		{"friday", "2026-03-06"},
		// same weekday as now means next week, not today
		{"thursday", "2026-03-12"},
		{"March 10", "2026-03-10"},
		{"march 10th", "2026-03-10"},
		{"Mar 10, 2027", "2027-03-10"},
		{"January 3rd 2027", "2027-01-03"},
		// unparseable input falls back to today
		{"playoffs", "2026-03-05"},
		// nonexistent calendar dates fall back to today instead of
		// normalizing into the next month
		{"february 30", "2026-03-05"},
		{"april 31", "2026-03-05"},
		{"february 28", "2026-02-28"},
	}
	for _, tt := range tests {
		got := ResolveGameDate(tt.timeframe, now)
		if got.Format("2006-01-02") != tt.want {
			t.Errorf("ResolveGameDate(%q) = %s, want %s", tt.timeframe, got.Format("2006-01-02"), tt.want)
		}
		if got.Hour() != 0 || got.Minute() != 0 {
			t.Errorf("ResolveGameDate(%q) should be midnight, got %v", tt.timeframe, got)
		}
	}
}

func TestDisplayDate(t *testing.T) {
	d := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)
	if got := DisplayDate(d); got != "March 5, 2026" {
		t.Errorf("DisplayDate = %q", got)
	}
}
