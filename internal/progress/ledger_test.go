package progress

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultPath(t *testing.T) {
	// the ledger file lives under the data directory with a fixed name,
	// shared by the server and the backfill command
	want := filepath.Join("data", "ingestion_progress.json")
	if got := DefaultPath("data"); got != want {
		t.Errorf("DefaultPath(\"data\") = %q, want %q", got, want)
	}
}

func TestLoadMissingFile(t *testing.T) {
	l := NewLedger(filepath.Join(t.TempDir(), "progress.json"))

	rec := l.Load()
	if rec.CompletedSeasons == nil {
		t.Fatal("completed seasons should default to empty, not nil")
	}
	if len(rec.CompletedSeasons) != 0 || rec.LastUpdate != "" {
		t.Errorf("missing file should load defaults, got %+v", rec)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	rec := NewLedger(path).Load()
	if rec.CompletedSeasons == nil || len(rec.CompletedSeasons) != 0 {
		t.Errorf("corrupt file should load defaults, got %+v", rec)
	}
}

func TestUpdateRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	l := NewLedger(path)

	err := l.Update(func(rec *Record) {
		rec.LastInjuryUpdate = "2026-01-15T05:00:00Z"
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	// a fresh ledger over the same path sees the write
	rec := NewLedger(path).Load()
	if rec.LastInjuryUpdate != "2026-01-15T05:00:00Z" {
		t.Errorf("marker = %q after reload", rec.LastInjuryUpdate)
	}
}

func TestMarkSeasonCompleteIdempotent(t *testing.T) {
	l := NewLedger(filepath.Join(t.TempDir(), "progress.json"))

	for i := 0; i < 3; i++ {
		if err := l.MarkSeasonComplete("2023"); err != nil {
			t.Fatalf("MarkSeasonComplete: %v", err)
		}
	}
	if err := l.MarkSeasonComplete("2024"); err != nil {
		t.Fatalf("MarkSeasonComplete: %v", err)
	}

	rec := l.Load()
	if len(rec.CompletedSeasons) != 2 {
		t.Fatalf("completed = %v, want exactly [2023 2024]", rec.CompletedSeasons)
	}
	if rec.LastUpdate == "" {
		t.Error("marking a season should stamp last_update")
	}
}

func TestLastGameLogDate(t *testing.T) {
	l := NewLedger(filepath.Join(t.TempDir(), "progress.json"))

	if _, ok := l.Load().LastGameLogDateParsed(); ok {
		t.Fatal("unset marker should parse as absent")
	}

	d := time.Date(2026, time.January, 14, 13, 45, 0, 0, time.UTC)
	if err := l.SetLastGameLogDate(d); err != nil {
		t.Fatalf("SetLastGameLogDate: %v", err)
	}

	got, ok := l.Load().LastGameLogDateParsed()
	if !ok {
		t.Fatal("marker should parse after set")
	}
	if got.Format("2006-01-02") != "2026-01-14" {
		t.Errorf("parsed date = %v, want 2026-01-14 (time of day dropped)", got)
	}
}

func TestParseTimestamp(t *testing.T) {
	if _, ok := ParseTimestamp(""); ok {
		t.Error("empty marker should not parse")
	}
	if _, ok := ParseTimestamp("yesterday"); ok {
		t.Error("malformed marker should not parse")
	}

	ts, ok := ParseTimestamp("2026-01-15T05:00:00Z")
	if !ok || ts.Hour() != 5 {
		t.Errorf("ParseTimestamp = %v,%v", ts, ok)
	}
}
