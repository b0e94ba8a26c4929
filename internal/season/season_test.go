package season

import (
	"testing"
	"time"
)

func TestEncodeDecode(t *testing.T) {
	code := Encode(2023)
	if code != "20232024" {
		t.Fatalf("Encode(2023) = %q, want 20232024", code)
	}

	year, err := Decode(code)
	if err != nil {
		t.Fatalf("Decode(%q): %v", code, err)
	}
	if year != 2023 {
		t.Errorf("Decode(%q) = %d, want 2023", code, year)
	}

	if _, err := Decode("abc"); err == nil {
		t.Error("Decode(abc) should fail")
	}
	if _, err := Decode(""); err == nil {
		t.Error("Decode empty should fail")
	}
}

func TestDisplay(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"20232024", "2023-24"},
		{"20072008", "2007-08"},
		{"bad", "bad"},
	}
	for _, tt := range tests {
		if got := Display(tt.code); got != tt.want {
			t.Errorf("Display(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestCurrentStartYear(t *testing.T) {
	tests := []struct {
		date string
		want int
	}{
		{"2025-09-15", 2025},
		{"2025-12-01", 2025},
		{"2026-02-10", 2025},
		{"2025-08-31", 2024},
	}
	for _, tt := range tests {
		d, _ := time.Parse("2006-01-02", tt.date)
		if got := CurrentStartYear(d); got != tt.want {
			t.Errorf("CurrentStartYear(%s) = %d, want %d", tt.date, got, tt.want)
		}
	}
}

func TestStartDate(t *testing.T) {
	d := StartDate(2023, time.UTC)
	if d.Year() != 2023 || d.Month() != time.October || d.Day() != 1 {
		t.Errorf("StartDate(2023) = %v, want 2023-10-01", d)
	}
}

func TestRange(t *testing.T) {
	years := Range(2007, 2009)
	if len(years) != 3 || years[0] != 2007 || years[2] != 2009 {
		t.Errorf("Range(2007, 2009) = %v", years)
	}
	if got := Range(2010, 2009); got != nil {
		t.Errorf("inverted range should be nil, got %v", got)
	}
}

func TestPending(t *testing.T) {
	pending := Pending(2007, 2010, []string{"2008", "2010"})
	want := []int{2007, 2009}
	if len(pending) != len(want) {
		t.Fatalf("Pending = %v, want %v", pending, want)
	}
	for i := range want {
		if pending[i] != want[i] {
			t.Errorf("Pending[%d] = %d, want %d", i, pending[i], want[i])
		}
	}

	if got := Pending(2007, 2008, []string{"2007", "2008"}); len(got) != 0 {
		t.Errorf("fully completed range should be empty, got %v", got)
	}
}
