// Package season handles NHL season code conventions. Internally a season is
// the 8-digit concatenation of its start and end years ("20232024"); the
// advanced-stats CSV source addresses seasons by the 4-digit start year.
package season

import (
	"fmt"
	"strconv"
	"time"
)

// FirstCSVSeason is the earliest season the advanced-stats source covers
const FirstCSVSeason = 2007

// Encode builds the 8-digit season code from a start year
func Encode(startYear int) string {
	return fmt.Sprintf("%d%d", startYear, startYear+1)
}

// Decode extracts the start year from an 8-digit season code
func Decode(code string) (int, error) {
	if len(code) < 4 {
		return 0, fmt.Errorf("invalid season code: %q", code)
	}
	year, err := strconv.Atoi(code[:4])
	if err != nil {
		return 0, fmt.Errorf("invalid season code: %q", code)
	}
	return year, nil
}

// Display renders an 8-digit code as "2023-24"
func Display(code string) string {
	if len(code) != 8 {
		return code
	}
	return code[:4] + "-" + code[6:8]
}

// CurrentStartYear returns the start year of the season in progress at t.
// A season starts in October; before September the prior year's season
// is still current.
func CurrentStartYear(t time.Time) int {
	if t.Month() >= time.September {
		return t.Year()
	}
	return t.Year() - 1
}

// Current returns the 8-digit code for the season in progress at t
func Current(t time.Time) string {
	return Encode(CurrentStartYear(t))
}

// StartDate returns October 1 of a season's start year in the local calendar
func StartDate(startYear int, loc *time.Location) time.Time {
	return time.Date(startYear, time.October, 1, 0, 0, 0, 0, loc)
}

// Range lists the start years in [startYear, endYear]
func Range(startYear, endYear int) []int {
	if endYear < startYear {
		return nil
	}
	years := make([]int, 0, endYear-startYear+1)
	for y := startYear; y <= endYear; y++ {
		years = append(years, y)
	}
	return years
}

// Pending filters a year range down to those not yet marked complete.
// Completed entries use the 4-digit start-year form.
func Pending(startYear, endYear int, completed []string) []int {
	done := make(map[int]bool, len(completed))
	for _, c := range completed {
		if y, err := strconv.Atoi(c); err == nil {
			done[y] = true
		}
	}

	var pending []int
	for _, y := range Range(startYear, endYear) {
		if !done[y] {
			pending = append(pending, y)
		}
	}
	return pending
}
