package copilot

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

var monthNames = map[string]time.Month{
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

var monthDayPattern = regexp.MustCompile(`(\w+)\s+(\d{1,2})(?:st|nd|rd|th)?(?:,?\s*(\d{4}))?`)

// ResolveGameDate turns a classified timeframe into a calendar date.
// Empty, "tonight" and "today" mean today; weekday names mean the next
// strictly future occurrence.
func ResolveGameDate(timeframe string, now time.Time) time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	tf := strings.ToLower(strings.TrimSpace(timeframe))
	switch tf {
	case "", "null", "tonight", "today":
		return today
	case "tomorrow":
		return today.AddDate(0, 0, 1)
	}

	if wd, ok := weekdayNames[tf]; ok {
		days := int(wd-today.Weekday()+7) % 7
		if days == 0 {
			days = 7
		}
		return today.AddDate(0, 0, days)
	}

	if m := monthDayPattern.FindStringSubmatch(tf); m != nil {
		if month, ok := monthNames[strings.ToLower(m[1])]; ok {
			day, err := strconv.Atoi(m[2])
			if err == nil && day >= 1 && day <= 31 {
				year := today.Year()
				if m[3] != "" {
					year, _ = strconv.Atoi(m[3])
				}
				d := time.Date(year, month, day, 0, 0, 0, 0, now.Location())
				// time.Date normalizes overflow ("february 30" becomes
				// March 2); only a round-tripping date is real
				if d.Year() == year && d.Month() == month && d.Day() == day {
					return d
				}
			}
		}
	}

	return today
}

// DisplayDate renders a date the way answers quote it, e.g. "March 5, 2026"
func DisplayDate(t time.Time) string {
	return t.Format("January 2, 2006")
}
