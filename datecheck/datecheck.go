// Package datecheck validates and classifies observation dates.
package datecheck

import (
	"strings"
	"time"
)

// RecencyWindowYears is the default rolling window separating recent
// from outdated observations.
const RecencyWindowYears = 20

// Layouts accepted for observation dates, tried in order. The
// day-first layout wins over month-first when both parse.
var Layouts = []string{
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
	"2006/01/02",
}

// Parse attempts to parse a raw date string against the accepted
// layouts. RFC3339 timestamps are accepted by their date part.
func Parse(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	for _, layout := range Layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// IsValid reports whether raw parses as an accepted date.
func IsValid(raw string) bool {
	_, ok := Parse(raw)
	return ok
}

// IsRecent reports whether t falls inside the rolling window ending at
// now. The window is inclusive on both ends: with a 20 year window and
// now in 2024, a 2004 date is recent and a 2003 date is outdated.
func IsRecent(t, now time.Time, windowYears int) bool {
	return t.Year() >= now.Year()-windowYears && t.Year() <= now.Year()
}

// OrdinalDays maps a date onto a day count suitable for numeric
// outlier analysis. Dates one day apart differ by exactly 1.
func OrdinalDays(t time.Time) float64 {
	u := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return float64(u.Unix()) / 86400
}
