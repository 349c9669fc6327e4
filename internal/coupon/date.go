package coupon

import (
	"strings"
	"time"
)

// dateLayouts are tried in order. Month-first comes before day-first, so a
// slash date like 03/04/2025 always reads as March 4.
var dateLayouts = []string{
	"2006-1-2",
	"2006/1/2",
	"1/2/2006",
	"2/1/2006",
}

// ParseDate parses a loosely formatted coupon date. It reports false for
// anything that matches none of the known layouts.
func ParseDate(raw string) (time.Time, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Day truncates t to its calendar date in UTC, keeping t's wall-clock date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
