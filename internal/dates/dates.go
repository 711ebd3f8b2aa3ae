// Package dates provides month-end date normalization and the tolerant
// date parsing shared by all pipeline stages. Every date key in the
// pipeline is a month-end calendar date in UTC.
package dates

import (
	"fmt"
	"strings"
	"time"
)

// ISO is the canonical on-disk date layout for all pipeline artifacts.
const ISO = "2006-01-02"

// supported input layouts, tried in order
var layouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"2006-01-02 15:04:05",
	"20060102",
	"Jan 2, 2006",
}

// Parse converts a raw date string into a time.Time, trying the supported
// layouts in order. The result keeps the parsed calendar day; callers that
// need a pipeline key should pass it through MonthEnd.
func Parse(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("empty date string")
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %q", value)
}

// MonthEnd normalizes t to the last calendar day of its month, at midnight
// UTC. Applying MonthEnd to a date that is already a month-end returns the
// same date.
func MonthEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC)
}

// ShiftMonthEnd returns the month-end date `months` calendar months after
// t's month. Negative values shift backwards. The arithmetic runs through
// the first of the month so short months cannot spill over.
func ShiftMonthEnd(t time.Time, months int) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return MonthEnd(first.AddDate(0, months, 0))
}

// IsMonthEnd reports whether t falls on the last calendar day of its month.
func IsMonthEnd(t time.Time) bool {
	return t.Day() == MonthEnd(t).Day()
}

// Format renders t in the canonical pipeline layout.
func Format(t time.Time) string {
	return t.Format(ISO)
}
