package reitpanel

import (
	"log/slog"
	"time"
)

// Clean applies the row filters to key-valid records, in order: duplicate
// (ticker, date) keys keep the first occurrence in input order, then
// returns outside [returnMin, returnMax] are dropped. Both bounds are
// inclusive. Zero bounds fall back to the package defaults.
func Clean(records []SecurityMonth, returnMin, returnMax float64) ([]SecurityMonth, CleanStats) {
	if returnMin == 0 && returnMax == 0 {
		returnMin, returnMax = DefaultReturnMin, DefaultReturnMax
	}

	stats := CleanStats{Input: len(records)}
	seen := make(map[recordKey]struct{}, len(records))
	cleaned := make([]SecurityMonth, 0, len(records))

	for _, rec := range records {
		key := recordKey{ticker: rec.Ticker, date: rec.Date}
		if _, dup := seen[key]; dup {
			stats.Duplicates++
			continue
		}
		seen[key] = struct{}{}

		if rec.Return < returnMin || rec.Return > returnMax {
			stats.Outliers++
			continue
		}

		cleaned = append(cleaned, rec)
	}

	stats.Output = len(cleaned)

	slog.Info("Cleaned REIT panel",
		slog.Int("input", stats.Input),
		slog.Int("duplicates", stats.Duplicates),
		slog.Int("outliers", stats.Outliers),
		slog.Int("output", stats.Output))

	return cleaned, stats
}

// DateRange returns the earliest and latest dates in the records.
func DateRange(records []SecurityMonth) (time.Time, time.Time) {
	var min, max time.Time
	for _, rec := range records {
		if min.IsZero() || rec.Date.Before(min) {
			min = rec.Date
		}
		if max.IsZero() || rec.Date.After(max) {
			max = rec.Date
		}
	}
	return min, max
}

// UniqueTickers counts the distinct tickers in the records.
func UniqueTickers(records []SecurityMonth) int {
	seen := make(map[string]struct{})
	for _, rec := range records {
		seen[rec.Ticker] = struct{}{}
	}
	return len(seen)
}
