package panel

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"reitetl/internal/dates"
	apperrors "reitetl/internal/errors"
	"reitetl/internal/macro"
	"reitetl/internal/reitpanel"
)

// buildMacroIndex keys the macro table by month-end date. Two macro rows
// landing on the same month mean the cleaned macro file is corrupt, which
// would fan out security-months during the join, so it aborts the stage.
func buildMacroIndex(table *macro.Table) (map[time.Time]macro.MacroMonth, error) {
	index := make(map[time.Time]macro.MacroMonth, len(table.Rows))
	for _, row := range table.Rows {
		key := dates.MonthEnd(row.Date)
		if _, dup := index[key]; dup {
			return nil, apperrors.NewIntegrityError(
				fmt.Sprintf("macro table has two rows for %s", dates.Format(key)))
		}
		index[key] = row
	}
	return index, nil
}

// Merge left-joins the security-month records onto the macro table by
// month-end date and sorts the result by (ticker, date). Records outside
// macro coverage keep NaN macro cells. The output row count must equal
// the input record count; any other outcome is corruption and fatal.
func Merge(records []reitpanel.SecurityMonth, table *macro.Table) ([]Row, MergeStats, error) {
	index, err := buildMacroIndex(table)
	if err != nil {
		return nil, MergeStats{}, err
	}

	stats := MergeStats{
		REITRows:    len(records),
		MacroMonths: len(index),
	}

	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		key := dates.MonthEnd(rec.Date)
		backdrop, ok := index[key]
		if ok {
			stats.MatchedRows++
		} else {
			stats.UnmatchedRows++
		}
		rows = append(rows, Row{
			Security: rec,
			Macro:    macro.MacroMonth{Date: key, Values: backdrop.Values},
		})
	}

	if len(rows) != len(records) {
		return nil, stats, apperrors.NewIntegrityError(
			fmt.Sprintf("merge produced %d rows from %d security-months", len(rows), len(records)))
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Security.Ticker != rows[j].Security.Ticker {
			return rows[i].Security.Ticker < rows[j].Security.Ticker
		}
		return rows[i].Security.Date.Before(rows[j].Security.Date)
	})

	slog.Info("merged security and macro data",
		slog.Int("reit_rows", stats.REITRows),
		slog.Int("macro_months", stats.MacroMonths),
		slog.Int("matched", stats.MatchedRows),
		slog.Int("unmatched", stats.UnmatchedRows))

	return rows, stats, nil
}
