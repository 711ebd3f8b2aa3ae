package macro

import (
	"log/slog"
	"sort"
	"time"

	"reitetl/internal/dates"
)

// Align builds the unified monthly table from raw series. Every
// observation date is normalized to its month-end, the row index is the
// union of all normalized dates across series, and a series missing a
// month contributes NaN there. When a series carries two observations in
// the same month the later-read one wins and the collision is counted.
func Align(series []Series) (*Table, AlignStats) {
	stats := AlignStats{SeriesCounts: make(map[string]int, len(series))}

	byDate := make(map[time.Time]map[string]float64)
	columns := make([]string, 0, len(series))

	for _, s := range series {
		columns = append(columns, s.ID)
		stats.SeriesCounts[s.ID] = len(s.Observations)
		for _, obs := range s.Observations {
			monthEnd := dates.MonthEnd(obs.Date)
			cells, ok := byDate[monthEnd]
			if !ok {
				cells = make(map[string]float64, len(series))
				byDate[monthEnd] = cells
			}
			if _, dup := cells[s.ID]; dup {
				stats.DuplicateDates++
			}
			cells[s.ID] = obs.Value
		}
	}

	index := make([]time.Time, 0, len(byDate))
	for date := range byDate {
		index = append(index, date)
	}
	sort.Slice(index, func(i, j int) bool { return index[i].Before(index[j]) })

	table := &Table{
		Columns: columns,
		Rows:    make([]MacroMonth, 0, len(index)),
	}
	for _, date := range index {
		table.Rows = append(table.Rows, MacroMonth{Date: date, Values: byDate[date]})
	}

	if stats.DuplicateDates > 0 {
		slog.Warn("macro series carried repeated months, kept last value",
			slog.Int("collisions", stats.DuplicateDates))
	}
	slog.Info("aligned macro series onto monthly index",
		slog.Int("series", len(series)),
		slog.Int("months", len(table.Rows)))

	return table, stats
}
