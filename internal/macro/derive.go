package macro

import (
	"math"
	"time"

	"reitetl/internal/dates"
)

// Derive appends the transformed columns to an aligned table:
//
//	cpi_inflation_yoy  (CPI[m] / CPI[m-12] - 1) * 100
//	FEDFUNDS_lag1      FEDFUNDS value at m-1
//	FEDFUNDS_lag3      FEDFUNDS value at m-3
//
// Lookups walk the calendar, not row positions, so gaps in the index
// never smear values onto the wrong month. Any side of a transform that
// is missing leaves NaN in the derived cell.
func Derive(table *Table) {
	byDate := make(map[time.Time]MacroMonth, len(table.Rows))
	for _, row := range table.Rows {
		byDate[row.Date] = row
	}

	at := func(date time.Time, months int, column string) float64 {
		row, ok := byDate[dates.ShiftMonthEnd(date, months)]
		if !ok {
			return math.NaN()
		}
		return row.Value(column)
	}

	for i := range table.Rows {
		row := &table.Rows[i]
		if row.Values == nil {
			row.Values = make(map[string]float64, 3)
		}

		cur := row.Value(SeriesCPI)
		prev := at(row.Date, -12, SeriesCPI)
		yoy := math.NaN()
		if !math.IsNaN(cur) && !math.IsNaN(prev) {
			yoy = (cur/prev - 1) * 100
		}
		row.Values[ColCPIInflationYoY] = yoy

		row.Values[ColFedFundsLag1] = at(row.Date, -1, SeriesFedFunds)
		row.Values[ColFedFundsLag3] = at(row.Date, -3, SeriesFedFunds)
	}

	table.Columns = append(table.Columns, ColCPIInflationYoY, ColFedFundsLag1, ColFedFundsLag3)
}
