package macro

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tableFrom builds an aligned table directly, bypassing Align, so derive
// tests control the index exactly.
func tableFrom(columns []string, rows ...MacroMonth) *Table {
	return &Table{Columns: columns, Rows: rows}
}

func row(year int, month time.Month, values map[string]float64) MacroMonth {
	return MacroMonth{
		Date:   time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC),
		Values: values,
	}
}

func TestDerive_CPIInflationYoY(t *testing.T) {
	rows := make([]MacroMonth, 0, 24)
	for i := 0; i < 24; i++ {
		// CPI grows 0.5 per month from 300.0 starting January 2023.
		rows = append(rows, row(2023, time.Month(1+i), map[string]float64{
			SeriesCPI: 300.0 + 0.5*float64(i),
		}))
	}
	table := tableFrom([]string{SeriesCPI}, rows...)

	Derive(table)

	assert.Equal(t, []string{SeriesCPI, ColCPIInflationYoY, ColFedFundsLag1, ColFedFundsLag3}, table.Columns)
	for i := 0; i < 12; i++ {
		assert.True(t, math.IsNaN(table.Rows[i].Value(ColCPIInflationYoY)),
			"month %d has no year-ago CPI", i)
	}
	// January 2024 against January 2023: (306/300 - 1) * 100.
	assert.InDelta(t, 2.0, table.Rows[12].Value(ColCPIInflationYoY), 1e-9)
	// December 2024 against December 2023: (311.5/305.5 - 1) * 100.
	assert.InDelta(t, (311.5/305.5-1)*100, table.Rows[23].Value(ColCPIInflationYoY), 1e-9)
}

func TestDerive_FedFundsLags(t *testing.T) {
	table := tableFrom([]string{SeriesFedFunds},
		row(2024, time.January, map[string]float64{SeriesFedFunds: 5.25}),
		row(2024, time.February, map[string]float64{SeriesFedFunds: 5.00}),
		row(2024, time.March, map[string]float64{SeriesFedFunds: 4.75}),
		row(2024, time.April, map[string]float64{SeriesFedFunds: 4.50}),
	)

	Derive(table)

	jan, feb, mar, apr := table.Rows[0], table.Rows[1], table.Rows[2], table.Rows[3]

	assert.True(t, math.IsNaN(jan.Value(ColFedFundsLag1)), "no history before the first month")
	assert.Equal(t, 5.25, feb.Value(ColFedFundsLag1), "January's rate surfaces one month later")
	assert.Equal(t, 5.00, mar.Value(ColFedFundsLag1))

	assert.True(t, math.IsNaN(mar.Value(ColFedFundsLag3)))
	assert.Equal(t, 5.25, apr.Value(ColFedFundsLag3), "January's rate surfaces three months later")
}

func TestDerive_LagsWalkCalendarNotRows(t *testing.T) {
	// March is absent from the index entirely. April's lag1 must look at
	// March (missing) rather than slide to the previous row (February).
	table := tableFrom([]string{SeriesFedFunds},
		row(2024, time.January, map[string]float64{SeriesFedFunds: 5.25}),
		row(2024, time.February, map[string]float64{SeriesFedFunds: 5.00}),
		row(2024, time.April, map[string]float64{SeriesFedFunds: 4.50}),
	)

	Derive(table)

	apr := table.Rows[2]
	assert.True(t, math.IsNaN(apr.Value(ColFedFundsLag1)),
		"calendar gap must not be bridged by the previous row")
	assert.Equal(t, 5.25, apr.Value(ColFedFundsLag3))
}

func TestDerive_MissingCPISideLeavesNaN(t *testing.T) {
	rows := make([]MacroMonth, 0, 13)
	for i := 0; i < 13; i++ {
		values := map[string]float64{SeriesCPI: 300.0 + float64(i)}
		if i == 0 {
			values[SeriesCPI] = math.NaN()
		}
		rows = append(rows, row(2023, time.Month(1+i), values))
	}
	table := tableFrom([]string{SeriesCPI}, rows...)

	Derive(table)

	assert.True(t, math.IsNaN(table.Rows[12].Value(ColCPIInflationYoY)),
		"NaN year-ago CPI must not produce a ratio")
}

func TestDerive_WithoutBaseSeriesAllNaN(t *testing.T) {
	table := tableFrom([]string{SeriesUnemployment},
		row(2024, time.January, map[string]float64{SeriesUnemployment: 3.7}),
		row(2024, time.February, map[string]float64{SeriesUnemployment: 3.9}),
	)

	Derive(table)

	require.Contains(t, table.Columns, ColCPIInflationYoY)
	for _, r := range table.Rows {
		assert.True(t, math.IsNaN(r.Value(ColCPIInflationYoY)))
		assert.True(t, math.IsNaN(r.Value(ColFedFundsLag1)))
		assert.True(t, math.IsNaN(r.Value(ColFedFundsLag3)))
	}
}
