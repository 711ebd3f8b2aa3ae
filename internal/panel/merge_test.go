package panel

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "reitetl/internal/errors"
	"reitetl/internal/macro"
	"reitetl/internal/reitpanel"
)

func monthEnd(year int, month time.Month) time.Time {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
}

func security(ticker string, date time.Time, ret float64) reitpanel.SecurityMonth {
	return reitpanel.SecurityMonth{
		Ticker: ticker,
		Date:   date,
		Return: ret,
		Price:  math.NaN(),
	}
}

func macroTable(rows ...macro.MacroMonth) *macro.Table {
	return &macro.Table{
		Columns: []string{macro.SeriesFedFunds, macro.ColCPIInflationYoY},
		Rows:    rows,
	}
}

func macroRow(date time.Time, fedFunds, inflation float64) macro.MacroMonth {
	return macro.MacroMonth{Date: date, Values: map[string]float64{
		macro.SeriesFedFunds:     fedFunds,
		macro.ColCPIInflationYoY: inflation,
	}}
}

func TestMerge_LeftJoinKeepsEverySecurityMonth(t *testing.T) {
	jan := monthEnd(2024, time.January)
	feb := monthEnd(2024, time.February)

	records := []reitpanel.SecurityMonth{
		security("AMT", jan, 0.05),
		security("PLD", jan, 0.02),
		security("AMT", feb, -0.01),
	}
	table := macroTable(macroRow(jan, 5.33, 3.1))

	rows, stats, err := Merge(records, table)
	require.NoError(t, err)

	require.Len(t, rows, 3, "left join must keep every security-month")
	assert.Equal(t, 3, stats.REITRows)
	assert.Equal(t, 1, stats.MacroMonths)
	assert.Equal(t, 2, stats.MatchedRows)
	assert.Equal(t, 1, stats.UnmatchedRows)

	// Sorted by (ticker, date): AMT jan, AMT feb, PLD jan.
	assert.Equal(t, 5.33, rows[0].Macro.Value(macro.SeriesFedFunds))
	assert.True(t, math.IsNaN(rows[1].Macro.Value(macro.SeriesFedFunds)),
		"February is outside macro coverage")
	assert.Equal(t, 3.1, rows[2].Macro.Value(macro.ColCPIInflationYoY))
}

func TestMerge_SortsByTickerThenDate(t *testing.T) {
	jan := monthEnd(2024, time.January)
	feb := monthEnd(2024, time.February)

	records := []reitpanel.SecurityMonth{
		security("PLD", feb, 0.01),
		security("AMT", feb, 0.02),
		security("PLD", jan, 0.03),
		security("AMT", jan, 0.04),
	}

	rows, _, err := Merge(records, macroTable())
	require.NoError(t, err)

	got := make([][2]string, 0, len(rows))
	for _, row := range rows {
		got = append(got, [2]string{row.Security.Ticker, row.Security.Date.Format("2006-01-02")})
	}
	assert.Equal(t, [][2]string{
		{"AMT", "2024-01-31"},
		{"AMT", "2024-02-29"},
		{"PLD", "2024-01-31"},
		{"PLD", "2024-02-29"},
	}, got)
}

func TestMerge_NormalizesJoinDates(t *testing.T) {
	// A macro row stamped mid-month must still hit the month-end key.
	midJan := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	records := []reitpanel.SecurityMonth{
		security("AMT", monthEnd(2024, time.January), 0.05),
	}

	rows, stats, err := Merge(records, macroTable(macroRow(midJan, 5.33, 3.1)))
	require.NoError(t, err)
	assert.Equal(t, 1, stats.MatchedRows)
	assert.Equal(t, 5.33, rows[0].Macro.Value(macro.SeriesFedFunds))
}

func TestMerge_DuplicateMacroMonthIsFatal(t *testing.T) {
	// Two rows in the same calendar month collapse onto one month-end key.
	records := []reitpanel.SecurityMonth{
		security("AMT", monthEnd(2024, time.January), 0.05),
	}
	table := macroTable(
		macroRow(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 5.33, 3.1),
		macroRow(time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), 5.25, 3.0),
	)

	_, _, err := Merge(records, table)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrTypeIntegrity, apperrors.TypeOf(err))
	assert.Contains(t, err.Error(), "2024-01-31")
}

func TestMerge_EmptyMacroTable(t *testing.T) {
	records := []reitpanel.SecurityMonth{
		security("AMT", monthEnd(2024, time.January), 0.05),
	}

	rows, stats, err := Merge(records, macroTable())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, stats.UnmatchedRows)
	assert.True(t, math.IsNaN(rows[0].Macro.Value(macro.SeriesFedFunds)))
}

func TestRow_Numeric(t *testing.T) {
	row := Row{
		Security: reitpanel.SecurityMonth{
			Ticker: "AMT",
			Return: 0.05,
			Beta:   1.2,
		},
		Macro: macro.MacroMonth{Values: map[string]float64{macro.SeriesFedFunds: 5.33}},
	}

	ret, ok := row.Numeric(reitpanel.ColReturn)
	assert.True(t, ok)
	assert.Equal(t, 0.05, ret)

	beta, ok := row.Numeric(reitpanel.ColBeta)
	assert.True(t, ok)
	assert.Equal(t, 1.2, beta)

	fed, ok := row.Numeric(macro.SeriesFedFunds)
	assert.True(t, ok)
	assert.Equal(t, 5.33, fed)

	_, ok = row.Numeric(reitpanel.ColTicker)
	assert.False(t, ok, "text columns are not numeric")

	missing, ok := row.Numeric(macro.SeriesCPI)
	assert.True(t, ok)
	assert.True(t, math.IsNaN(missing))
}

func TestValues(t *testing.T) {
	jan := monthEnd(2024, time.January)
	rows := []Row{
		{Security: security("AMT", jan, 0.05)},
		{Security: security("PLD", jan, -0.02)},
	}

	got := Values(rows, reitpanel.ColReturn)
	assert.Equal(t, []float64{0.05, -0.02}, got)

	tickers := Values(rows, reitpanel.ColTicker)
	require.Len(t, tickers, 2)
	assert.True(t, math.IsNaN(tickers[0]))
}

func TestColumns(t *testing.T) {
	got := Columns([]string{macro.SeriesFedFunds, macro.ColCPIInflationYoY})
	assert.Equal(t, len(reitpanel.Columns())+2, len(got))
	assert.Equal(t, reitpanel.ColPermno, got[0])
	assert.Equal(t, macro.ColCPIInflationYoY, got[len(got)-1])
}
