// Package panel joins the cleaned security-month records with the aligned
// macro table into the final analysis dataset. The join is a left join on
// month-end date: every cleaned security-month appears exactly once in the
// output, with NaN macro cells for months outside macro coverage.
package panel

import (
	"math"

	"reitetl/internal/exporter"
	"reitetl/internal/macro"
	"reitetl/internal/reitpanel"
)

// Row is one month of one security with that month's macro backdrop.
type Row struct {
	Security reitpanel.SecurityMonth
	Macro    macro.MacroMonth
}

// CSVRow renders the row for export: security columns in canonical order,
// then the macro columns in table order.
func (r Row) CSVRow(macroColumns []string) []string {
	record := r.Security.Row()
	for _, col := range macroColumns {
		record = append(record, exporter.FormatFloat(r.Macro.Value(col)))
	}
	return record
}

// Columns returns the output header: the cleaned security columns followed
// by the macro table's columns.
func Columns(macroColumns []string) []string {
	return append(reitpanel.Columns(), macroColumns...)
}

// Numeric returns the value of a numeric column, with ok false for the
// identifier and classification columns that hold text.
func (r Row) Numeric(column string) (float64, bool) {
	switch column {
	case reitpanel.ColReturn:
		return r.Security.Return, true
	case reitpanel.ColPrice:
		return r.Security.Price, true
	case reitpanel.ColMarketEquity:
		return r.Security.MarketEquity, true
	case reitpanel.ColAssets:
		return r.Security.Assets, true
	case reitpanel.ColSales:
		return r.Security.Sales, true
	case reitpanel.ColNetIncome:
		return r.Security.NetIncome, true
	case reitpanel.ColBookEquity:
		return r.Security.BookEquity, true
	case reitpanel.ColDebtAssets:
		return r.Security.DebtAssets, true
	case reitpanel.ColCashAssets:
		return r.Security.CashAssets, true
	case reitpanel.ColOCFAssets:
		return r.Security.OCFAssets, true
	case reitpanel.ColROE:
		return r.Security.ROE, true
	case reitpanel.ColBookToMarket:
		return r.Security.BookToMarket, true
	case reitpanel.ColBeta:
		return r.Security.Beta, true
	case reitpanel.ColPermno, reitpanel.ColTicker, reitpanel.ColCompanyName,
		reitpanel.ColDate, reitpanel.ColREITType, reitpanel.ColPropertyType,
		reitpanel.ColPropertySub:
		return math.NaN(), false
	default:
		return r.Macro.Value(column), true
	}
}

// Values extracts one numeric column across the panel, NaN for missing.
func Values(rows []Row, column string) []float64 {
	out := make([]float64, 0, len(rows))
	for _, row := range rows {
		v, ok := row.Numeric(column)
		if !ok {
			v = math.NaN()
		}
		out = append(out, v)
	}
	return out
}

// MergeStats summarizes one merge run.
type MergeStats struct {
	REITRows      int
	MacroMonths   int
	MatchedRows   int
	UnmatchedRows int
}
