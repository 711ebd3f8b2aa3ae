package reitpanel

import (
	"reitetl/internal/dates"
	"reitetl/internal/exporter"
)

// Row renders the record as CSV cells in Columns() order. Missing numeric
// values become empty cells.
func (r SecurityMonth) Row() []string {
	return []string{
		r.Permno,
		r.Ticker,
		r.CompanyName,
		dates.Format(r.Date),
		exporter.FormatFloat(r.Return),
		exporter.FormatFloat(r.Price),
		exporter.FormatFloat(r.MarketEquity),
		r.REITType,
		r.PropertyType,
		r.PropertySubtype,
		exporter.FormatFloat(r.Assets),
		exporter.FormatFloat(r.Sales),
		exporter.FormatFloat(r.NetIncome),
		exporter.FormatFloat(r.BookEquity),
		exporter.FormatFloat(r.DebtAssets),
		exporter.FormatFloat(r.CashAssets),
		exporter.FormatFloat(r.OCFAssets),
		exporter.FormatFloat(r.ROE),
		exporter.FormatFloat(r.BookToMarket),
		exporter.FormatFloat(r.Beta),
	}
}

// Rows renders a record slice for the CSV writer.
func Rows(records []SecurityMonth) [][]string {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, rec.Row())
	}
	return rows
}
