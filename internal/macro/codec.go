package macro

import (
	"reitetl/internal/dates"
	"reitetl/internal/exporter"
)

// Header returns the CSV header for the cleaned table: the date index
// followed by every value column in table order.
func (t *Table) Header() []string {
	header := make([]string, 0, len(t.Columns)+1)
	header = append(header, ColDate)
	header = append(header, t.Columns...)
	return header
}

// CSVRows renders the table for export. NaN cells become empty strings
// so missing months stay visibly missing downstream.
func (t *Table) CSVRows() [][]string {
	rows := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		record := make([]string, 0, len(t.Columns)+1)
		record = append(record, dates.Format(row.Date))
		for _, col := range t.Columns {
			record = append(record, exporter.FormatFloat(row.Value(col)))
		}
		rows = append(rows, record)
	}
	return rows
}
