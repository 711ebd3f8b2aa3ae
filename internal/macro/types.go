// Package macro loads monthly macroeconomic series, aligns them onto a
// unified month-end index, and derives the inflation and policy-rate
// transforms the panel needs. Missing observations stay NaN from load to
// output; nothing is forward-filled or dropped.
package macro

import (
	"math"
	"time"
)

// FRED series identifiers handled by the default configuration.
const (
	SeriesFedFunds     = "FEDFUNDS"
	SeriesMortgage30US = "MORTGAGE30US"
	SeriesCPI          = "CPIAUCSL"
	SeriesUnemployment = "UNRATE"
)

// Derived column names appended after alignment.
const (
	ColCPIInflationYoY = "cpi_inflation_yoy"
	ColFedFundsLag1    = "FEDFUNDS_lag1"
	ColFedFundsLag3    = "FEDFUNDS_lag3"
)

// ColDate is the index column of the cleaned macro table.
const ColDate = "date"

// DefaultSeries returns the standard series set in output order.
func DefaultSeries() []string {
	return []string{SeriesFedFunds, SeriesMortgage30US, SeriesCPI, SeriesUnemployment}
}

// Observation is one raw (date, value) point of a named series. Dates
// carry whatever day the source stamped; alignment normalizes them.
type Observation struct {
	Date  time.Time
	Value float64
}

// Series is a named time series of raw observations.
type Series struct {
	ID           string
	Observations []Observation
}

// MacroMonth is one row of the aligned monthly table: a month-end date
// plus one value per column. Absent points are NaN.
type MacroMonth struct {
	Date   time.Time
	Values map[string]float64
}

// Value returns the cell for a column, NaN when the column is absent.
func (m MacroMonth) Value(column string) float64 {
	if v, ok := m.Values[column]; ok {
		return v
	}
	return math.NaN()
}

// Table is the aligned monthly macro table. Rows are sorted ascending by
// date and unique per month-end; Columns lists the value columns in
// output order (raw series first, then derived).
type Table struct {
	Columns []string
	Rows    []MacroMonth
}

// DateRange returns the coverage of the table.
func (t *Table) DateRange() (time.Time, time.Time) {
	if len(t.Rows) == 0 {
		return time.Time{}, time.Time{}
	}
	return t.Rows[0].Date, t.Rows[len(t.Rows)-1].Date
}

// AlignStats counts what alignment saw while building the table.
type AlignStats struct {
	SeriesCounts   map[string]int
	DuplicateDates int
}

// Audit is the machine-readable record of one macro cleaning run, written
// as a JSON sidecar next to the cleaned CSV.
type Audit struct {
	Stage          string         `json:"stage"`
	Synthetic      bool           `json:"synthetic"`
	SeriesCounts   map[string]int `json:"series_counts"`
	MissingSeries  []string       `json:"missing_series,omitempty"`
	SkippedRows    int            `json:"skipped_rows"`
	DuplicateDates int            `json:"duplicate_dates"`
	OutputRows     int            `json:"output_rows"`
	DateMin        string         `json:"date_min"`
	DateMax        string         `json:"date_max"`
	GeneratedAt    string         `json:"generated_at"`
}
