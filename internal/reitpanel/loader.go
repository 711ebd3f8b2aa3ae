package reitpanel

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"reitetl/internal/dates"
	"reitetl/internal/errors"
)

// Load reads the raw master panel, dispatching on the file extension.
// Rows that cannot form a valid (ticker, date, return) key are excluded
// and counted in LoadStats; structural failures are returned as errors.
func Load(path string) ([]SecurityMonth, LoadStats, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return LoadXLSX(path)
	default:
		return LoadCSV(path)
	}
}

// LoadCSV reads the master panel from a delimited file.
func LoadCSV(path string) ([]SecurityMonth, LoadStats, error) {
	var stats LoadStats

	file, err := os.Open(path)
	if err != nil {
		return nil, stats, errors.NewStorageError(fmt.Sprintf("failed to open REIT panel %s", path), err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, stats, errors.NewParsingError("REIT panel file is empty", nil).WithContext("file", path)
	}
	if err != nil {
		return nil, stats, errors.NewParsingError("failed to read REIT panel header", err)
	}

	cols, err := mapColumns(header)
	if err != nil {
		return nil, stats, err
	}

	var records []SecurityMonth
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			stats.RowsRead++
			stats.MalformedCSV++
			slog.Debug("Skipping malformed CSV row",
				slog.Int("line", line),
				slog.String("error", err.Error()))
			continue
		}

		stats.RowsRead++
		if rec, ok := parseRecord(record, cols, line, &stats); ok {
			records = append(records, rec)
		}
	}

	logLoadSummary(path, stats)
	return records, stats, nil
}

// LoadXLSX reads the master panel from the first sheet of a workbook.
func LoadXLSX(path string) ([]SecurityMonth, LoadStats, error) {
	var stats LoadStats

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, stats, errors.NewStorageError(fmt.Sprintf("failed to open REIT workbook %s", path), err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, stats, errors.NewParsingError("REIT workbook has no sheets", nil).WithContext("file", path)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, stats, errors.NewParsingError(fmt.Sprintf("failed to read sheet %s", sheet), err)
	}
	if len(rows) == 0 {
		return nil, stats, errors.NewParsingError("REIT workbook is empty", nil).WithContext("file", path)
	}

	cols, err := mapColumns(rows[0])
	if err != nil {
		return nil, stats, err
	}

	var records []SecurityMonth
	for i, row := range rows[1:] {
		stats.RowsRead++
		if rec, ok := parseRecord(row, cols, i+2, &stats); ok {
			records = append(records, rec)
		}
	}

	logLoadSummary(path, stats)
	return records, stats, nil
}

// mapColumns builds a name-to-index map from the header row. Column
// matching is case-insensitive; the three key columns must be present.
func mapColumns(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	for _, required := range keyColumns {
		if _, ok := cols[required]; !ok {
			return nil, errors.NewValidationError(
				fmt.Sprintf("required column %q missing from REIT panel header", required))
		}
	}

	var missing []string
	for _, name := range Columns() {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		slog.Warn("REIT panel header is missing optional columns; values will be empty",
			slog.Any("columns", missing))
	}

	return cols, nil
}

// parseRecord converts one raw row into a SecurityMonth. Rows with a
// missing or unusable key field are counted in stats and rejected.
func parseRecord(record []string, cols map[string]int, line int, stats *LoadStats) (SecurityMonth, bool) {
	ticker := strings.ToUpper(field(record, cols, ColTicker))
	dateStr := field(record, cols, ColDate)
	returnStr := field(record, cols, ColReturn)

	if ticker == "" || dateStr == "" || returnStr == "" {
		stats.MissingKey++
		slog.Debug("Dropping row with missing key field", slog.Int("line", line))
		return SecurityMonth{}, false
	}

	parsed, err := dates.Parse(dateStr)
	if err != nil {
		stats.InvalidDates++
		slog.Debug("Dropping row with invalid date",
			slog.Int("line", line),
			slog.String("date", dateStr))
		return SecurityMonth{}, false
	}

	ret, err := strconv.ParseFloat(returnStr, 64)
	if err != nil || math.IsNaN(ret) {
		stats.InvalidReturns++
		slog.Debug("Dropping row with invalid return",
			slog.Int("line", line),
			slog.String("usdret", returnStr))
		return SecurityMonth{}, false
	}

	return SecurityMonth{
		Permno:          field(record, cols, ColPermno),
		Ticker:          ticker,
		CompanyName:     field(record, cols, ColCompanyName),
		REITType:        field(record, cols, ColREITType),
		PropertyType:    field(record, cols, ColPropertyType),
		PropertySubtype: field(record, cols, ColPropertySub),
		Date:            dates.MonthEnd(parsed),
		Return:          ret,
		Price:           parseOptionalFloat(field(record, cols, ColPrice)),
		MarketEquity:    parseOptionalFloat(field(record, cols, ColMarketEquity)),
		Assets:          parseOptionalFloat(field(record, cols, ColAssets)),
		Sales:           parseOptionalFloat(field(record, cols, ColSales)),
		NetIncome:       parseOptionalFloat(field(record, cols, ColNetIncome)),
		BookEquity:      parseOptionalFloat(field(record, cols, ColBookEquity)),
		DebtAssets:      parseOptionalFloat(field(record, cols, ColDebtAssets)),
		CashAssets:      parseOptionalFloat(field(record, cols, ColCashAssets)),
		OCFAssets:       parseOptionalFloat(field(record, cols, ColOCFAssets)),
		ROE:             parseOptionalFloat(field(record, cols, ColROE)),
		BookToMarket:    parseOptionalFloat(field(record, cols, ColBookToMarket)),
		Beta:            parseOptionalFloat(field(record, cols, ColBeta)),
	}, true
}

// field returns the trimmed cell for a named column, or empty when the
// column is absent or the row is short.
func field(record []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// parseOptionalFloat coerces a non-key numeric cell. Empty or unparseable
// values become NaN rather than dropping the row.
func parseOptionalFloat(value string) float64 {
	if value == "" {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

func logLoadSummary(path string, stats LoadStats) {
	slog.Info("Loaded REIT panel",
		slog.String("file", path),
		slog.Int("rows_read", stats.RowsRead),
		slog.Int("malformed", stats.MalformedCSV),
		slog.Int("missing_key", stats.MissingKey),
		slog.Int("invalid_dates", stats.InvalidDates),
		slog.Int("invalid_returns", stats.InvalidReturns))
}
