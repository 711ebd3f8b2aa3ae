package macro

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"reitetl/internal/config"
	"reitetl/internal/dates"
	apperrors "reitetl/internal/errors"
)

// LoadStats counts rows seen and skipped while reading raw series files.
type LoadStats struct {
	RowsRead    int
	SkippedRows int
}

// LoadSeriesCSV reads one raw series file in the FRED export layout: a
// header row followed by date,value records. The header is not
// interpreted beyond locating two columns; FRED names the value column
// after the series ("DATE,FEDFUNDS"), other sources write "date,value".
// A bare "." or empty cell is a missing observation and loads as NaN.
// Rows whose date does not parse are skipped and counted.
func LoadSeriesCSV(path, id string) (Series, LoadStats, error) {
	series := Series{ID: id}
	var stats LoadStats

	f, err := os.Open(path)
	if err != nil {
		return series, stats, apperrors.NewStorageError(
			fmt.Sprintf("open series file for %s", id), err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return series, stats, apperrors.NewParsingError(
			fmt.Sprintf("series file for %s is empty", id), nil)
	}
	if err != nil {
		return series, stats, apperrors.NewParsingError(
			fmt.Sprintf("read series header for %s", id), err)
	}
	if len(header) < 2 {
		return series, stats, apperrors.NewParsingError(
			fmt.Sprintf("series file for %s needs date and value columns, got %d", id, len(header)), nil)
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			stats.SkippedRows++
			continue
		}
		stats.RowsRead++
		if len(record) < 2 {
			stats.SkippedRows++
			continue
		}
		date, err := dates.Parse(record[0])
		if err != nil {
			stats.SkippedRows++
			continue
		}
		series.Observations = append(series.Observations, Observation{
			Date:  date,
			Value: parseValue(record[1]),
		})
	}

	slog.Debug("loaded macro series",
		slog.String("series", id),
		slog.Int("rows_read", stats.RowsRead),
		slog.Int("skipped", stats.SkippedRows))

	return series, stats, nil
}

// parseValue converts a raw cell to a float. FRED marks missing
// observations with "."; those and unparseable cells become NaN.
func parseValue(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "." {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// LoadAll reads every configured series from the raw data directory.
// Series whose file does not exist are skipped with a warning and
// reported in missing; a file that exists but cannot be read or parsed
// is fatal. Files are independent and load concurrently, but the loaded
// slice keeps the configured order.
func LoadAll(ctx context.Context, paths *config.Paths, ids []string) ([]Series, []string, LoadStats, error) {
	var missing []string
	var present []string
	for _, id := range ids {
		path := paths.GetSeriesCSVPath(id)
		if !config.FileExists(path) {
			slog.Warn("macro series file not found, skipping",
				slog.String("series", id),
				slog.String("path", path))
			missing = append(missing, id)
			continue
		}
		present = append(present, id)
	}

	loaded := make([]Series, len(present))
	perFile := make([]LoadStats, len(present))

	g, ctx := errgroup.WithContext(ctx)
	for i, id := range present {
		i, id := i, id // per-iteration copies; required while go.mod targets go < 1.22
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			series, st, err := LoadSeriesCSV(paths.GetSeriesCSVPath(id), id)
			if err != nil {
				return err
			}
			loaded[i] = series
			perFile[i] = st
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, LoadStats{}, err
	}

	var stats LoadStats
	for _, st := range perFile {
		stats.RowsRead += st.RowsRead
		stats.SkippedRows += st.SkippedRows
	}
	return loaded, missing, stats, nil
}

// LoadCleanCSV reads a cleaned macro table back from disk, as written by
// Service.Run. The first column must be the date index; every other
// header names a value column. Empty cells load as NaN. Unlike raw
// series input, a malformed row here is fatal: the file is a pipeline
// artifact and any damage to it is an integrity problem.
func LoadCleanCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewStorageError("open cleaned macro file", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, apperrors.NewParsingError("cleaned macro file is empty", nil)
	}
	if err != nil {
		return nil, apperrors.NewParsingError("read cleaned macro header", err)
	}
	if len(header) < 2 || !strings.EqualFold(strings.TrimSpace(header[0]), ColDate) {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("cleaned macro file must start with a %q column", ColDate))
	}

	table := &Table{Columns: append([]string(nil), header[1:]...)}
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, apperrors.NewParsingError(
				fmt.Sprintf("read cleaned macro row %d", line), err)
		}
		date, err := dates.Parse(record[0])
		if err != nil {
			return nil, apperrors.NewParsingError(
				fmt.Sprintf("parse date on cleaned macro row %d", line), err)
		}
		row := MacroMonth{Date: date, Values: make(map[string]float64, len(table.Columns))}
		for i, col := range table.Columns {
			row.Values[col] = parseValue(record[i+1])
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}
