package reitpanel

import (
	"context"
	"log/slog"
	"time"

	"reitetl/internal/config"
	"reitetl/internal/dates"
	"reitetl/internal/errors"
	"reitetl/internal/exporter"
)

// Service runs the REIT cleaning stage end to end: load the raw master
// panel, apply the cleaning filters, write the cleaned CSV and the audit
// sidecar.
type Service struct {
	logger *slog.Logger
	paths  *config.Paths
	clean  config.CleanConfig
	csv    *exporter.CSVWriter
}

// NewService creates the stage service. A nil logger falls back to the
// default logger; zero clean bounds fall back to the package defaults.
func NewService(logger *slog.Logger, paths *config.Paths, clean config.CleanConfig) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if clean.ReturnMin == 0 && clean.ReturnMax == 0 {
		clean = config.CleanConfig{ReturnMin: DefaultReturnMin, ReturnMax: DefaultReturnMax}
	}

	return &Service{
		logger: logger,
		paths:  paths,
		clean:  clean,
		csv:    exporter.NewCSVWriter(paths),
	}
}

// Result summarizes a completed cleaning run.
type Result struct {
	Audit     Audit
	OutputCSV string
	AuditJSON string
}

// Run executes the stage. An empty inputPath reads the well-known raw
// panel location.
func (s *Service) Run(ctx context.Context, inputPath string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if inputPath == "" {
		inputPath = s.paths.RawREITCSV
	}

	s.logger.InfoContext(ctx, "REIT cleaning stage started",
		slog.String("input", inputPath),
		slog.Float64("return_min", s.clean.ReturnMin),
		slog.Float64("return_max", s.clean.ReturnMax))

	records, loadStats, err := Load(inputPath)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cleaned, cleanStats := Clean(records, s.clean.ReturnMin, s.clean.ReturnMax)

	audit := s.buildAudit(inputPath, loadStats, cleanStats, cleaned)

	if err := s.csv.WriteSimpleCSV(s.paths.CleanREITCSV, Columns(), Rows(cleaned)); err != nil {
		return nil, errors.NewStorageError("failed to write cleaned REIT panel", err)
	}

	if err := exporter.WriteJSON(s.paths.REITAuditJSON, audit); err != nil {
		return nil, errors.NewStorageError("failed to write REIT cleaning audit", err)
	}

	s.logger.InfoContext(ctx, "REIT cleaning stage finished",
		slog.Int("input_rows", audit.InputRows),
		slog.Int("output_rows", audit.OutputRows),
		slog.Int("unique_tickers", audit.UniqueTickers),
		slog.String("output", s.paths.CleanREITCSV))

	return &Result{
		Audit:     audit,
		OutputCSV: s.paths.CleanREITCSV,
		AuditJSON: s.paths.REITAuditJSON,
	}, nil
}

func (s *Service) buildAudit(source string, load LoadStats, clean CleanStats, cleaned []SecurityMonth) Audit {
	minDate, maxDate := DateRange(cleaned)

	formatDate := func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return dates.Format(t)
	}

	return Audit{
		Stage:                 "reitclean",
		Source:                source,
		InputRows:             load.RowsRead,
		DroppedMalformed:      load.MalformedCSV,
		DroppedMissingKey:     load.MissingKey,
		DroppedInvalidDates:   load.InvalidDates,
		DroppedInvalidReturns: load.InvalidReturns,
		DroppedDuplicates:     clean.Duplicates,
		DroppedOutliers:       clean.Outliers,
		OutputRows:            clean.Output,
		UniqueTickers:         UniqueTickers(cleaned),
		DateMin:               formatDate(minDate),
		DateMax:               formatDate(maxDate),
		GeneratedAt:           time.Now().UTC().Format(time.RFC3339),
	}
}
