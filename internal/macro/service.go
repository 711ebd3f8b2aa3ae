package macro

import (
	"context"
	"log/slog"
	"time"

	"reitetl/internal/config"
	apperrors "reitetl/internal/errors"
	"reitetl/internal/exporter"
)

// Service runs the macro cleaning stage: load raw series, align, derive,
// export. Construct with NewService.
type Service struct {
	logger *slog.Logger
	paths  *config.Paths
	cfg    config.MacroConfig
	csv    *exporter.CSVWriter
}

// NewService wires a macro cleaning service. A nil logger falls back to
// the process default; an empty series list falls back to the standard
// four.
func NewService(logger *slog.Logger, paths *config.Paths, cfg config.MacroConfig) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if len(cfg.Series) == 0 {
		cfg.Series = DefaultSeries()
	}
	return &Service{
		logger: logger,
		paths:  paths,
		cfg:    cfg,
		csv:    exporter.NewCSVWriter(paths),
	}
}

// Result reports one macro cleaning run.
type Result struct {
	Audit     Audit
	Table     *Table
	OutputCSV string
	AuditJSON string
}

// Run executes the stage. Missing series files are tolerated while at
// least one series loads; when none load the service either fabricates
// seeded synthetic data or fails, depending on configuration.
func (s *Service) Run(ctx context.Context) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "starting macro cleaning",
		slog.Any("series", s.cfg.Series))

	loaded, missing, loadStats, err := LoadAll(ctx, s.paths, s.cfg.Series)
	if err != nil {
		return nil, err
	}

	synthetic := false
	if len(loaded) == 0 {
		if !s.cfg.AllowSynthetic {
			return nil, apperrors.NewValidationError(
				"no macro series files found and synthetic data is disabled")
		}
		start, end, err := s.cfg.SyntheticPeriod()
		if err != nil {
			return nil, apperrors.NewConfigError("resolve synthetic period", err)
		}
		loaded = Synthetic(s.cfg.SyntheticSeed, start, end)
		synthetic = true
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	table, alignStats := Align(loaded)
	if len(table.Rows) == 0 {
		return nil, apperrors.NewValidationError(
			"macro series contained no usable observations")
	}
	Derive(table)

	if err := s.csv.WriteSimpleCSV(s.paths.CleanMacroCSV, table.Header(), table.CSVRows()); err != nil {
		return nil, apperrors.NewStorageError("write cleaned macro file", err)
	}

	audit := s.buildAudit(table, alignStats, loadStats, missing, synthetic)
	if err := exporter.WriteJSON(s.paths.MacroAuditJSON, audit); err != nil {
		return nil, apperrors.NewStorageError("write macro audit file", err)
	}

	s.logger.InfoContext(ctx, "macro cleaning finished",
		slog.Int("output_rows", audit.OutputRows),
		slog.Bool("synthetic", synthetic),
		slog.String("date_min", audit.DateMin),
		slog.String("date_max", audit.DateMax),
		slog.String("output", s.paths.CleanMacroCSV))

	return &Result{
		Audit:     audit,
		Table:     table,
		OutputCSV: s.paths.CleanMacroCSV,
		AuditJSON: s.paths.MacroAuditJSON,
	}, nil
}

func (s *Service) buildAudit(table *Table, align AlignStats, load LoadStats, missing []string, synthetic bool) Audit {
	from, to := table.DateRange()
	return Audit{
		Stage:          "fredclean",
		Synthetic:      synthetic,
		SeriesCounts:   align.SeriesCounts,
		MissingSeries:  missing,
		SkippedRows:    load.SkippedRows,
		DuplicateDates: align.DuplicateDates,
		OutputRows:     len(table.Rows),
		DateMin:        formatDate(from),
		DateMax:        formatDate(to),
		GeneratedAt:    time.Now().UTC().Format(time.RFC3339),
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
