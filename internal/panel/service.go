package panel

import (
	"context"
	"log/slog"
	"os"

	"reitetl/internal/config"
	apperrors "reitetl/internal/errors"
	"reitetl/internal/exporter"
	"reitetl/internal/macro"
	"reitetl/internal/reitpanel"
)

// Service runs the merge stage: read both cleaned artifacts, left-join
// them, and stream the final panel to disk. Construct with NewService.
type Service struct {
	logger *slog.Logger
	paths  *config.Paths
	csv    *exporter.CSVWriter
}

// NewService wires a merge service. A nil logger falls back to the
// process default.
func NewService(logger *slog.Logger, paths *config.Paths) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		logger: logger,
		paths:  paths,
		csv:    exporter.NewCSVWriter(paths),
	}
}

// Result carries the merged panel and everything the reporting stage
// needs to describe it. Audit pointers are nil when a sidecar is absent.
type Result struct {
	Rows         []Row
	Columns      []string
	MacroColumns []string
	Stats        MergeStats
	REITAudit    *reitpanel.Audit
	MacroAudit   *macro.Audit
	PanelCSV     string
}

// Run executes the stage. Both cleaned inputs must exist; a missing one
// means the earlier stages have not run, which is fatal here.
func (s *Service) Run(ctx context.Context) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "starting panel merge",
		slog.String("reit_input", s.paths.CleanREITCSV),
		slog.String("macro_input", s.paths.CleanMacroCSV))

	records, loadStats, err := reitpanel.LoadCSV(s.paths.CleanREITCSV)
	if err != nil {
		return nil, err
	}
	if loadStats.Dropped() > 0 {
		s.logger.WarnContext(ctx, "cleaned security file contained defective rows",
			slog.Int("dropped", loadStats.Dropped()))
	}

	table, err := macro.LoadCleanCSV(s.paths.CleanMacroCSV)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, stats, err := Merge(records, table)
	if err != nil {
		return nil, err
	}

	columns := Columns(table.Columns)
	if err := s.writePanel(columns, rows, table.Columns); err != nil {
		return nil, apperrors.NewStorageError("write final panel", err)
	}

	result := &Result{
		Rows:         rows,
		Columns:      columns,
		MacroColumns: table.Columns,
		Stats:        stats,
		REITAudit:    readREITAudit(s.paths.REITAuditJSON),
		MacroAudit:   readMacroAudit(s.paths.MacroAuditJSON),
		PanelCSV:     s.paths.PanelCSV,
	}

	s.logger.InfoContext(ctx, "panel merge finished",
		slog.Int("rows", len(rows)),
		slog.Int("columns", len(columns)),
		slog.String("output", s.paths.PanelCSV))

	return result, nil
}

// writePanel streams the merged rows so the full panel never has to be
// rendered in memory as strings.
func (s *Service) writePanel(header []string, rows []Row, macroColumns []string) error {
	stream, err := s.csv.CreateStreamWriter(s.paths.PanelCSV, header)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if err := stream.WriteRecord(row.CSVRow(macroColumns)); err != nil {
			stream.Close()
			return err
		}
	}
	return stream.Close()
}

// readREITAudit loads the cleaning sidecar when present. The report works
// without it, so absence and damage only cost detail, not the run.
func readREITAudit(path string) *reitpanel.Audit {
	var audit reitpanel.Audit
	if err := exporter.ReadJSON(path, &audit); err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("could not read cleaning audit", slog.String("path", path), slog.Any("error", err))
		}
		return nil
	}
	return &audit
}

func readMacroAudit(path string) *macro.Audit {
	var audit macro.Audit
	if err := exporter.ReadJSON(path, &audit); err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("could not read macro audit", slog.String("path", path), slog.Any("error", err))
		}
		return nil
	}
	return &audit
}
