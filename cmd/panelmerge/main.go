// panelmerge joins the cleaned REIT and macro artifacts into the final
// analysis panel and renders the summary statistics and run report.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"reitetl/internal/config"
	"reitetl/internal/infrastructure"
	"reitetl/internal/panel"
	"reitetl/internal/report"
)

func main() {
	dir := flag.String("dir", "", "pipeline base directory (defaults to the executable directory)")
	flag.Parse()

	paths, err := resolvePaths(*dir)
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}
	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}
	cfg.Logging.FilePath = paths.GetLogPath("panelmerge.log")

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.ContextWithTraceID(context.Background())

	svc := panel.NewService(logger, paths)
	result, err := svc.Run(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "panel merge failed", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "panelmerge: %v\n", err)
		os.Exit(1)
	}

	gen := report.NewGenerator(logger, paths)
	out, err := gen.Generate(ctx, result)
	if err != nil {
		logger.ErrorContext(ctx, "report generation failed", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "panelmerge: %v\n", err)
		os.Exit(1)
	}

	s := result.Stats
	fmt.Printf("Merged %d security-months against %d macro months (%d matched, %d without backdrop)\n",
		s.REITRows, s.MacroMonths, s.MatchedRows, s.UnmatchedRows)
	fmt.Printf("Row preservation check passed: %d in, %d out\n", s.REITRows, len(result.Rows))
	fmt.Printf("Wrote panel to %s\n", result.PanelCSV)
	fmt.Printf("Wrote summary statistics to %s\n", out.SummaryCSV)
	fmt.Printf("Wrote report to %s\n", out.ReportMD)
}

func resolvePaths(dir string) (*config.Paths, error) {
	if dir != "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		return config.GetPathsFrom(abs), nil
	}
	return config.GetPaths()
}
