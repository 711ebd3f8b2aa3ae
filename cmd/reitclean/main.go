// reitclean loads the raw REIT security-month panel, applies the cleaning
// filters, and writes the cleaned CSV plus its audit sidecar.
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
	"reitetl/internal/reitpanel"
)

func main() {
	input := flag.String("input", "", "raw panel file, csv or xlsx (defaults to data/raw/reit_master_panel.csv)")
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
	cfg.Logging.FilePath = paths.GetLogPath("reitclean.log")

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.ContextWithTraceID(context.Background())

	svc := reitpanel.NewService(logger, paths, cfg.Clean)
	result, err := svc.Run(ctx, *input)
	if err != nil {
		logger.ErrorContext(ctx, "REIT cleaning failed", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "reitclean: %v\n", err)
		os.Exit(1)
	}

	a := result.Audit
	fmt.Printf("Read %d rows from %s\n", a.InputRows, a.Source)
	fmt.Printf("Dropped %d rows: %d malformed, %d missing key, %d bad dates, %d bad returns, %d duplicates, %d outliers\n",
		a.InputRows-a.OutputRows, a.DroppedMalformed, a.DroppedMissingKey,
		a.DroppedInvalidDates, a.DroppedInvalidReturns, a.DroppedDuplicates, a.DroppedOutliers)
	fmt.Printf("Wrote %d clean rows for %d tickers (%s to %s) to %s\n",
		a.OutputRows, a.UniqueTickers, a.DateMin, a.DateMax, result.OutputCSV)
}

// resolvePaths anchors the data tree at an explicit directory when given,
// otherwise next to the executable.
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
