// fredclean loads the raw FRED series exports, aligns them onto a unified
// monthly index, derives the inflation and rate transforms, and writes the
// cleaned macro CSV plus its audit sidecar.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"reitetl/internal/config"
	"reitetl/internal/infrastructure"
	"reitetl/internal/macro"
)

func main() {
	series := flag.String("series", "", "comma-separated FRED series ids (defaults to the configured set)")
	dir := flag.String("dir", "", "pipeline base directory (defaults to the executable directory)")
	noSynthetic := flag.Bool("no-synthetic", false, "fail instead of generating synthetic data when no series files exist")
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
	cfg.Logging.FilePath = paths.GetLogPath("fredclean.log")
	if *series != "" {
		cfg.Macro.Series = splitSeries(*series)
	}
	if *noSynthetic {
		cfg.Macro.AllowSynthetic = false
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.ContextWithTraceID(context.Background())

	svc := macro.NewService(logger, paths, cfg.Macro)
	result, err := svc.Run(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "macro cleaning failed", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "fredclean: %v\n", err)
		os.Exit(1)
	}

	a := result.Audit
	if a.Synthetic {
		fmt.Println("No series files found, generated synthetic data")
	}
	if len(a.MissingSeries) > 0 {
		fmt.Printf("Skipped missing series: %s\n", strings.Join(a.MissingSeries, ", "))
	}
	fmt.Printf("Aligned %d series onto %d months (%s to %s)\n",
		len(a.SeriesCounts), a.OutputRows, a.DateMin, a.DateMax)
	fmt.Printf("Wrote cleaned macro data to %s\n", result.OutputCSV)
}

// splitSeries parses the -series flag into trimmed upper-case ids.
func splitSeries(raw string) []string {
	parts := strings.Split(raw, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if id := strings.ToUpper(strings.TrimSpace(p)); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
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
