// pipeline runs the full ETL in order: REIT cleaning, macro cleaning,
// panel merge and reporting. It stops at the first failing stage.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"reitetl/internal/config"
	"reitetl/internal/infrastructure"
	"reitetl/internal/macro"
	"reitetl/internal/panel"
	"reitetl/internal/pipeline"
	"reitetl/internal/reitpanel"
	"reitetl/internal/report"
)

func main() {
	input := flag.String("input", "", "raw panel file, csv or xlsx (defaults to data/raw/reit_master_panel.csv)")
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
	cfg.Logging.FilePath = paths.GetLogPath("pipeline.log")
	if *noSynthetic {
		cfg.Macro.AllowSynthetic = false
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()
	paths.LogPathResolution()

	ctx := infrastructure.ContextWithTraceID(context.Background())

	cleanSvc := reitpanel.NewService(logger, paths, cfg.Clean)
	macroSvc := macro.NewService(logger, paths, cfg.Macro)
	mergeSvc := panel.NewService(logger, paths)
	reporter := report.NewGenerator(logger, paths)

	mgr := pipeline.NewManager(logger,
		pipeline.NewStep("reitclean", "REIT panel cleaning", func(ctx context.Context) error {
			result, err := cleanSvc.Run(ctx, *input)
			if err != nil {
				return err
			}
			fmt.Printf("[1/3] reitclean: %d rows in, %d clean rows out\n",
				result.Audit.InputRows, result.Audit.OutputRows)
			return nil
		}),
		pipeline.NewStep("fredclean", "macro series cleaning", func(ctx context.Context) error {
			result, err := macroSvc.Run(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("[2/3] fredclean: %d months, %d series\n",
				result.Audit.OutputRows, len(result.Audit.SeriesCounts))
			return nil
		}),
		pipeline.NewStep("panelmerge", "panel merge and report", func(ctx context.Context) error {
			result, err := mergeSvc.Run(ctx)
			if err != nil {
				return err
			}
			if _, err := reporter.Generate(ctx, result); err != nil {
				return err
			}
			fmt.Printf("[3/3] panelmerge: %d panel rows, %d matched a macro month\n",
				result.Stats.REITRows, result.Stats.MatchedRows)
			return nil
		}),
	)

	state, err := mgr.Run(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "pipeline failed", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "pipeline: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Pipeline %s completed in %s\n", state.ID, state.Duration().Round(time.Millisecond))
	fmt.Printf("Final artifacts in %s\n", paths.FinalDir)
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
