package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains all the application paths
// This is the single source of truth for ALL file paths in the pipeline
type Paths struct {
	ExecutableDir string
	DataDir       string
	RawDir        string
	ProcessedDir  string
	FinalDir      string
	LogsDir       string

	// Well-known stage inputs (raw directory)
	RawREITCSV string

	// Well-known stage outputs
	CleanREITCSV    string
	CleanMacroCSV   string
	REITAuditJSON   string
	MacroAuditJSON  string
	PanelCSV        string
	SummaryStatsCSV string
	ReportMarkdown  string
}

// GetPaths returns the application paths relative to the executable location
// All paths are ALWAYS relative to the executable directory, never the current working directory
func GetPaths() (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %v", err)
	}

	// Resolve symlinks to get the actual executable location
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %v", err)
	}

	return GetPathsFrom(filepath.Dir(exe)), nil
}

// GetPathsFrom builds the path set under an explicit base directory. Used
// by GetPaths with the executable directory and by binaries that accept a
// -dir override.
//
// Directory structure:
//
//	<base>/
//	  ├── data/
//	  │   ├── raw/        (master REIT panel, per-series macro CSVs)
//	  │   ├── processed/  (cleaned stage outputs + audit sidecars)
//	  │   └── final/      (merged panel, summary stats, report)
//	  └── logs/
func GetPathsFrom(baseDir string) *Paths {
	dataDir := filepath.Join(baseDir, "data")
	rawDir := filepath.Join(dataDir, "raw")
	processedDir := filepath.Join(dataDir, "processed")
	finalDir := filepath.Join(dataDir, "final")

	return &Paths{
		ExecutableDir: baseDir,
		DataDir:       dataDir,
		RawDir:        rawDir,
		ProcessedDir:  processedDir,
		FinalDir:      finalDir,
		LogsDir:       filepath.Join(baseDir, "logs"),

		RawREITCSV: filepath.Join(rawDir, "reit_master_panel.csv"),

		CleanREITCSV:    filepath.Join(processedDir, "reit_data_clean.csv"),
		CleanMacroCSV:   filepath.Join(processedDir, "fred_data_clean.csv"),
		REITAuditJSON:   filepath.Join(processedDir, "reit_clean_audit.json"),
		MacroAuditJSON:  filepath.Join(processedDir, "fred_clean_audit.json"),
		PanelCSV:        filepath.Join(finalDir, "reit_fred_analysis_panel.csv"),
		SummaryStatsCSV: filepath.Join(finalDir, "summary_statistics.csv"),
		ReportMarkdown:  filepath.Join(finalDir, "panel_report.md"),
	}
}

// EnsureDirectories creates all required directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	directories := []string{
		p.DataDir,
		p.RawDir,
		p.ProcessedDir,
		p.FinalDir,
		p.LogsDir,
	}

	logger := slog.Default()

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %v", dir, err)
		}

		if logger != nil {
			logger.Debug("Ensured directory exists",
				slog.String("directory", dir))
		}
	}

	return nil
}

// GetRawPath returns the path for a raw input file
func (p *Paths) GetRawPath(filename string) string {
	return filepath.Join(p.RawDir, filename)
}

// GetProcessedPath returns the path for a cleaned intermediate file
func (p *Paths) GetProcessedPath(filename string) string {
	return filepath.Join(p.ProcessedDir, filename)
}

// GetFinalPath returns the path for a final artifact
func (p *Paths) GetFinalPath(filename string) string {
	return filepath.Join(p.FinalDir, filename)
}

// GetLogPath returns the path for a log file
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// GetSeriesCSVPath returns the expected raw file for a macro series
// (e.g. FEDFUNDS -> data/raw/FEDFUNDS.csv)
func (p *Paths) GetSeriesCSVPath(series string) string {
	return filepath.Join(p.RawDir, fmt.Sprintf("%s.csv", series))
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// LogPathResolution logs detailed path resolution information for debugging
func (p *Paths) LogPathResolution() {
	logger := slog.Default()
	if logger == nil {
		return
	}

	logger.Info("Path resolution summary",
		slog.Group("directories",
			slog.String("executable", p.ExecutableDir),
			slog.String("raw", p.RawDir),
			slog.String("processed", p.ProcessedDir),
			slog.String("final", p.FinalDir),
			slog.String("logs", p.LogsDir),
		),
		slog.Group("artifacts",
			slog.String("clean_reit_csv", p.CleanREITCSV),
			slog.String("clean_macro_csv", p.CleanMacroCSV),
			slog.String("panel_csv", p.PanelCSV),
			slog.String("summary_stats_csv", p.SummaryStatsCSV),
			slog.String("report_markdown", p.ReportMarkdown),
		))
}
