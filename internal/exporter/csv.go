package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"reitetl/internal/config"
)

// CSVWriter provides CSV export functionality for pipeline artifacts
type CSVWriter struct {
	paths *config.Paths
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(paths *config.Paths) *CSVWriter {
	return &CSVWriter{paths: paths}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers []string
	Records [][]string
	Append  bool
}

// WriteCSV writes data to a CSV file with the given options
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) error {
	fullPath := w.resolvePath(filePath)

	slog.Debug("Writing CSV file",
		slog.String("file_path", filePath),
		slog.String("full_path", fullPath),
		slog.Int("record_count", len(options.Records)))

	// Ensure directory exists
	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	flags := os.O_CREATE | os.O_WRONLY
	if options.Append {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	file, err := os.OpenFile(fullPath, flags, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write headers if not appending
	if !options.Append && len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	return writer.Error()
}

// WriteSimpleCSV writes a simple CSV file with headers and records
func (w *CSVWriter) WriteSimpleCSV(filePath string, headers []string, records [][]string) error {
	return w.WriteCSV(filePath, WriteOptions{
		Headers: headers,
		Records: records,
		Append:  false,
	})
}

// StreamWriter provides streaming CSV writing for large outputs such as
// the merged panel.
type StreamWriter struct {
	file   *os.File
	writer *csv.Writer
}

// CreateStreamWriter creates a new streaming CSV writer
func (w *CSVWriter) CreateStreamWriter(filePath string, headers []string) (*StreamWriter, error) {
	fullPath := w.resolvePath(filePath)

	slog.Debug("Creating CSV stream writer",
		slog.String("file_path", filePath),
		slog.String("full_path", fullPath),
		slog.Int("header_count", len(headers)))

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	writer := csv.NewWriter(file)

	if len(headers) > 0 {
		if err := writer.Write(headers); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to write headers: %w", err)
		}
	}

	return &StreamWriter{
		file:   file,
		writer: writer,
	}, nil
}

// WriteRecord writes a single record to the stream
func (s *StreamWriter) WriteRecord(record []string) error {
	return s.writer.Write(record)
}

// Close flushes and closes the stream writer
func (s *StreamWriter) Close() error {
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}

// resolvePath resolves a relative artifact name to its pipeline directory.
// Absolute paths pass through unchanged.
func (w *CSVWriter) resolvePath(filePath string) string {
	if filepath.IsAbs(filePath) {
		return filePath
	}

	switch {
	case strings.HasPrefix(filePath, "raw/"):
		return w.paths.GetRawPath(strings.TrimPrefix(filePath, "raw/"))
	case strings.HasPrefix(filePath, "processed/"):
		return w.paths.GetProcessedPath(strings.TrimPrefix(filePath, "processed/"))
	default:
		// Final artifacts are the common case
		return w.paths.GetFinalPath(filePath)
	}
}
