package exporter

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteText writes a text artifact such as the Markdown report, creating
// parent directories as needed.
func WriteText(filePath string, content string) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}
