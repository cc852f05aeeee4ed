package analyzer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"curator/repository"
)

// WriteContentRecords writes the analyzer's output interchange file
// atomically.
func WriteContentRecords(path string, records []repository.ContentRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create content directory: %w", err)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal content records: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write content file: %w", err)
	}
	return os.Rename(tmp, path)
}

// ReadContentRecords loads the interchange file, dropping records without a
// URL or content.
func ReadContentRecords(path string) ([]repository.ContentRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content file: %w", err)
	}

	var raw []repository.ContentRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse content file: %w", err)
	}

	records := make([]repository.ContentRecord, 0, len(raw))
	for _, rec := range raw {
		if rec.URL == "" || rec.Content == "" {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}
