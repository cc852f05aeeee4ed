package vectorstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Readiness is the marker the embedding builder writes after a successful
// run and the chat service checks at startup.
type Readiness struct {
	Ready     bool      `json:"ready"`
	Backend   string    `json:"backend"`
	Records   int       `json:"records"`
	Dimension int       `json:"dimension"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func WriteReadiness(path string, r Readiness) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create readiness directory: %w", err)
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write readiness marker: %w", err)
	}
	return os.Rename(tmp, path)
}

// ReadReadiness returns a zero marker when the file is missing or invalid;
// an unpopulated store is simply not ready.
func ReadReadiness(path string) Readiness {
	data, err := os.ReadFile(path)
	if err != nil {
		return Readiness{}
	}
	var r Readiness
	if err := json.Unmarshal(data, &r); err != nil {
		return Readiness{}
	}
	return r
}
