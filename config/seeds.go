package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Seed is one source the analyzer should fetch.
type Seed struct {
	URL  string   `yaml:"url"`
	Tags []string `yaml:"tags,omitempty"`
}

type seedFile struct {
	Seeds []Seed `yaml:"seeds"`
}

// LoadSeeds reads the YAML seed list. Entries without a URL are skipped.
func LoadSeeds(path string) ([]Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	seeds := make([]Seed, 0, len(f.Seeds))
	for _, s := range f.Seeds {
		if s.URL == "" {
			continue
		}
		seeds = append(seeds, s)
	}
	return seeds, nil
}
