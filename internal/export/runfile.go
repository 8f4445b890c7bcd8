// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/meshintel/paperscreen/pkg/types"
)

// RunFile captures one screening run so its results can be re-exported or
// inspected later without refetching.
type RunFile struct {
	// Query is the PubMed query the run was produced from.
	Query string `json:"query" yaml:"query"`

	// CreatedAt is when the run finished.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	// Fetched is the number of records retrieved before screening.
	Fetched int `json:"fetched" yaml:"fetched"`

	// Results are the summaries that passed the screen.
	Results []types.Summary `json:"results" yaml:"results"`
}

// SaveRunFile writes the run as YAML, creating parent directories as needed.
func SaveRunFile(run RunFile, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	data, err := yaml.Marshal(run)
	if err != nil {
		return fmt.Errorf("marshaling run: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// LoadRunFile reads a run written by SaveRunFile.
func LoadRunFile(path string) (RunFile, error) {
	var run RunFile
	data, err := os.ReadFile(path)
	if err != nil {
		return run, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &run); err != nil {
		return run, fmt.Errorf("parsing %s: %w", path, err)
	}
	return run, nil
}
