// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package manifest records what a run did with each source file.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scansplit/pkg/types"
)

// FileName is the manifest name inside the output directory.
const FileName = "manifest.yaml"

// Output is one file produced from a source PDF.
type Output struct {
	File  string `yaml:"file"`
	Part  int    `yaml:"part"`
	Pages []int  `yaml:"pages"`
}

// Source is the outcome for one input PDF.
type Source struct {
	File       string           `yaml:"file"`
	Pages      int              `yaml:"pages"`
	Separators []int            `yaml:"separators,omitempty"`
	Status     types.FileStatus `yaml:"status"`
	Error      string           `yaml:"error,omitempty"`
	Outputs    []Output         `yaml:"outputs,omitempty"`
}

// Manifest describes one run.
type Manifest struct {
	RunID      string    `yaml:"run_id"`
	StartedAt  time.Time `yaml:"started_at"`
	FinishedAt time.Time `yaml:"finished_at"`
	InputDir   string    `yaml:"input_dir"`
	OutputDir  string    `yaml:"output_dir"`
	Workbook   string    `yaml:"workbook"`
	Sources    []Source  `yaml:"sources"`
}

// Write saves m as YAML at dir/manifest.yaml.
func Write(dir string, m *Manifest) error {
	path := filepath.Join(dir, FileName)
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &types.WriteError{Path: path, Err: err}
	}
	return nil
}

// Read loads the manifest at path.
func Read(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &m, nil
}
