// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package validate checks the input and output directories before a run
// opens any PDF.
package validate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/scansplit/pkg/types"
)

const pdfExt = ".pdf"

// Paths verifies that input is a directory holding at least one PDF and
// that output is an existing writable directory. It returns the PDF paths
// sorted by file name so output order does not depend on the platform's
// directory listing.
func Paths(input, output string) ([]string, error) {
	if err := requireDir(input); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(input)
	if err != nil {
		return nil, &types.InvalidPathError{Path: input, Reason: "cannot list directory", Err: err}
	}

	var pdfs []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if !IsPDF(entry.Name()) {
			continue
		}
		pdfs = append(pdfs, filepath.Join(input, entry.Name()))
	}
	if len(pdfs) == 0 {
		return nil, &types.InvalidPathError{Path: input, Reason: "no PDF files in the input directory"}
	}
	sort.Strings(pdfs)

	if err := requireDir(output); err != nil {
		return nil, err
	}
	if err := probeWritable(output); err != nil {
		return nil, &types.InvalidPathError{Path: output, Reason: "directory is not writable", Err: err}
	}

	return pdfs, nil
}

// IsPDF reports whether name carries a .pdf extension, ignoring case.
func IsPDF(name string) bool {
	return strings.EqualFold(filepath.Ext(name), pdfExt)
}

// SameDir reports whether input and output resolve to the same directory.
func SameDir(input, output string) bool {
	a, errA := filepath.Abs(input)
	b, errB := filepath.Abs(output)
	if errA != nil || errB != nil {
		return filepath.Clean(input) == filepath.Clean(output)
	}
	return a == b
}

func requireDir(path string) error {
	if path == "" {
		return &types.InvalidPathError{Path: path, Reason: "path is empty"}
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &types.InvalidPathError{Path: path, Reason: "does not exist"}
		}
		return &types.InvalidPathError{Path: path, Reason: "cannot stat", Err: err}
	}
	if !info.IsDir() {
		return &types.InvalidPathError{Path: path, Reason: "not a directory"}
	}
	return nil
}

// probeWritable creates and removes a temporary file in dir.
func probeWritable(dir string) error {
	f, err := os.CreateTemp(dir, ".scansplit-probe-*")
	if err != nil {
		return err
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		os.Remove(name)
		return fmt.Errorf("closing probe file: %w", err)
	}
	return os.Remove(name)
}
