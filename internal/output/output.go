// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package output writes each segment of a source PDF to its own file.
package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pdiddy/scansplit/pkg/types"
)

const (
	pdfExt = ".pdf"
	// minWidth is the smallest zero-padding applied to part numbers.
	minWidth = 3
)

// ErrExists reports an output name that is already taken.
var ErrExists = errors.New("file already exists")

// PageCopier copies pages between PDF files without re-rendering them.
type PageCopier interface {
	// CopyPages writes the zero-based pages of src, in the given order,
	// into a new file dst.
	CopyPages(src, dst string, pages []int) error

	// PageCount returns the number of pages in the PDF at path.
	PageCount(path string) (int, error)
}

// Width returns the zero-padding that keeps part names of a source with n
// segments in numeric order when sorted as strings.
func Width(n int) int {
	w := len(strconv.Itoa(n))
	if w < minWidth {
		return minWidth
	}
	return w
}

// Stem returns the source file name without directory or extension.
func Stem(src string) string {
	base := filepath.Base(src)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// FileName builds "<stem>-<part>.pdf" with part zero-padded to width.
func FileName(stem string, part, width int) string {
	return fmt.Sprintf("%s-%0*d%s", stem, width, part, pdfExt)
}

// Writer writes segments into one output directory. It remembers every
// name it produced so a second write to the same name in one run fails
// even when overwriting is allowed.
type Writer struct {
	dir       string
	copier    PageCopier
	overwrite bool
	written   map[string]bool
}

// NewWriter creates a Writer for dir.
func NewWriter(dir string, copier PageCopier, overwrite bool) *Writer {
	return &Writer{
		dir:       dir,
		copier:    copier,
		overwrite: overwrite,
		written:   make(map[string]bool),
	}
}

// Write copies seg's pages from src into dir under FileName(stem, part,
// width) and checks that the result holds exactly len(seg.Pages) pages.
// It returns the path of the new file.
func (w *Writer) Write(src, stem string, seg types.Segment, width int) (string, error) {
	name := FileName(stem, seg.PartNumber, width)
	dst := filepath.Join(w.dir, name)

	if len(seg.Pages) == 0 {
		return "", &types.WriteError{Path: dst, Err: errors.New("segment has no pages")}
	}
	if err := w.Claim(dst); err != nil {
		return "", err
	}

	if err := w.copier.CopyPages(src, dst, seg.Pages); err != nil {
		return "", &types.WriteError{Path: dst, Err: err}
	}

	n, err := w.copier.PageCount(dst)
	if err != nil {
		return "", &types.WriteError{Path: dst, Err: fmt.Errorf("reading back page count: %w", err)}
	}
	if n != len(seg.Pages) {
		return "", &types.WriteError{Path: dst, Err: fmt.Errorf("wrote %d page(s), want %d", n, len(seg.Pages))}
	}

	return dst, nil
}

// Claim reserves path for this run. It fails with a *types.WriteError
// wrapping ErrExists when the path was already produced in this run, or
// when it exists on disk and overwriting is off.
func (w *Writer) Claim(path string) error {
	key := filepath.Clean(path)
	if w.written[key] {
		return &types.WriteError{Path: path, Err: fmt.Errorf("%w: produced earlier in this run", ErrExists)}
	}
	if !w.overwrite {
		if _, err := os.Stat(path); err == nil {
			return &types.WriteError{Path: path, Err: ErrExists}
		} else if !errors.Is(err, os.ErrNotExist) {
			return &types.WriteError{Path: path, Err: err}
		}
	}
	w.written[key] = true
	return nil
}
