// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/scansplit/pkg/types"
)

// fakeCopier writes a text file listing the copied pages, one per line,
// and counts pages by reading those lines back.
type fakeCopier struct {
	copyErr  error
	dropPage bool
	calls    int
}

func (f *fakeCopier) CopyPages(src, dst string, pages []int) error {
	f.calls++
	if f.copyErr != nil {
		return f.copyErr
	}
	if f.dropPage {
		pages = pages[:len(pages)-1]
	}
	lines := make([]string, len(pages))
	for i, p := range pages {
		lines[i] = fmt.Sprint(p)
	}
	return os.WriteFile(dst, []byte(strings.Join(lines, "\n")), 0o644)
}

func (f *fakeCopier) PageCount(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	if len(data) == 0 {
		return 0, nil
	}
	return len(strings.Split(string(data), "\n")), nil
}

func TestWidthAndFileName(t *testing.T) {
	tests := []struct {
		segments int
		part     int
		want     string
	}{
		{1, 1, "scan-001.pdf"},
		{12, 7, "scan-007.pdf"},
		{999, 999, "scan-999.pdf"},
		{1000, 42, "scan-0042.pdf"},
		{12345, 12345, "scan-12345.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FileName("scan", tt.part, Width(tt.segments)))
		})
	}
}

func TestFileName_LexicographicOrderMatchesNumeric(t *testing.T) {
	const n = 1200
	w := Width(n)
	names := make([]string, n)
	for i := range names {
		names[i] = FileName("batch", i+1, w)
	}
	assert.True(t, sort.StringsAreSorted(names))
}

func TestStem(t *testing.T) {
	assert.Equal(t, "invoices", Stem("/in/invoices.PDF"))
	assert.Equal(t, "a.b", Stem("a.b.pdf"))
}

func TestWriter_Write(t *testing.T) {
	dir := t.TempDir()
	c := &fakeCopier{}
	w := NewWriter(dir, c, false)

	seg := types.Segment{PartNumber: 2, Pages: []int{3, 4, 5}}
	path, err := w.Write("/in/scan.pdf", "scan", seg, 3)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "scan-002.pdf"), path)

	n, err := c.PageCount(path)
	require.NoError(t, err)
	assert.Equal(t, len(seg.Pages), n)
}

func TestWriter_Collisions(t *testing.T) {
	seg := types.Segment{PartNumber: 1, Pages: []int{0}}

	t.Run("same name twice in one run", func(t *testing.T) {
		w := NewWriter(t.TempDir(), &fakeCopier{}, true)
		_, err := w.Write("a.pdf", "a", seg, 3)
		require.NoError(t, err)

		_, err = w.Write("a.pdf", "a", seg, 3)
		var writeErr *types.WriteError
		require.True(t, errors.As(err, &writeErr))
		assert.ErrorIs(t, err, ErrExists)
	})

	t.Run("pre-existing file without overwrite", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a-001.pdf"), []byte("old"), 0o644))
		c := &fakeCopier{}
		w := NewWriter(dir, c, false)

		_, err := w.Write("a.pdf", "a", seg, 3)
		assert.ErrorIs(t, err, ErrExists)
		assert.Zero(t, c.calls, "nothing is copied over an existing file")

		data, err := os.ReadFile(filepath.Join(dir, "a-001.pdf"))
		require.NoError(t, err)
		assert.Equal(t, "old", string(data))
	})

	t.Run("pre-existing file with overwrite", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a-001.pdf"), []byte("old"), 0o644))
		w := NewWriter(dir, &fakeCopier{}, true)

		_, err := w.Write("a.pdf", "a", seg, 3)
		assert.NoError(t, err)
	})
}

func TestWriter_Failures(t *testing.T) {
	seg := types.Segment{PartNumber: 1, Pages: []int{0, 1}}

	t.Run("copy failure", func(t *testing.T) {
		w := NewWriter(t.TempDir(), &fakeCopier{copyErr: errors.New("corrupt xref")}, false)
		_, err := w.Write("a.pdf", "a", seg, 3)
		var writeErr *types.WriteError
		require.True(t, errors.As(err, &writeErr))
		assert.Contains(t, err.Error(), "corrupt xref")
	})

	t.Run("page count mismatch", func(t *testing.T) {
		w := NewWriter(t.TempDir(), &fakeCopier{dropPage: true}, false)
		_, err := w.Write("a.pdf", "a", seg, 3)
		var writeErr *types.WriteError
		require.True(t, errors.As(err, &writeErr))
		assert.Contains(t, err.Error(), "wrote 1 page(s), want 2")
	})

	t.Run("empty segment", func(t *testing.T) {
		w := NewWriter(t.TempDir(), &fakeCopier{}, false)
		_, err := w.Write("a.pdf", "a", types.Segment{PartNumber: 1}, 3)
		assert.Error(t, err)
	})
}
