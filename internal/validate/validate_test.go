// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package validate

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/scansplit/pkg/types"
)

func writeFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o644))
	return path
}

func TestPaths(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(t *testing.T) (input, output string)
		wantFiles  []string
		wantReason string
	}{
		{
			name: "returns PDFs sorted by name",
			setup: func(t *testing.T) (string, string) {
				in := t.TempDir()
				writeFile(t, in, "b.pdf")
				writeFile(t, in, "a.PDF")
				writeFile(t, in, "notes.txt")
				require.NoError(t, os.Mkdir(filepath.Join(in, "dir.pdf"), 0o755))
				return in, t.TempDir()
			},
			wantFiles: []string{"a.PDF", "b.pdf"},
		},
		{
			name: "input does not exist",
			setup: func(t *testing.T) (string, string) {
				return filepath.Join(t.TempDir(), "missing"), t.TempDir()
			},
			wantReason: "does not exist",
		},
		{
			name: "input is a file",
			setup: func(t *testing.T) (string, string) {
				return writeFile(t, t.TempDir(), "a.pdf"), t.TempDir()
			},
			wantReason: "not a directory",
		},
		{
			name: "input has no PDFs",
			setup: func(t *testing.T) (string, string) {
				in := t.TempDir()
				writeFile(t, in, "scan.tiff")
				return in, t.TempDir()
			},
			wantReason: "no PDF files in the input directory",
		},
		{
			name: "output does not exist",
			setup: func(t *testing.T) (string, string) {
				in := t.TempDir()
				writeFile(t, in, "a.pdf")
				return in, filepath.Join(t.TempDir(), "missing")
			},
			wantReason: "does not exist",
		},
		{
			name: "empty output path",
			setup: func(t *testing.T) (string, string) {
				in := t.TempDir()
				writeFile(t, in, "a.pdf")
				return in, ""
			},
			wantReason: "path is empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, out := tt.setup(t)
			got, err := Paths(in, out)

			if tt.wantReason != "" {
				var pathErr *types.InvalidPathError
				require.True(t, errors.As(err, &pathErr), "want InvalidPathError, got %v", err)
				assert.Equal(t, tt.wantReason, pathErr.Reason)
				assert.Nil(t, got)
				return
			}

			require.NoError(t, err)
			want := make([]string, len(tt.wantFiles))
			for i, name := range tt.wantFiles {
				want[i] = filepath.Join(in, name)
			}
			assert.Equal(t, want, got)
		})
	}
}

func TestPaths_ReadOnlyOutput(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced here")
	}
	in := t.TempDir()
	writeFile(t, in, "a.pdf")
	out := t.TempDir()
	require.NoError(t, os.Chmod(out, 0o555))
	t.Cleanup(func() { os.Chmod(out, 0o755) })

	_, err := Paths(in, out)
	var pathErr *types.InvalidPathError
	require.True(t, errors.As(err, &pathErr))
	assert.Equal(t, "directory is not writable", pathErr.Reason)
}

func TestPaths_LeavesNoProbeFile(t *testing.T) {
	in := t.TempDir()
	writeFile(t, in, "a.pdf")
	out := t.TempDir()

	_, err := Paths(in, out)
	require.NoError(t, err)

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSameDir(t *testing.T) {
	dir := t.TempDir()
	assert.True(t, SameDir(dir, dir+string(filepath.Separator)))
	assert.False(t, SameDir(dir, t.TempDir()))
}
