// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/scansplit/pkg/types"
)

func testStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	s, err := Open(path)
	if errors.Is(err, ErrNoFTS5) {
		t.Skip("catalog needs -tags sqlite_fts5")
	}
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, path
}

func TestAppendAndSearch(t *testing.T) {
	ctx := context.Background()
	s, _ := testStore(t)

	require.NoError(t, s.BeginRun(ctx, "run-1", "/in", "/out", time.Now()))
	rows := []types.ReportRow{
		{FileName: "contracts-001.pdf", Content: "lease agreement for warehouse", Source: "contracts.pdf", PartNumber: 1, Pages: []int{0, 1}},
		{FileName: "contracts-002.pdf", Content: "invoice total due", Source: "contracts.pdf", PartNumber: 2, Pages: []int{3}},
		{FileName: "letters-001.pdf", Content: "warehouse inspection letter", Source: "letters.pdf", PartNumber: 1, Pages: []int{0}},
	}
	for _, r := range rows {
		require.NoError(t, s.Append(r))
	}
	require.NoError(t, s.FinishRun(ctx, time.Now()))

	n, err := s.Count(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	hits, err := s.Search(ctx, "warehouse", 0)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	names := []string{hits[0].FileName, hits[1].FileName}
	assert.ElementsMatch(t, []string{"contracts-001.pdf", "letters-001.pdf"}, names)
	for _, h := range hits {
		assert.Equal(t, "run-1", h.RunID)
		assert.Contains(t, h.Snippet, "[warehouse]")
	}

	hits, err = s.Search(ctx, "invoice", 0)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, []int{3}, hits[0].Pages)
	assert.Equal(t, 2, hits[0].Part)
}

func TestSearch_Limit(t *testing.T) {
	ctx := context.Background()
	s, _ := testStore(t)
	require.NoError(t, s.BeginRun(ctx, "run-1", "/in", "/out", time.Now()))
	for i := 0; i < 5; i++ {
		require.NoError(t, s.Append(types.ReportRow{FileName: "x.pdf", Content: "stamp"}))
	}

	hits, err := s.Search(ctx, "stamp", 2)
	require.NoError(t, err)
	assert.Len(t, hits, 2)

	_, err = s.Search(ctx, "", 0)
	assert.Error(t, err)
}

func TestAppend_RequiresRun(t *testing.T) {
	s, _ := testStore(t)
	assert.Error(t, s.Append(types.ReportRow{FileName: "a.pdf"}))
}

func TestOpen_Reopen(t *testing.T) {
	ctx := context.Background()
	s, path := testStore(t)
	require.NoError(t, s.BeginRun(ctx, "run-1", "/in", "/out", time.Now()))
	require.NoError(t, s.Append(types.ReportRow{FileName: "a-001.pdf", Content: "persisted text"}))
	require.NoError(t, s.Close())

	again, err := Open(path)
	require.NoError(t, err)
	defer again.Close()

	hits, err := again.Search(ctx, "persisted", 0)
	require.NoError(t, err)
	assert.Len(t, hits, 1)
}

func TestSearch_CorruptPages(t *testing.T) {
	ctx := context.Background()
	s, _ := testStore(t)

	require.NoError(t, s.BeginRun(ctx, "run-1", "/in", "/out", time.Now()))
	_, err := s.db.Exec(
		`INSERT INTO segments (run_id, file_name, source, part, pages, content) VALUES (?, ?, ?, ?, ?, ?)`,
		"run-1", "broken-001.pdf", "broken.pdf", 1, "not json", "damaged record",
	)
	require.NoError(t, err)

	_, err = s.Search(ctx, "damaged", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken-001.pdf")
}

func TestCheckFTS5(t *testing.T) {
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), FileName))
	require.NoError(t, err)
	defer db.Close()

	var enabled int
	require.NoError(t, db.QueryRow(`SELECT sqlite_compileoption_used('ENABLE_FTS5')`).Scan(&enabled))

	s, err := Open(filepath.Join(t.TempDir(), FileName))
	if enabled == 0 {
		assert.ErrorIs(t, err, ErrNoFTS5)
		assert.Contains(t, err.Error(), "sqlite_fts5")
		return
	}
	require.NoError(t, err)
	assert.NoError(t, s.Close())
}
