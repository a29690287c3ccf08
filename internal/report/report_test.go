// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap/zaptest"

	"github.com/pdiddy/scansplit/pkg/types"
)

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	return rows
}

func TestWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), types.DefaultWorkbookName)
	wb, err := NewWorkbook(path, false, zaptest.NewLogger(t))
	require.NoError(t, err)

	rows := []types.ReportRow{
		{FileName: "a-001.pdf", Content: "first page\nsecond page"},
		{FileName: "a-002.pdf", Content: "مرحبا بالعالم"},
		{FileName: "b-001.pdf", Content: "=SUM(A1:A2)"},
	}
	for _, r := range rows {
		require.NoError(t, wb.Append(r))
	}
	assert.Equal(t, 3, wb.Rows())
	assert.Equal(t, path, wb.Path())
	require.NoError(t, wb.Close())
	require.NoError(t, wb.Close(), "second close is a no-op")

	got := readRows(t, path)
	require.Len(t, got, 4)
	assert.Equal(t, []string{HeaderFileName, HeaderContent}, got[0])
	for i, r := range rows {
		assert.Equal(t, []string{r.FileName, r.Content}, got[i+1])
	}
}

func TestWorkbook_HeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	wb, err := NewWorkbook(path, false, nil)
	require.NoError(t, err)
	require.NoError(t, wb.Close())

	got := readRows(t, path)
	require.Len(t, got, 1)
	assert.Equal(t, []string{HeaderFileName, HeaderContent}, got[0])
}

func TestWorkbook_TruncatesLongContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "long.xlsx")
	wb, err := NewWorkbook(path, false, zaptest.NewLogger(t))
	require.NoError(t, err)

	long := strings.Repeat("ب", excelize.TotalCellChars+10)
	require.NoError(t, wb.Append(types.ReportRow{FileName: "x-001.pdf", Content: long}))
	require.NoError(t, wb.Close())

	got := readRows(t, path)
	require.Len(t, got, 2)
	assert.Equal(t, excelize.TotalCellChars, utf8.RuneCountInString(got[1][1]))
}

func TestWorkbook_ExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exists.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("keep me"), 0o644))

	_, err := NewWorkbook(path, false, nil)
	var writeErr *types.WriteError
	require.True(t, errors.As(err, &writeErr))

	wb, err := NewWorkbook(path, true, nil)
	require.NoError(t, err)
	require.NoError(t, wb.Close())
	assert.Len(t, readRows(t, path), 1)
}

func TestWorkbook_AppendAfterClose(t *testing.T) {
	wb, err := NewWorkbook(filepath.Join(t.TempDir(), "c.xlsx"), false, nil)
	require.NoError(t, err)
	require.NoError(t, wb.Close())
	assert.Error(t, wb.Append(types.ReportRow{FileName: "late.pdf"}))
}

// memSink collects rows for testing.
type memSink struct {
	rows      []types.ReportRow
	appendErr error
	closeErr  error
	closed    bool
}

func (m *memSink) Append(row types.ReportRow) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.rows = append(m.rows, row)
	return nil
}

func (m *memSink) Close() error {
	m.closed = true
	return m.closeErr
}

func TestTee(t *testing.T) {
	a, b := &memSink{}, &memSink{}
	tee := Tee{a, b}
	row := types.ReportRow{FileName: "a-001.pdf", Content: "x"}
	require.NoError(t, tee.Append(row))
	assert.Equal(t, []types.ReportRow{row}, a.rows)
	assert.Equal(t, []types.ReportRow{row}, b.rows)

	errA, errB := errors.New("a"), errors.New("b")
	a.closeErr, b.closeErr = errA, errB
	err := tee.Close()
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
	assert.True(t, a.closed && b.closed)
}
