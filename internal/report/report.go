// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report records one row per output file: its name and the text
// recognized on its pages.
package report

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/pdiddy/scansplit/pkg/types"
)

// Sink receives report rows in production order.
type Sink interface {
	Append(row types.ReportRow) error
	Close() error
}

// Column headers of the workbook.
const (
	HeaderFileName = "File Name"
	HeaderContent  = "Content"
)

const (
	sheetName = "Sheet1"
	// Column widths in characters, roughly 300px each.
	colWidth     = 42
	headerHeight = 25
	rowHeight    = 150
)

// Workbook streams rows into an xlsx file and saves it once on Close.
type Workbook struct {
	path   string
	file   *excelize.File
	stream *excelize.StreamWriter
	row    int
	log    *zap.Logger
	closed bool
}

// NewWorkbook creates the workbook at path and writes the header row.
// An existing file at path is an error unless overwrite is set.
func NewWorkbook(path string, overwrite bool, log *zap.Logger) (*Workbook, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return nil, &types.WriteError{Path: path, Err: errors.New("file already exists")}
		}
	}

	f := excelize.NewFile()
	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		f.Close()
		return nil, &types.WriteError{Path: path, Err: fmt.Errorf("creating stream writer: %w", err)}
	}
	if err := sw.SetColWidth(1, 2, colWidth); err != nil {
		f.Close()
		return nil, &types.WriteError{Path: path, Err: fmt.Errorf("setting column width: %w", err)}
	}

	wb := &Workbook{path: path, file: f, stream: sw, row: 1, log: log}
	if err := wb.writeRow(headerHeight, HeaderFileName, HeaderContent); err != nil {
		f.Close()
		return nil, err
	}
	return wb, nil
}

// Path returns where the workbook is saved.
func (w *Workbook) Path() string { return w.path }

// Rows returns the number of data rows written so far.
func (w *Workbook) Rows() int { return w.row - 2 }

// Append writes the row's file name and content. Content over the cell
// limit is cut to the limit.
func (w *Workbook) Append(row types.ReportRow) error {
	if w.closed {
		return &types.WriteError{Path: w.path, Err: errors.New("workbook already closed")}
	}
	content := row.Content
	if utf8.RuneCountInString(content) > excelize.TotalCellChars {
		w.log.Warn("content exceeds cell limit; truncating",
			zap.String("file", row.FileName),
			zap.Int("chars", utf8.RuneCountInString(content)),
			zap.Int("limit", excelize.TotalCellChars))
		content = truncateRunes(content, excelize.TotalCellChars)
	}
	return w.writeRow(rowHeight, row.FileName, content)
}

func (w *Workbook) writeRow(height float64, values ...string) error {
	cell, err := excelize.CoordinatesToCellName(1, w.row)
	if err != nil {
		return &types.WriteError{Path: w.path, Err: err}
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := w.stream.SetRow(cell, cells, excelize.RowOpts{Height: height}); err != nil {
		return &types.WriteError{Path: w.path, Err: fmt.Errorf("writing row %d: %w", w.row, err)}
	}
	w.row++
	return nil
}

// Close flushes buffered rows, saves the file and releases it. It is safe
// to call more than once.
func (w *Workbook) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	var saveErr error
	if err := w.stream.Flush(); err != nil {
		saveErr = &types.WriteError{Path: w.path, Err: fmt.Errorf("flushing rows: %w", err)}
	} else if err := w.file.SaveAs(w.path); err != nil {
		saveErr = &types.WriteError{Path: w.path, Err: err}
	}
	if err := w.file.Close(); err != nil && saveErr == nil {
		saveErr = &types.WriteError{Path: w.path, Err: err}
	}
	return saveErr
}

func truncateRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
