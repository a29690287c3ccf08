// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog keeps a searchable SQLite index of every output file a
// run produced, alongside the workbook.
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/scansplit/pkg/types"
)

// FileName is the catalog database name inside the output directory.
const FileName = "catalog.db"

const defaultMaxResults = 20

// ErrNoFTS5 means the SQLite driver was compiled without the FTS5 module.
var ErrNoFTS5 = errors.New("sqlite has no FTS5 module; build with -tags sqlite_fts5")

// Store manages the catalog SQLite database.
type Store struct {
	db    *sql.DB
	path  string
	runID string
}

// Open opens or creates the catalog at path and ensures the schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.checkFTS5(); err != nil {
		db.Close()
		return nil, err
	}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) checkFTS5() error {
	var enabled int
	if err := s.db.QueryRow(`SELECT sqlite_compileoption_used('ENABLE_FTS5')`).Scan(&enabled); err != nil {
		return fmt.Errorf("opening catalog: %w", err)
	}
	if enabled == 0 {
		return ErrNoFTS5
	}
	return nil
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			input_dir TEXT,
			output_dir TEXT,
			started_at TEXT,
			finished_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS segments (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id),
			file_name TEXT NOT NULL,
			source TEXT,
			part INTEGER,
			pages TEXT,
			content TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_segments_run_id ON segments(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_segments_source ON segments(source)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='segments_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}
	if ftsExists > 0 {
		return nil
	}

	ftsStatements := []string{
		`CREATE VIRTUAL TABLE segments_fts USING fts5(content, content=segments, content_rowid=rowid)`,
		`CREATE TRIGGER segments_ai AFTER INSERT ON segments BEGIN
			INSERT INTO segments_fts(rowid, content) VALUES (new.rowid, new.content);
		END`,
		`CREATE TRIGGER segments_ad AFTER DELETE ON segments BEGIN
			INSERT INTO segments_fts(segments_fts, rowid, content) VALUES('delete', old.rowid, old.content);
		END`,
	}
	for _, stmt := range ftsStatements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("creating FTS infrastructure: %w", err)
		}
	}
	return nil
}

// BeginRun registers a run. Rows appended afterwards belong to it.
func (s *Store) BeginRun(ctx context.Context, runID, inputDir, outputDir string, started time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, input_dir, output_dir, started_at) VALUES (?, ?, ?, ?)`,
		runID, inputDir, outputDir, started.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return &types.WriteError{Path: s.path, Err: fmt.Errorf("registering run: %w", err)}
	}
	s.runID = runID
	return nil
}

// FinishRun stamps the current run's finish time.
func (s *Store) FinishRun(ctx context.Context, finished time.Time) error {
	if s.runID == "" {
		return nil
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ? WHERE id = ?`,
		finished.UTC().Format(time.RFC3339), s.runID,
	)
	if err != nil {
		return &types.WriteError{Path: s.path, Err: fmt.Errorf("finishing run: %w", err)}
	}
	return nil
}

// Append stores one report row under the current run.
func (s *Store) Append(row types.ReportRow) error {
	if s.runID == "" {
		return &types.WriteError{Path: s.path, Err: errors.New("no run registered")}
	}
	pagesJSON, err := json.Marshal(row.Pages)
	if err != nil {
		return &types.WriteError{Path: s.path, Err: fmt.Errorf("encoding pages of %s: %w", row.FileName, err)}
	}
	_, err = s.db.Exec(
		`INSERT INTO segments (run_id, file_name, source, part, pages, content) VALUES (?, ?, ?, ?, ?, ?)`,
		s.runID, row.FileName, row.Source, row.PartNumber, string(pagesJSON), row.Content,
	)
	if err != nil {
		return &types.WriteError{Path: s.path, Err: fmt.Errorf("inserting %s: %w", row.FileName, err)}
	}
	return nil
}
