// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
)

// Hit is one output file matching a search.
type Hit struct {
	RunID    string `json:"run_id" yaml:"run_id"`
	FileName string `json:"file_name" yaml:"file_name"`
	Source   string `json:"source" yaml:"source"`
	Part     int    `json:"part" yaml:"part"`
	Pages    []int  `json:"pages" yaml:"pages"`
	Snippet  string `json:"snippet" yaml:"snippet"`
}

// Search runs an FTS5 query over segment content, best match first.
// maxResults <= 0 uses the default of 20.
func (s *Store) Search(ctx context.Context, query string, maxResults int) ([]Hit, error) {
	if query == "" {
		return nil, fmt.Errorf("empty search query")
	}
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT sg.run_id, sg.file_name, sg.source, sg.part, sg.pages,
			snippet(segments_fts, 0, '[', ']', '…', 12)
		FROM segments_fts
		JOIN segments sg ON sg.rowid = segments_fts.rowid
		WHERE segments_fts MATCH ?
		ORDER BY segments_fts.rank
		LIMIT ?`,
		query, maxResults,
	)
	if err != nil {
		return nil, fmt.Errorf("searching catalog: %w", err)
	}
	defer rows.Close()

	var hits []Hit
	for rows.Next() {
		var (
			h         Hit
			pagesJSON string
		)
		if err := rows.Scan(&h.RunID, &h.FileName, &h.Source, &h.Part, &pagesJSON, &h.Snippet); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if err := json.Unmarshal([]byte(pagesJSON), &h.Pages); err != nil {
			return nil, fmt.Errorf("decoding pages of %s: %w", h.FileName, err)
		}
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

// Count returns the number of segments stored for runID.
func (s *Store) Count(ctx context.Context, runID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM segments WHERE run_id = ?`, runID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting segments: %w", err)
	}
	return n, nil
}
