// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package segment partitions a source PDF's pages into sub-documents at
// separator pages.
package segment

import (
	"strings"

	"github.com/pdiddy/scansplit/pkg/types"
)

// TextSeparator joins page texts within one segment.
const TextSeparator = "\n"

// Split scans pages in order and closes the open segment at every
// separator page. Separator pages belong to no segment and empty segments
// are never emitted, so part numbers run 1..N without gaps.
func Split(pages []types.PageRecord) []types.Segment {
	var (
		segments []types.Segment
		open     []int
	)

	closeOpen := func() {
		if len(open) == 0 {
			return
		}
		segments = append(segments, types.Segment{
			PartNumber: len(segments) + 1,
			Pages:      open,
		})
		open = nil
	}

	for _, p := range pages {
		if p.IsSeparator {
			closeOpen()
			continue
		}
		open = append(open, p.PageIndex)
	}
	closeOpen()

	return segments
}

// Content joins the recognized text of the segment's pages in page order.
// Pages missing from pages contribute an empty string.
func Content(seg types.Segment, pages []types.PageRecord) string {
	byIndex := make(map[int]string, len(pages))
	for _, p := range pages {
		byIndex[p.PageIndex] = p.Text
	}
	texts := make([]string, len(seg.Pages))
	for i, idx := range seg.Pages {
		texts[i] = byIndex[idx]
	}
	return strings.Join(texts, TextSeparator)
}

// Separators returns the indices of separator pages.
func Separators(pages []types.PageRecord) []int {
	var idx []int
	for _, p := range pages {
		if p.IsSeparator {
			idx = append(idx, p.PageIndex)
		}
	}
	return idx
}
