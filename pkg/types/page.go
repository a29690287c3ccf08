// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "image"

// PageRecord holds one rendered and recognized page of a source PDF.
type PageRecord struct {
	// PageIndex is the zero-based position of the page in the source PDF.
	PageIndex int `json:"page_index" yaml:"page_index"`

	// Image is the rasterized page. The pipeline drops it once the page
	// has been recognized.
	Image image.Image `json:"-" yaml:"-"`

	// Text is the recognized text. Empty means OCR found nothing.
	Text string `json:"text" yaml:"text"`

	// IsSeparator marks a page carrying the marker code.
	IsSeparator bool `json:"is_separator" yaml:"is_separator"`
}

// Segment is a contiguous run of non-separator pages written as one output PDF.
type Segment struct {
	// PartNumber is 1-based and sequential within one source PDF.
	PartNumber int `json:"part_number" yaml:"part_number"`

	// Pages lists zero-based source page indices in original order.
	Pages []int `json:"pages" yaml:"pages"`
}

// ReportRow is one line of the run report: an output file and its text.
type ReportRow struct {
	FileName string `json:"file_name" yaml:"file_name"`
	Content  string `json:"content" yaml:"content"`

	// Source, PartNumber and Pages identify where the row came from.
	// The workbook ignores them; the catalog stores them.
	Source     string `json:"source,omitempty" yaml:"source,omitempty"`
	PartNumber int    `json:"part_number,omitempty" yaml:"part_number,omitempty"`
	Pages      []int  `json:"pages,omitempty" yaml:"pages,omitempty"`
}

// FileStatus indicates the outcome of processing one source PDF.
type FileStatus string

const (
	FileSplit  FileStatus = "split"
	FileFailed FileStatus = "failed"
)
