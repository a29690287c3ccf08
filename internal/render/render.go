// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render declares how PDF pages are rasterized for OCR. The MuPDF
// implementation lives in render/mupdf so consumers of these interfaces
// do not link the C library.
package render

import "image"

// Renderer opens PDF documents for rasterization.
type Renderer interface {
	Open(path string) (Document, error)
}

// Document is an open PDF whose pages can be rendered one at a time.
type Document interface {
	// NumPages returns the page count.
	NumPages() int

	// Render rasterizes the zero-based page at the given resolution.
	Render(page int, dpi float64) (image.Image, error)

	Close() error
}
