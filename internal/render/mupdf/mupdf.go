// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mupdf renders PDF pages with MuPDF through go-fitz.
package mupdf

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"

	"github.com/pdiddy/scansplit/internal/render"
)

// Renderer renders pages with MuPDF.
type Renderer struct{}

// New returns a MuPDF-backed renderer.
func New() *Renderer { return &Renderer{} }

func (Renderer) Open(path string) (render.Document, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return &document{doc: doc}, nil
}

type document struct {
	doc *fitz.Document
}

func (d *document) NumPages() int { return d.doc.NumPage() }

func (d *document) Render(page int, dpi float64) (image.Image, error) {
	if page < 0 || page >= d.doc.NumPage() {
		return nil, fmt.Errorf("page %d out of range (document has %d)", page+1, d.doc.NumPage())
	}
	img, err := d.doc.ImageDPI(page, dpi)
	if err != nil {
		return nil, err
	}
	return img, nil
}

func (d *document) Close() error { return d.doc.Close() }
