// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract renders each page of a PDF, recognizes its text and
// marks separator pages.
package extract

import (
	"image"
	"iter"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/scansplit/internal/render"
	"github.com/pdiddy/scansplit/internal/separator"
	"github.com/pdiddy/scansplit/pkg/types"
)

// Recognizer turns a page image into text. ocr.Engine implements it.
type Recognizer interface {
	Recognize(img image.Image) (string, error)
}

// Extractor produces PageRecords for one PDF at a time. Its collaborators
// are injected at construction and shared across every file of a run.
type Extractor struct {
	renderer render.Renderer
	engine   Recognizer
	detector separator.Detector
	dpi      float64
	log      *zap.Logger
}

// New creates an Extractor. A dpi below types.MinRecommendedDPI is accepted
// but logged, since recognition quality degrades quickly under it.
func New(r render.Renderer, e Recognizer, d separator.Detector, dpi float64, log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	if dpi <= 0 {
		dpi = types.DefaultDPI
	}
	if dpi < types.MinRecommendedDPI {
		log.Warn("render resolution below recommended minimum; OCR accuracy will suffer",
			zap.Float64("dpi", dpi), zap.Int("recommended", types.MinRecommendedDPI))
	}
	return &Extractor{renderer: r, engine: e, detector: d, dpi: dpi, log: log}
}

// DPI returns the render resolution in use.
func (x *Extractor) DPI() float64 { return x.dpi }

// Pages returns the pages of the PDF at path in order. Every iteration
// opens the document and renders from scratch. A render or OCR failure is
// yielded as a *types.RenderError or *types.OcrError and ends the
// sequence. The document is closed when iteration stops for any reason.
// The separator rule sees the recognized text untouched; the record keeps
// it trimmed.
func (x *Extractor) Pages(path string) iter.Seq2[types.PageRecord, error] {
	return func(yield func(types.PageRecord, error) bool) {
		doc, err := x.renderer.Open(path)
		if err != nil {
			yield(types.PageRecord{}, &types.RenderError{Path: path, Page: -1, Err: err})
			return
		}
		defer func() {
			if err := doc.Close(); err != nil {
				x.log.Warn("closing rendered document", zap.String("path", path), zap.Error(err))
			}
		}()

		n := doc.NumPages()
		x.log.Debug("rendering document", zap.String("path", path), zap.Int("pages", n), zap.Float64("dpi", x.dpi))

		for i := 0; i < n; i++ {
			img, err := doc.Render(i, x.dpi)
			if err != nil {
				yield(types.PageRecord{PageIndex: i}, &types.RenderError{Path: path, Page: i, Err: err})
				return
			}
			raw, err := x.engine.Recognize(img)
			if err != nil {
				yield(types.PageRecord{PageIndex: i, Image: img}, &types.OcrError{Path: path, Page: i, Err: err})
				return
			}

			rec := types.PageRecord{
				PageIndex:   i,
				Image:       img,
				Text:        strings.TrimSpace(raw),
				IsSeparator: x.detector.IsSeparator(raw),
			}
			if rec.IsSeparator {
				x.log.Debug("separator page", zap.String("path", path), zap.Int("page", i+1))
			}
			if !yield(rec, nil) {
				return
			}
		}
	}
}

// Collect drains Pages into a slice, dropping page images as it goes. It
// stops at the first error.
func (x *Extractor) Collect(path string) ([]types.PageRecord, error) {
	var pages []types.PageRecord
	for rec, err := range x.Pages(path) {
		if err != nil {
			return pages, err
		}
		rec.Image = nil
		pages = append(pages, rec)
	}
	return pages, nil
}
