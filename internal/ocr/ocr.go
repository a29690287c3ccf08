// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ocr recognizes text in rendered page images with tesseract.
// Two engines share one interface: the gosseract library binding and the
// tesseract command-line binary for hosts without the cgo library.
package ocr

import (
	"bytes"
	"fmt"
	"image"
	"strings"

	"golang.org/x/image/tiff"

	"github.com/pdiddy/scansplit/pkg/types"
)

// Engine turns a page image into text. The text is returned as tesseract
// produced it, surrounding whitespace included. An empty string is a
// valid result.
type Engine interface {
	Recognize(img image.Image) (string, error)
	Close() error
}

// New builds the engine selected by cfg.
func New(cfg types.OCRConfig) (Engine, error) {
	if len(cfg.Languages) == 0 {
		return nil, fmt.Errorf("no OCR languages configured")
	}
	switch cfg.Engine {
	case types.EngineGosseract, "":
		return NewTesseract(cfg)
	case types.EngineCLI:
		return NewCLI(cfg)
	default:
		return nil, fmt.Errorf("unknown OCR engine %q (want %s or %s)", cfg.Engine, types.EngineGosseract, types.EngineCLI)
	}
}

// encodeTIFF serializes img for tesseract. Uncompressed TIFF is read
// natively by leptonica and costs far less to produce than PNG at page
// resolution.
func encodeTIFF(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := tiff.Encode(&buf, img, &tiff.Options{Compression: tiff.Uncompressed}); err != nil {
		return nil, fmt.Errorf("encoding page image: %w", err)
	}
	return buf.Bytes(), nil
}

func languageArg(langs []string) string {
	return strings.Join(langs, "+")
}
