// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ocr

import (
	"fmt"
	"image"
	"strconv"

	"github.com/otiai10/gosseract/v2"

	"github.com/pdiddy/scansplit/pkg/types"
)

// Tesseract recognizes text through the gosseract binding. One client is
// configured at construction and reused for every page of the run.
type Tesseract struct {
	client *gosseract.Client
}

// NewTesseract creates a client for the configured languages, trained
// data directory and DPI hint.
func NewTesseract(cfg types.OCRConfig) (*Tesseract, error) {
	c := gosseract.NewClient()
	c.Trim = false
	if cfg.TessdataPrefix != "" {
		if err := c.SetTessdataPrefix(cfg.TessdataPrefix); err != nil {
			c.Close()
			return nil, fmt.Errorf("setting tessdata prefix: %w", err)
		}
	}
	if err := c.SetLanguage(cfg.Languages...); err != nil {
		c.Close()
		return nil, fmt.Errorf("setting languages %v: %w", cfg.Languages, err)
	}
	if cfg.DPI > 0 {
		if err := c.SetVariable(gosseract.SettableVariable("user_defined_dpi"), strconv.Itoa(cfg.DPI)); err != nil {
			c.Close()
			return nil, fmt.Errorf("setting dpi: %w", err)
		}
	}
	return &Tesseract{client: c}, nil
}

func (t *Tesseract) Recognize(img image.Image) (string, error) {
	data, err := encodeTIFF(img)
	if err != nil {
		return "", err
	}
	if err := t.client.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	text, err := t.client.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return text, nil
}

func (t *Tesseract) Close() error {
	return t.client.Close()
}
