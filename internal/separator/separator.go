// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package separator decides whether a recognized page is a separator sheet.
package separator

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/scansplit/pkg/types"
)

// Detector reports whether page text carries the marker code.
type Detector interface {
	IsSeparator(text string) bool
}

// Exact matches when the text contains the code verbatim. No case folding
// or whitespace normalization is applied.
type Exact struct {
	Code string
}

func (e Exact) IsSeparator(text string) bool {
	return e.Code != "" && strings.Contains(text, e.Code)
}

// Fragment tolerates OCR damage to the marker. A separator sheet carries
// little else, so the text must be short (strictly between MinLen and
// MaxLen runes) and contain at least one Window-rune slice of the code.
// Length is measured on the text exactly as the OCR engine returned it,
// trailing newline and form feed included.
type Fragment struct {
	Code   string
	Window int
	MinLen int
	MaxLen int
}

// Defaults for Fragment, tuned for a separator sheet holding only the code.
const (
	DefaultWindow = 6
	DefaultMinLen = 10
	DefaultMaxLen = 25
)

// NewFragment returns a Fragment detector with the default bounds.
func NewFragment(code string) Fragment {
	return Fragment{Code: code, Window: DefaultWindow, MinLen: DefaultMinLen, MaxLen: DefaultMaxLen}
}

func (f Fragment) IsSeparator(text string) bool {
	n := utf8.RuneCountInString(text)
	if n <= f.MinLen || n >= f.MaxLen {
		return false
	}
	for _, part := range f.parts() {
		if strings.Contains(text, part) {
			return true
		}
	}
	return false
}

// parts returns every Window-length slice of the code except the last one.
func (f Fragment) parts() []string {
	code := []rune(f.Code)
	if f.Window <= 0 || len(code) <= f.Window {
		if len(code) == 0 {
			return nil
		}
		return []string{string(code)}
	}
	parts := make([]string, 0, len(code)-f.Window)
	for i := 0; i < len(code)-f.Window; i++ {
		parts = append(parts, string(code[i:i+f.Window]))
	}
	return parts
}

// New builds the detector selected by cfg.
func New(cfg types.SeparatorConfig) (Detector, error) {
	if cfg.Code == "" {
		return nil, fmt.Errorf("separator code is empty")
	}
	switch cfg.Match {
	case types.MatchExact, "":
		return Exact{Code: cfg.Code}, nil
	case types.MatchFragment:
		return NewFragment(cfg.Code), nil
	default:
		return nil, fmt.Errorf("unknown separator match mode %q (want %s or %s)", cfg.Match, types.MatchExact, types.MatchFragment)
	}
}
