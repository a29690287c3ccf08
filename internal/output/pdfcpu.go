// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package output

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Pdfcpu copies pages with pdfcpu. Page content streams and resources are
// carried over as-is.
type Pdfcpu struct {
	conf *model.Configuration
}

// NewPdfcpu returns a copier using pdfcpu's default configuration with
// relaxed validation; scanner output often breaks minor PDF rules. No
// pdfcpu config directory is created under the user's home.
func NewPdfcpu() *Pdfcpu {
	api.DisableConfigDir()
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Pdfcpu{conf: conf}
}

func (p *Pdfcpu) CopyPages(src, dst string, pages []int) error {
	selected := make([]string, len(pages))
	for i, idx := range pages {
		selected[i] = strconv.Itoa(idx + 1)
	}
	if err := api.TrimFile(src, dst, selected, p.config()); err != nil {
		return fmt.Errorf("copying pages %v of %s: %w", selected, src, err)
	}
	return nil
}

func (p *Pdfcpu) PageCount(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("counting pages of %s: %w", path, err)
	}
	defer f.Close()

	n, err := api.PageCount(f, p.config())
	if err != nil {
		return 0, fmt.Errorf("counting pages of %s: %w", path, err)
	}
	return n, nil
}

// config returns a copy of the configuration; pdfcpu records the current
// command on it.
func (p *Pdfcpu) config() *model.Configuration {
	c := *p.conf
	return &c
}
