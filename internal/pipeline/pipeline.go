// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs one batch: validate paths, then for every source
// PDF extract pages, split at separators, write the parts and report them.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/pdiddy/scansplit/internal/catalog"
	"github.com/pdiddy/scansplit/internal/manifest"
	"github.com/pdiddy/scansplit/internal/output"
	"github.com/pdiddy/scansplit/internal/report"
	"github.com/pdiddy/scansplit/internal/segment"
	"github.com/pdiddy/scansplit/internal/validate"
	"github.com/pdiddy/scansplit/pkg/types"
)

// PageSource yields the recognized pages of one PDF. extract.Extractor
// implements it.
type PageSource interface {
	Collect(path string) ([]types.PageRecord, error)
}

// Result holds the outcome of a run.
type Result struct {
	Files      int
	Failed     int
	Pages      int
	Separators int
	Segments   int
	Bytes      uint64
}

// Total returns the number of source files attempted.
func (r Result) Total() int {
	return r.Files + r.Failed
}

// HasFailures reports whether any source file failed.
func (r Result) HasFailures() bool {
	return r.Failed > 0
}

// Runner executes runs for one configuration.
type Runner struct {
	cfg    types.RunConfig
	pages  PageSource
	copier output.PageCopier
	log    *zap.Logger

	now   func() time.Time
	newID func() string
}

// New creates a Runner. Collaborators are shared across all files of a run.
func New(cfg types.RunConfig, pages PageSource, copier output.PageCopier, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Output.Workbook == "" {
		cfg.Output.Workbook = types.DefaultWorkbookName
	}
	return &Runner{
		cfg:    cfg,
		pages:  pages,
		copier: copier,
		log:    log,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Run processes every PDF in the input directory, printing one status
// line per file to w and a summary at the end. By default the first
// failing file aborts the run; with KeepGoing the failure is recorded and
// the next file is processed, and Run still returns an error at the end.
// The workbook, catalog and manifest are closed and saved on every path.
func (r *Runner) Run(ctx context.Context, w io.Writer) (res Result, err error) {
	in, out := r.cfg.InputDir, r.cfg.OutputDir

	pdfs, err := validate.Paths(in, out)
	if err != nil {
		return res, err
	}
	if validate.SameDir(in, out) {
		r.log.Warn("input and output are the same directory", zap.String("dir", in))
	}

	runID := r.newID()
	started := r.now()
	log := r.log.With(zap.String("run_id", runID))
	log.Info("starting run", zap.String("input", in), zap.String("output", out), zap.Int("files", len(pdfs)))

	man := &manifest.Manifest{
		RunID:     runID,
		StartedAt: started,
		InputDir:  in,
		OutputDir: out,
		Workbook:  r.cfg.Output.Workbook,
	}

	wb, sink, err := r.openSinks(ctx, runID, started)
	if err != nil {
		return res, err
	}
	defer func() {
		err = multierr.Append(err, sink.Close())
		if r.cfg.Output.Manifest {
			man.FinishedAt = r.now()
			err = multierr.Append(err, manifest.Write(out, man))
		}
	}()

	writer := output.NewWriter(out, r.copier, r.cfg.Output.Overwrite)

	for _, pdf := range pdfs {
		name := filepath.Base(pdf)
		if info, statErr := os.Stat(pdf); statErr == nil {
			res.Bytes += uint64(info.Size())
		}

		src, rows, fileErr := r.processFile(pdf, writer)
		man.Sources = append(man.Sources, src)
		res.Pages += src.Pages
		res.Separators += len(src.Separators)

		if fileErr != nil {
			res.Failed++
			fmt.Fprintf(w, "failed:  %s (%v)\n", name, fileErr)
			log.Error("processing file", zap.String("file", name), zap.Error(fileErr))
			if !r.cfg.KeepGoing {
				return res, fileErr
			}
			continue
		}

		for _, row := range rows {
			if err := sink.Append(row); err != nil {
				return res, err
			}
		}
		res.Files++
		res.Segments += len(rows)

		if len(rows) == 0 {
			log.Warn("no content pages; nothing written", zap.String("file", name), zap.Int("pages", src.Pages))
		}
		fmt.Fprintf(w, "split:   %s (%d page(s), %d part(s))\n", name, src.Pages, len(rows))
	}

	fmt.Fprintf(w, "\nRun summary: %d file(s), %d page(s), %d separator(s), %d part(s) from %s",
		res.Total(), res.Pages, res.Separators, res.Segments, humanize.Bytes(res.Bytes))
	if res.HasFailures() {
		fmt.Fprintf(w, ", %d failed", res.Failed)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Report: %s (%d row(s))\n", wb.Path(), wb.Rows())

	log.Info("run finished",
		zap.Int("files", res.Files), zap.Int("failed", res.Failed),
		zap.Int("segments", res.Segments), zap.Duration("elapsed", r.now().Sub(started)))

	if res.HasFailures() {
		return res, fmt.Errorf("%d of %d file(s) failed", res.Failed, res.Total())
	}
	return res, nil
}

// processFile extracts, splits and writes one source PDF. It returns the
// manifest entry (complete up to the point of failure) and the report
// rows for the parts written.
func (r *Runner) processFile(path string, writer *output.Writer) (manifest.Source, []types.ReportRow, error) {
	src := manifest.Source{File: filepath.Base(path), Status: types.FileFailed}

	pages, err := r.pages.Collect(path)
	src.Pages = len(pages)
	if err != nil {
		src.Error = err.Error()
		return src, nil, err
	}
	src.Separators = segment.Separators(pages)

	segments := segment.Split(pages)
	stem := output.Stem(path)
	width := output.Width(len(segments))

	rows := make([]types.ReportRow, 0, len(segments))
	for _, seg := range segments {
		dst, err := writer.Write(path, stem, seg, width)
		if err != nil {
			src.Error = err.Error()
			return src, nil, err
		}
		fileName := filepath.Base(dst)
		src.Outputs = append(src.Outputs, manifest.Output{File: fileName, Part: seg.PartNumber, Pages: seg.Pages})
		rows = append(rows, types.ReportRow{
			FileName:   fileName,
			Content:    segment.Content(seg, pages),
			Source:     src.File,
			PartNumber: seg.PartNumber,
			Pages:      seg.Pages,
		})
		r.log.Debug("wrote part", zap.String("file", fileName), zap.Int("pages", len(seg.Pages)))
	}

	src.Status = types.FileSplit
	return src, rows, nil
}

// openSinks opens the workbook and, when enabled, the catalog. The
// returned sink feeds both.
func (r *Runner) openSinks(ctx context.Context, runID string, started time.Time) (*report.Workbook, report.Sink, error) {
	out := r.cfg.OutputDir
	wb, err := report.NewWorkbook(filepath.Join(out, r.cfg.Output.Workbook), r.cfg.Output.Overwrite, r.log)
	if err != nil {
		return nil, nil, err
	}
	if !r.cfg.Output.Catalog {
		return wb, wb, nil
	}

	store, err := catalog.Open(filepath.Join(out, catalog.FileName))
	if err != nil {
		return nil, nil, multierr.Append(&types.WriteError{Path: filepath.Join(out, catalog.FileName), Err: err}, wb.Close())
	}
	if err := store.BeginRun(ctx, runID, r.cfg.InputDir, out, started); err != nil {
		return nil, nil, multierr.Combine(err, store.Close(), wb.Close())
	}
	return wb, report.Tee{wb, &catalogSink{ctx: ctx, store: store, now: r.now}}, nil
}

// catalogSink stamps the run's finish time before closing the catalog.
type catalogSink struct {
	ctx   context.Context
	store *catalog.Store
	now   func() time.Time
}

func (c *catalogSink) Append(row types.ReportRow) error {
	return c.store.Append(row)
}

func (c *catalogSink) Close() error {
	return multierr.Append(c.store.FinishRun(c.ctx, c.now()), c.store.Close())
}
