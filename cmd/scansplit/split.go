// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/pdiddy/scansplit/internal/extract"
	"github.com/pdiddy/scansplit/internal/ocr"
	"github.com/pdiddy/scansplit/internal/output"
	"github.com/pdiddy/scansplit/internal/pipeline"
	"github.com/pdiddy/scansplit/internal/render/mupdf"
	"github.com/pdiddy/scansplit/internal/separator"
	"github.com/pdiddy/scansplit/internal/validate"
)

func runSplit(cmd *cobra.Command, args []string) (err error) {
	log, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	cfg, err := runConfig(viper.GetViper(), args[0], args[1])
	if err != nil {
		return err
	}

	// Paths are checked before the OCR engine loads its trained data.
	if _, err := validate.Paths(cfg.InputDir, cfg.OutputDir); err != nil {
		return err
	}

	detector, err := separator.New(cfg.Separator)
	if err != nil {
		return err
	}

	engine, err := ocr.New(cfg.OCR)
	if err != nil {
		return fmt.Errorf("starting OCR engine: %w", err)
	}
	defer func() {
		err = multierr.Append(err, engine.Close())
	}()

	x := extract.New(mupdf.New(), engine, detector, cfg.Render.DPI, log)

	log.Debug("configuration",
		zap.String("ocr_engine", string(cfg.OCR.Engine)),
		zap.Strings("languages", cfg.OCR.Languages),
		zap.Float64("dpi", x.DPI()),
		zap.String("separator_match", string(cfg.Separator.Match)),
		zap.Bool("keep_going", cfg.KeepGoing))

	runner := pipeline.New(cfg, x, output.NewPdfcpu(), log)

	if _, err := runner.Run(context.Background(), os.Stdout); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Your data is ready in %s\n", cfg.OutputDir)
	return nil
}
