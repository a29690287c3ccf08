package main

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/pdiddy/scansplit/pkg/types"
)

// envKeyReplacer maps nested keys to environment names:
// ocr.tessdata_prefix -> SCANSPLIT_OCR_TESSDATA_PREFIX.
var envKeyReplacer = strings.NewReplacer(".", "_")

// setDefaults registers every key so AutomaticEnv can resolve it and
// Unmarshal sees it even without a config file.
func setDefaults(v *viper.Viper) {
	d := types.DefaultRunConfig()

	v.SetDefault("render.dpi", d.Render.DPI)
	v.SetDefault("ocr.engine", string(d.OCR.Engine))
	v.SetDefault("ocr.languages", d.OCR.Languages)
	v.SetDefault("ocr.tessdata_prefix", d.OCR.TessdataPrefix)
	v.SetDefault("ocr.binary", d.OCR.Binary)
	v.SetDefault("separator.code", d.Separator.Code)
	v.SetDefault("separator.match", string(d.Separator.Match))
	v.SetDefault("output.workbook", d.Output.Workbook)
	v.SetDefault("output.overwrite", d.Output.Overwrite)
	v.SetDefault("output.manifest", d.Output.Manifest)
	v.SetDefault("output.catalog", d.Output.Catalog)
	v.SetDefault("keep_going", d.KeepGoing)
	v.SetDefault("log.level", "info")
}

// runConfig resolves the run configuration from viper and the two paths.
func runConfig(v *viper.Viper, input, output string) (types.RunConfig, error) {
	cfg := types.DefaultRunConfig()
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}
	// Environment values arrive as one string.
	if len(cfg.OCR.Languages) == 1 && strings.ContainsAny(cfg.OCR.Languages[0], "+, ") {
		cfg.OCR.Languages = strings.FieldsFunc(cfg.OCR.Languages[0], func(r rune) bool {
			return r == '+' || r == ',' || r == ' '
		})
	}
	cfg.InputDir = input
	cfg.OutputDir = output
	cfg.OCR.DPI = int(cfg.Render.DPI)
	return cfg, nil
}
