// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the scansplit CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd splits every PDF in an input directory and writes the parts and
// the report into an output directory.
var rootCmd = &cobra.Command{
	Use:   "scansplit <input_path> <output_path>",
	Short: "Split scanned PDF batches at separator sheets and report their text",
	Long: `scansplit reads every PDF in input_path, renders each page and runs
Arabic and English OCR on it. Pages carrying the separator code mark the
boundary between documents: everything between two separators is written
to output_path as <name>-NNN.pdf, and the recognized text of each part is
recorded in extracted_data.xlsx with the columns "File Name" and "Content".

The first failure aborts the run and exits non-zero.

The optional search catalog (output.catalog) needs SQLite's FTS5 module;
build with -tags sqlite_fts5 (mage build does).`,
	Args:          cobra.ExactArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runSplit,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./scansplit.yaml or ~/.config/scansplit/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log debug output")
}

func initConfig() {
	// A missing .env is the common case.
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("scansplit")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "scansplit"))
		}
	}

	setDefaults(viper.GetViper())

	viper.SetEnvPrefix("SCANSPLIT")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newLogger builds the console logger on stderr.
func newLogger(cmd *cobra.Command) (*zap.Logger, error) {
	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	if lvl := viper.GetString("log.level"); lvl != "" {
		parsed, err := zapcore.ParseLevel(lvl)
		if err != nil {
			return nil, fmt.Errorf("log.level: %w", err)
		}
		level.SetLevel(parsed)
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level.SetLevel(zap.DebugLevel)
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = level
	cfg.DisableStacktrace = true
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
