// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ocr

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"
	"os/exec"
	"strconv"

	"github.com/pdiddy/scansplit/pkg/types"
)

const defaultBinary = "tesseract"

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunPiped(name string, args []string, env []string, stdin io.Reader, stdout io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunPiped(name string, args []string, env []string, stdin io.Reader, stdout io.Writer) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}
	if err := cmd.Run(); err != nil {
		if msg := bytes.TrimSpace(stderr.Bytes()); len(msg) > 0 {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}

var defaultExec executor = &osExecutor{}

// CLI recognizes text by piping each page image through the tesseract
// binary: tesseract stdin stdout -l ara+eng --dpi N.
type CLI struct {
	bin  string
	args []string
	env  []string
	exec executor
}

// NewCLI verifies that the tesseract binary is on PATH.
func NewCLI(cfg types.OCRConfig) (*CLI, error) {
	return newCLI(cfg, defaultExec)
}

func newCLI(cfg types.OCRConfig, exec executor) (*CLI, error) {
	bin := cfg.Binary
	if bin == "" {
		bin = defaultBinary
	}
	if _, err := exec.LookPath(bin); err != nil {
		return nil, fmt.Errorf("tesseract binary %s not available: %w", bin, err)
	}

	args := []string{"stdin", "stdout", "-l", languageArg(cfg.Languages)}
	if cfg.DPI > 0 {
		args = append(args, "--dpi", strconv.Itoa(cfg.DPI))
	}
	var env []string
	if cfg.TessdataPrefix != "" {
		env = append(env, "TESSDATA_PREFIX="+cfg.TessdataPrefix)
	}

	return &CLI{bin: bin, args: args, env: env, exec: exec}, nil
}

func (c *CLI) Recognize(img image.Image) (string, error) {
	data, err := encodeTIFF(img)
	if err != nil {
		return "", err
	}
	var out bytes.Buffer
	if err := c.exec.RunPiped(c.bin, c.args, c.env, bytes.NewReader(data), &out); err != nil {
		return "", fmt.Errorf("running %s: %w", c.bin, err)
	}
	return out.String(), nil
}

func (c *CLI) Close() error { return nil }
