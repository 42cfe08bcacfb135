package appimage

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/deskit/pkg/errors"
	"github.com/arthur-debert/deskit/pkg/logging"
)

// Extractor unpacks a placed AppImage into dir and returns the root of the
// extracted tree.
type Extractor interface {
	Extract(ctx context.Context, executable, dir string) (string, error)
}

// ExecExtractor runs the bundle's own extraction mode.
type ExecExtractor struct {
	// Flag is passed to the bundle, normally "--appimage-extract"
	Flag string
	// OutputDir is the folder the bundle extracts into, normally "squashfs-root"
	OutputDir string
}

// NewExecExtractor creates an ExecExtractor with the given flag and output folder
func NewExecExtractor(flag, outputDir string) *ExecExtractor {
	return &ExecExtractor{Flag: flag, OutputDir: outputDir}
}

// Extract runs "<executable> <flag>" with dir as working directory.
func (e *ExecExtractor) Extract(ctx context.Context, executable, dir string) (string, error) {
	logger := logging.GetLogger("appimage.extract")
	args := []string{e.Flag}
	logging.LogCommand(logger, executable, args)

	cmd := exec.CommandContext(ctx, executable, args...)
	cmd.Dir = dir
	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return "", errors.Wrapf(err, errors.ErrExtraction, "self-extraction of %s failed", executable).
			WithDetail("executable", executable).
			WithDetail("output", strings.TrimSpace(output.String()))
	}

	root := filepath.Join(dir, e.OutputDir)
	info, err := os.Stat(root)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrExtraction, "extraction produced no %s directory", e.OutputDir).
			WithDetail("executable", executable)
	}
	if !info.IsDir() {
		return "", errors.Newf(errors.ErrExtraction, "extraction output %s is not a directory", root).
			WithDetail("executable", executable)
	}

	logger.Debug().Str("root", root).Msg("Extraction finished")
	return root, nil
}
