package internal

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/arthur-debert/deskit/pkg/config"
	"github.com/arthur-debert/deskit/pkg/errors"
	"github.com/arthur-debert/deskit/pkg/logging"
	"github.com/rs/zerolog"
)

// Runner runs an external command to completion
type Runner func(ctx context.Context, name string, args ...string) error

// LookPath reports whether a command is available
type LookPath func(name string) (string, error)

// DesktopDatabase refreshes the desktop environment's cache of application
// entries so new shortcuts show up without logging out.
type DesktopDatabase struct {
	cfg          config.Desktop
	shortcutsDir string
	run          Runner
	lookPath     LookPath
	logger       zerolog.Logger
}

// NewDesktopDatabase creates a DesktopDatabase for shortcutsDir. A nil run
// executes commands for real.
func NewDesktopDatabase(cfg config.Desktop, shortcutsDir string, run Runner) *DesktopDatabase {
	lookPath := exec.LookPath
	if run == nil {
		run = execRunner
	} else {
		// Injected runners decide themselves what exists.
		lookPath = func(name string) (string, error) { return name, nil }
	}
	return &DesktopDatabase{
		cfg:          cfg,
		shortcutsDir: shortcutsDir,
		run:          run,
		lookPath:     lookPath,
		logger:       logging.GetLogger("desktopdb"),
	}
}

// Refresh runs the configured database command. It is best effort: a
// disabled refresh or a missing tool is not an error, a failing tool is
// logged and reported to the caller for display only.
func (d *DesktopDatabase) Refresh(ctx context.Context) error {
	if !d.cfg.RefreshDatabase || d.cfg.DatabaseCommand == "" {
		d.logger.Trace().Msg("Desktop database refresh disabled")
		return nil
	}

	if _, err := d.lookPath(d.cfg.DatabaseCommand); err != nil {
		d.logger.Debug().Str("command", d.cfg.DatabaseCommand).Msg("Desktop database tool not installed")
		return nil
	}

	args := []string{d.shortcutsDir}
	logging.LogCommand(d.logger, d.cfg.DatabaseCommand, args)
	if err := d.run(ctx, d.cfg.DatabaseCommand, args...); err != nil {
		d.logger.Warn().Err(err).Msg("Desktop database refresh failed")
		return errors.Wrapf(err, errors.ErrInternal, "%s failed", d.cfg.DatabaseCommand).
			WithDetail("command", d.cfg.DatabaseCommand)
	}
	return nil
}

func execRunner(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output
	if err := cmd.Run(); err != nil {
		if out := strings.TrimSpace(output.String()); out != "" {
			return errors.Wrap(err, errors.ErrInternal, out)
		}
		return err
	}
	return nil
}
