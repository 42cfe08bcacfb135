// Package commands provides high-level command implementations for deskit.
//
// This package contains the command orchestration layer that coordinates
// between the CLI interface and the installers, store and catalog.
//
// Each command is implemented in its own subdirectory:
//   - install/   - Install command
//   - list/      - List command
//   - uninstall/ - Uninstall command
//   - internal/  - Environment wiring and desktop database refresh
//
// This file re-exports the command functions so callers only import one
// package.
package commands

import (
	"context"

	"github.com/arthur-debert/deskit/pkg/commands/install"
	"github.com/arthur-debert/deskit/pkg/commands/internal"
	"github.com/arthur-debert/deskit/pkg/commands/list"
	"github.com/arthur-debert/deskit/pkg/commands/uninstall"
	"github.com/arthur-debert/deskit/pkg/config"
	"github.com/arthur-debert/deskit/pkg/types"
)

// Environment bundles the configured components commands run against.
type Environment = internal.Environment

// EnvironmentOptions overrides parts of the Environment, mostly for tests.
type EnvironmentOptions = internal.EnvironmentOptions

// Runner runs an external command to completion.
type Runner = internal.Runner

// NewEnvironment builds an Environment from the loaded configuration.
func NewEnvironment(cfg *config.Config, opts EnvironmentOptions) (*Environment, error) {
	return internal.NewEnvironment(cfg, opts)
}

// Install installs AppImages and web apps, one outcome per input.
type InstallOptions = install.InstallOptions

func Install(ctx context.Context, opts InstallOptions) *types.InstallReport {
	return install.Install(ctx, opts)
}

// List describes every installed app.
type ListOptions = list.ListOptions

func List(opts ListOptions) ([]types.InstalledApp, error) {
	return list.List(opts)
}

// Uninstall removes installed apps by identity, path or URL.
type UninstallOptions = uninstall.UninstallOptions

func Uninstall(ctx context.Context, opts UninstallOptions) (*types.UninstallReport, error) {
	return uninstall.Uninstall(ctx, opts)
}
