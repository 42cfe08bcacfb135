package uninstall

import (
	"context"

	"github.com/arthur-debert/deskit/pkg/commands/internal"
	"github.com/arthur-debert/deskit/pkg/errors"
	"github.com/arthur-debert/deskit/pkg/logging"
	"github.com/arthur-debert/deskit/pkg/types"
)

// UninstallOptions defines the options for the Uninstall command.
type UninstallOptions struct {
	// Env provides the catalog.
	Env *internal.Environment
	// Inputs are identities, or the paths and URLs they were installed from.
	Inputs []string
}

// Uninstall removes every input independently. Inputs that are not
// installed succeed with WasInstalled false.
func Uninstall(ctx context.Context, opts UninstallOptions) (*types.UninstallReport, error) {
	log := logging.GetLogger("core.commands")
	log.Debug().Str("command", "Uninstall").Strs("inputs", opts.Inputs).Msg("Executing command")

	if len(opts.Inputs) == 0 {
		return nil, errors.New(errors.ErrInput, "nothing to uninstall")
	}

	report := &types.UninstallReport{
		Outcomes: make([]types.UninstallOutcome, 0, len(opts.Inputs)),
	}
	removed := 0

	for _, input := range opts.Inputs {
		outcome := types.UninstallOutcome{Input: input}

		id, err := opts.Env.Catalog.Resolve(input)
		if err != nil {
			outcome.Err = err
			report.Outcomes = append(report.Outcomes, outcome)
			log.Error().Err(err).Str("input", input).Msg("Uninstall failed")
			continue
		}
		outcome.ID = id
		outcome.WasInstalled = opts.Env.Catalog.Installed(id)

		if err := opts.Env.Catalog.Uninstall(id); err != nil {
			outcome.Err = err
			log.Error().Err(err).Str("input", input).Msg("Uninstall failed")
		} else if outcome.WasInstalled {
			removed++
		}
		report.Outcomes = append(report.Outcomes, outcome)
	}

	if removed > 0 {
		if err := opts.Env.Desktop.Refresh(ctx); err != nil {
			log.Warn().Err(err).Msg("Shortcuts were removed but the desktop database is stale")
		}
	}

	log.Info().
		Str("command", "Uninstall").
		Int("removed", removed).
		Int("failed", report.Failed()).
		Msg("Command finished")
	return report, nil
}
