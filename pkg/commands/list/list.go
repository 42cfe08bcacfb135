package list

import (
	"github.com/arthur-debert/deskit/pkg/commands/internal"
	"github.com/arthur-debert/deskit/pkg/logging"
	"github.com/arthur-debert/deskit/pkg/types"
)

// ListOptions defines the options for the List command.
type ListOptions struct {
	// Env provides the catalog.
	Env *internal.Environment
}

// List describes every installed app.
func List(opts ListOptions) ([]types.InstalledApp, error) {
	log := logging.GetLogger("core.commands")
	log.Debug().Str("command", "List").Msg("Executing command")

	apps, err := opts.Env.Catalog.List()
	if err != nil {
		return nil, err
	}

	log.Info().Str("command", "List").Int("appCount", len(apps)).Msg("Command finished")
	return apps, nil
}
