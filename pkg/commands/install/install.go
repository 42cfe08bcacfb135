package install

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/deskit/pkg/commands/internal"
	"github.com/arthur-debert/deskit/pkg/errors"
	"github.com/arthur-debert/deskit/pkg/logging"
	"github.com/arthur-debert/deskit/pkg/types"
)

// InstallOptions defines the options for the Install command.
type InstallOptions struct {
	// Env provides the installers and the store.
	Env *internal.Environment
	// Inputs are AppImage paths and web app URLs, installed in order.
	Inputs []string
}

// Install installs every input independently and reports each outcome. One
// failing input never stops the others.
func Install(ctx context.Context, opts InstallOptions) *types.InstallReport {
	log := logging.GetLogger("core.commands")
	log.Debug().Str("command", "Install").Strs("inputs", opts.Inputs).Msg("Executing command")

	report := &types.InstallReport{
		Outcomes: make([]types.InstallOutcome, 0, len(opts.Inputs)),
	}

	for _, input := range opts.Inputs {
		outcome := installOne(ctx, opts.Env, input)
		if outcome.Err != nil {
			log.Error().Err(outcome.Err).Str("input", input).Msg("Install failed")
		}
		report.Outcomes = append(report.Outcomes, outcome)
	}

	if report.Succeeded() > 0 {
		if err := opts.Env.Desktop.Refresh(ctx); err != nil {
			log.Warn().Err(err).Msg("Shortcuts were written but the desktop database is stale")
		}
	}

	log.Info().
		Str("command", "Install").
		Int("installed", report.Succeeded()).
		Int("failed", report.Failed()).
		Msg("Command finished")
	return report
}

func installOne(ctx context.Context, env *internal.Environment, input string) types.InstallOutcome {
	outcome := types.InstallOutcome{Input: input}

	kind, target, err := Classify(env, input)
	if err != nil {
		outcome.Err = err
		return outcome
	}
	outcome.Kind = kind

	var result *types.InstallResult
	switch kind {
	case types.AppTypeAppImage:
		result, err = env.AppImage.Install(ctx, target)
	case types.AppTypeWebApp:
		result, err = env.WebApp.Install(ctx, target)
	}
	if err != nil {
		outcome.Err = err
		return outcome
	}
	outcome.Result = result
	return outcome
}

// Classify decides how input is installed: an existing regular file is an
// AppImage, an http(s) URL is a web app. The returned target is the
// absolute path or the URL as given.
func Classify(env *internal.Environment, input string) (types.AppType, string, error) {
	if strings.TrimSpace(input) == "" {
		return "", "", errors.New(errors.ErrInput, "empty input")
	}

	if info, err := env.FS.Stat(input); err == nil {
		if info.IsDir() {
			return "", "", errors.Newf(errors.ErrInput, "%s is a directory", input).
				WithDetail("input", input)
		}
		abs, err := filepath.Abs(input)
		if err != nil {
			return "", "", errors.Wrapf(err, errors.ErrInput, "cannot resolve %s", input).
				WithDetail("input", input)
		}
		return types.AppTypeAppImage, abs, nil
	}

	lower := strings.ToLower(strings.TrimSpace(input))
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return types.AppTypeWebApp, input, nil
	}

	return "", "", errors.Newf(errors.ErrInput, "%s is neither an existing file nor an http(s) URL", input).
		WithDetail("input", input)
}
