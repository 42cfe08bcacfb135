package style

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/deskit/pkg/errors"
	"github.com/arthur-debert/deskit/pkg/types"
	"github.com/pterm/pterm"
)

// Renderer turns command results into text for the terminal
type Renderer interface {
	RenderApps(apps []types.InstalledApp) string
	RenderInstall(report *types.InstallReport) string
	RenderUninstall(report *types.UninstallReport) string
	RenderError(err error) string
}

// TerminalRenderer implements Renderer with rich terminal output
type TerminalRenderer struct{}

// NewTerminalRenderer creates a new terminal renderer
func NewTerminalRenderer() *TerminalRenderer {
	return &TerminalRenderer{}
}

// RenderApps renders installed apps as a table
func (r *TerminalRenderer) RenderApps(apps []types.InstalledApp) string {
	if len(apps) == 0 {
		return MutedStyle.Render("No apps installed")
	}

	data := pterm.TableData{{"NAME", "VERSION", "TYPE", "ID"}}
	for _, app := range apps {
		data = append(data, []string{
			Bold(app.Name),
			app.Version,
			AppTypeStyle(app.Type).Render(app.Type),
			MutedStyle.Render(app.ID),
		})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		// Plain layout on table failure
		return NewPlainRenderer().RenderApps(apps)
	}
	return strings.TrimRight(table, "\n")
}

// RenderInstall renders one line per input
func (r *TerminalRenderer) RenderInstall(report *types.InstallReport) string {
	var result strings.Builder
	for _, o := range report.Outcomes {
		if o.Err != nil {
			result.WriteString(fmt.Sprintf("%s %s %s\n", ErrorIndicator, o.Input, r.RenderError(o.Err)))
			continue
		}
		result.WriteString(fmt.Sprintf("%s %s %s %s\n",
			SuccessIndicator,
			Bold(o.Result.Name),
			AppTypeStyle(string(o.Result.Type)).Render(string(o.Result.Type)),
			MutedStyle.Render(o.Result.Version)))
		result.WriteString(Indent(PathStyle.Render(o.Result.ShortcutPath), 1) + "\n")
	}
	return strings.TrimRight(result.String(), "\n")
}

// RenderUninstall renders one line per input
func (r *TerminalRenderer) RenderUninstall(report *types.UninstallReport) string {
	var result strings.Builder
	for _, o := range report.Outcomes {
		switch {
		case o.Err != nil:
			result.WriteString(fmt.Sprintf("%s %s %s\n", ErrorIndicator, o.Input, r.RenderError(o.Err)))
		case o.WasInstalled:
			result.WriteString(fmt.Sprintf("%s removed %s\n", SuccessIndicator, CodeStyle.Render(o.ID)))
		default:
			result.WriteString(fmt.Sprintf("%s %s was not installed\n", InfoIndicator, CodeStyle.Render(o.ID)))
		}
	}
	return strings.TrimRight(result.String(), "\n")
}

// RenderError renders an error message
func (r *TerminalRenderer) RenderError(err error) string {
	if err == nil {
		return ""
	}

	code := errors.GetErrorCode(err)
	if code != errors.ErrUnknown {
		return fmt.Sprintf("%s %s",
			pterm.Error.MessageStyle.Sprint("["+string(code)+"]"),
			ErrorStyle.Render(errorMessage(err)))
	}
	return ErrorStyle.Render(err.Error())
}

// PlainRenderer implements Renderer with plain text output (no styling)
type PlainRenderer struct{}

// NewPlainRenderer creates a new plain text renderer
func NewPlainRenderer() *PlainRenderer {
	return &PlainRenderer{}
}

// RenderApps renders one "Name: id" line per app
func (r *PlainRenderer) RenderApps(apps []types.InstalledApp) string {
	if len(apps) == 0 {
		return "No apps installed"
	}

	var result strings.Builder
	for _, app := range apps {
		result.WriteString(fmt.Sprintf("%s: %s\n", app.Name, app.ID))
	}
	return strings.TrimRight(result.String(), "\n")
}

// RenderInstall renders plain install outcomes
func (r *PlainRenderer) RenderInstall(report *types.InstallReport) string {
	var result strings.Builder
	for _, o := range report.Outcomes {
		if o.Err != nil {
			result.WriteString(fmt.Sprintf("failed %s: %s\n", o.Input, r.RenderError(o.Err)))
			continue
		}
		result.WriteString(fmt.Sprintf("installed %s: %s -> %s\n", o.Result.Name, o.Result.ID, o.Result.ShortcutPath))
	}
	return strings.TrimRight(result.String(), "\n")
}

// RenderUninstall renders plain uninstall outcomes
func (r *PlainRenderer) RenderUninstall(report *types.UninstallReport) string {
	var result strings.Builder
	for _, o := range report.Outcomes {
		switch {
		case o.Err != nil:
			result.WriteString(fmt.Sprintf("failed %s: %s\n", o.Input, r.RenderError(o.Err)))
		case o.WasInstalled:
			result.WriteString(fmt.Sprintf("removed %s\n", o.ID))
		default:
			result.WriteString(fmt.Sprintf("not installed %s\n", o.ID))
		}
	}
	return strings.TrimRight(result.String(), "\n")
}

// RenderError renders a plain error message
func (r *PlainRenderer) RenderError(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// errorMessage drops the "[CODE] " prefix DeskitError.Error adds, the
// terminal renderer shows the code separately.
func errorMessage(err error) string {
	msg := err.Error()
	prefix := "[" + string(errors.GetErrorCode(err)) + "] "
	return strings.TrimPrefix(msg, prefix)
}
