package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/deskit/pkg/errors"
	"github.com/arthur-debert/deskit/pkg/style"
	"github.com/arthur-debert/deskit/pkg/types"
	"gopkg.in/yaml.v3"
)

// Format selects how results are written
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats lists the accepted values of --output
var Formats = []Format{FormatText, FormatJSON, FormatYAML}

// ParseFormat validates a --output value
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", errors.Newf(errors.ErrInput, "unknown output format %q (want text, json or yaml)", s).
		WithDetail("format", s)
}

// Printer writes results to w
type Printer struct {
	w        io.Writer
	format   Format
	renderer style.Renderer
}

// NewPrinter creates a Printer. Text output uses the terminal renderer when
// styled is true and the plain renderer otherwise.
func NewPrinter(w io.Writer, format Format, styled bool) *Printer {
	var renderer style.Renderer = style.NewPlainRenderer()
	if styled {
		renderer = style.NewTerminalRenderer()
	}
	return &Printer{w: w, format: format, renderer: renderer}
}

// Apps writes the installed app listing
func (p *Printer) Apps(apps []types.InstalledApp) error {
	if apps == nil {
		apps = []types.InstalledApp{}
	}
	switch p.format {
	case FormatJSON:
		return p.writeJSON(apps)
	case FormatYAML:
		return p.writeYAML(apps)
	default:
		return p.writeText(p.renderer.RenderApps(apps))
	}
}

// Install writes install outcomes
func (p *Printer) Install(report *types.InstallReport) error {
	switch p.format {
	case FormatJSON:
		return p.writeJSON(installRecords(report))
	case FormatYAML:
		return p.writeYAML(installRecords(report))
	default:
		return p.writeText(p.renderer.RenderInstall(report))
	}
}

// Uninstall writes uninstall outcomes
func (p *Printer) Uninstall(report *types.UninstallReport) error {
	switch p.format {
	case FormatJSON:
		return p.writeJSON(uninstallRecords(report))
	case FormatYAML:
		return p.writeYAML(uninstallRecords(report))
	default:
		return p.writeText(p.renderer.RenderUninstall(report))
	}
}

// Error writes a single error in text form
func (p *Printer) Error(err error) error {
	return p.writeText(p.renderer.RenderError(err))
}

func (p *Printer) writeText(s string) error {
	_, err := fmt.Fprintln(p.w, s)
	return err
}

func (p *Printer) writeJSON(v interface{}) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p *Printer) writeYAML(v interface{}) error {
	enc := yaml.NewEncoder(p.w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// record forms carry the error text, which error values do not marshal
type installRecord struct {
	Input  string               `json:"input" yaml:"input"`
	Kind   types.AppType        `json:"kind,omitempty" yaml:"kind,omitempty"`
	Result *types.InstallResult `json:"result,omitempty" yaml:"result,omitempty"`
	Error  string               `json:"error,omitempty" yaml:"error,omitempty"`
	Code   errors.ErrorCode     `json:"code,omitempty" yaml:"code,omitempty"`
}

type uninstallRecord struct {
	Input        string           `json:"input" yaml:"input"`
	ID           string           `json:"id,omitempty" yaml:"id,omitempty"`
	WasInstalled bool             `json:"was_installed" yaml:"was_installed"`
	Error        string           `json:"error,omitempty" yaml:"error,omitempty"`
	Code         errors.ErrorCode `json:"code,omitempty" yaml:"code,omitempty"`
}

func installRecords(report *types.InstallReport) []installRecord {
	records := make([]installRecord, 0, len(report.Outcomes))
	for _, o := range report.Outcomes {
		r := installRecord{Input: o.Input, Kind: o.Kind, Result: o.Result}
		if o.Err != nil {
			r.Error = o.Err.Error()
			r.Code = errors.GetErrorCode(o.Err)
		}
		records = append(records, r)
	}
	return records
}

func uninstallRecords(report *types.UninstallReport) []uninstallRecord {
	records := make([]uninstallRecord, 0, len(report.Outcomes))
	for _, o := range report.Outcomes {
		r := uninstallRecord{Input: o.Input, ID: o.ID, WasInstalled: o.WasInstalled}
		if o.Err != nil {
			r.Error = o.Err.Error()
			r.Code = errors.GetErrorCode(o.Err)
		}
		records = append(records, r)
	}
	return records
}
