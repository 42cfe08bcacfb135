package style

import (
	"github.com/arthur-debert/deskit/pkg/types"
	"github.com/charmbracelet/lipgloss"
)

// Base styles
var (
	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	CodeStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	PathStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Italic(true)
)

// App type styles
var (
	AppImageStyle = lipgloss.NewStyle().
			Foreground(AppImageColor).
			Bold(true)

	WebAppStyle = lipgloss.NewStyle().
			Foreground(WebAppColor).
			Bold(true)
)

// Operation indicator styles
var (
	SuccessIndicator = SuccessStyle.Render("✓")
	ErrorIndicator   = ErrorStyle.Render("✗")
	InfoIndicator    = InfoStyle.Render("•")
)

// AppTypeStyle picks the style an app type label is rendered with
func AppTypeStyle(appType string) lipgloss.Style {
	switch types.AppType(appType) {
	case types.AppTypeAppImage:
		return AppImageStyle
	case types.AppTypeWebApp:
		return WebAppStyle
	default:
		return MutedStyle
	}
}

// Helper functions
func Indent(s string, level int) string {
	return lipgloss.NewStyle().PaddingLeft(level * 2).Render(s)
}

func Bold(s string) string {
	return lipgloss.NewStyle().Bold(true).Render(s)
}
