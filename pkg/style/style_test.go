package style

import (
	"fmt"
	"strings"
	"testing"

	"github.com/arthur-debert/deskit/pkg/errors"
	"github.com/arthur-debert/deskit/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestIndent(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		level    int
		expected string
	}{
		{name: "no indent", text: "Hello", level: 0, expected: "Hello"},
		{name: "single indent", text: "Hello", level: 1, expected: "  Hello"},
		{name: "double indent", text: "Hello", level: 2, expected: "    Hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Indent(tt.text, tt.level))
		})
	}
}

func TestAppTypeStyle(t *testing.T) {
	assert.Equal(t, AppImageStyle.GetForeground(), AppTypeStyle("AppImage").GetForeground())
	assert.Equal(t, WebAppStyle.GetForeground(), AppTypeStyle("WebApp").GetForeground())
	assert.Equal(t, MutedStyle.GetForeground(), AppTypeStyle("unknown").GetForeground())
}

func sampleApps() []types.InstalledApp {
	return []types.InstalledApp{
		{ID: "182ccedb33a9e03fbf1079b209da1a31", Name: "MyApp", Version: "latest", Type: "WebApp"},
		{ID: "5d41402abc4b2a76b9719d911017c592", Name: "unknown", Version: "unknown", Type: "unknown"},
	}
}

func TestPlainRenderer(t *testing.T) {
	r := NewPlainRenderer()

	t.Run("apps", func(t *testing.T) {
		assert.Equal(t,
			"MyApp: 182ccedb33a9e03fbf1079b209da1a31\nunknown: 5d41402abc4b2a76b9719d911017c592",
			r.RenderApps(sampleApps()))
		assert.Equal(t, "No apps installed", r.RenderApps(nil))
	})

	t.Run("install", func(t *testing.T) {
		out := r.RenderInstall(&types.InstallReport{Outcomes: []types.InstallOutcome{
			{Input: "https://example.com", Kind: types.AppTypeWebApp, Result: &types.InstallResult{
				ID: "182ccedb33a9e03fbf1079b209da1a31", Name: "MyApp", ShortcutPath: "/a/x.desktop",
			}},
			{Input: "nope", Err: errors.New(errors.ErrInput, "nope is neither an existing file nor an http(s) URL")},
		}})
		assert.Equal(t,
			"installed MyApp: 182ccedb33a9e03fbf1079b209da1a31 -> /a/x.desktop\n"+
				"failed nope: [INPUT] nope is neither an existing file nor an http(s) URL",
			out)
	})

	t.Run("uninstall", func(t *testing.T) {
		out := r.RenderUninstall(&types.UninstallReport{Outcomes: []types.UninstallOutcome{
			{Input: "a", ID: "a1", WasInstalled: true},
			{Input: "b", ID: "b1"},
			{Input: "c", Err: fmt.Errorf("boom")},
		}})
		assert.Equal(t, "removed a1\nnot installed b1\nfailed c: boom", out)
	})
}

func TestTerminalRenderer(t *testing.T) {
	r := NewTerminalRenderer()

	t.Run("apps", func(t *testing.T) {
		out := r.RenderApps(sampleApps())
		assert.Contains(t, out, "NAME")
		assert.Contains(t, out, "MyApp")
		assert.Contains(t, out, "182ccedb33a9e03fbf1079b209da1a31")
	})

	t.Run("error_code_shown_once", func(t *testing.T) {
		out := r.RenderError(errors.New(errors.ErrNetwork, "failed to fetch"))
		assert.Contains(t, out, "NETWORK")
		assert.Equal(t, 1, strings.Count(out, "NETWORK"))
		assert.Contains(t, out, "failed to fetch")
	})

	t.Run("plain_error", func(t *testing.T) {
		assert.Contains(t, r.RenderError(fmt.Errorf("boom")), "boom")
		assert.Empty(t, r.RenderError(nil))
	})
}
