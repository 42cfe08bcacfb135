package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/arthur-debert/deskit/pkg/errors"
	"github.com/arthur-debert/deskit/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var apps = []types.InstalledApp{
	{ID: "182ccedb33a9e03fbf1079b209da1a31", Name: "MyApp", Version: "latest", Type: "WebApp"},
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "text", want: FormatText},
		{in: "JSON", want: FormatJSON},
		{in: " yaml ", want: FormatYAML},
		{in: "xml", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrinterApps(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewPrinter(&buf, FormatText, false).Apps(apps))
		assert.Equal(t, "MyApp: 182ccedb33a9e03fbf1079b209da1a31\n", buf.String())
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewPrinter(&buf, FormatJSON, false).Apps(apps))

		var got []types.InstalledApp
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, apps, got)
		assert.Contains(t, buf.String(), `"version": "latest"`)
	})

	t.Run("json_empty_is_array", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewPrinter(&buf, FormatJSON, false).Apps(nil))
		assert.Equal(t, "[]\n", buf.String())
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewPrinter(&buf, FormatYAML, false).Apps(apps))

		var got []types.InstalledApp
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, apps, got)
		assert.Contains(t, buf.String(), "- id: 182ccedb33a9e03fbf1079b209da1a31")
	})
}

func TestPrinterInstallJSON(t *testing.T) {
	report := &types.InstallReport{Outcomes: []types.InstallOutcome{
		{Input: "https://example.com", Kind: types.AppTypeWebApp, Result: &types.InstallResult{
			ID: "182ccedb33a9e03fbf1079b209da1a31", Type: types.AppTypeWebApp, Name: "MyApp",
		}},
		{Input: "bad", Err: errors.New(errors.ErrInput, "bad input")},
	}}

	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf, FormatJSON, false).Install(report))

	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "WebApp", got[0]["kind"])
	assert.NotContains(t, got[0], "error")
	assert.Equal(t, "INPUT", got[1]["code"])
	assert.Equal(t, "[INPUT] bad input", got[1]["error"])
}

func TestPrinterUninstallYAML(t *testing.T) {
	report := &types.UninstallReport{Outcomes: []types.UninstallOutcome{
		{Input: "x", ID: "182ccedb33a9e03fbf1079b209da1a31", WasInstalled: true},
	}}

	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf, FormatYAML, false).Uninstall(report))
	assert.Contains(t, buf.String(), "was_installed: true")
}
