package internal

import (
	"context"
	"fmt"
	"testing"

	"github.com/arthur-debert/deskit/pkg/config"
	"github.com/arthur-debert/deskit/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDesktopDatabaseRefresh(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.Desktop
		lookPath  LookPath
		runErr    error
		wantCalls int
		wantErr   bool
	}{
		{
			name:      "runs_configured_command",
			cfg:       config.Desktop{RefreshDatabase: true, DatabaseCommand: "update-desktop-database"},
			wantCalls: 1,
		},
		{
			name: "disabled",
			cfg:  config.Desktop{RefreshDatabase: false, DatabaseCommand: "update-desktop-database"},
		},
		{
			name: "empty_command",
			cfg:  config.Desktop{RefreshDatabase: true},
		},
		{
			name: "tool_missing",
			cfg:  config.Desktop{RefreshDatabase: true, DatabaseCommand: "update-desktop-database"},
			lookPath: func(name string) (string, error) {
				return "", fmt.Errorf("%s: not found", name)
			},
		},
		{
			name:      "tool_fails",
			cfg:       config.Desktop{RefreshDatabase: true, DatabaseCommand: "update-desktop-database"},
			runErr:    fmt.Errorf("exit status 1"),
			wantCalls: 1,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls [][]string
			db := NewDesktopDatabase(tt.cfg, "/data/applications", func(ctx context.Context, name string, args ...string) error {
				calls = append(calls, append([]string{name}, args...))
				return tt.runErr
			})
			if tt.lookPath != nil {
				db.lookPath = tt.lookPath
			}

			err := db.Refresh(context.Background())
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrInternal))
			} else {
				require.NoError(t, err)
			}

			require.Len(t, calls, tt.wantCalls)
			if tt.wantCalls > 0 {
				assert.Equal(t, []string{"update-desktop-database", "/data/applications"}, calls[0])
			}
		})
	}
}

func TestExecRunner(t *testing.T) {
	require.NoError(t, execRunner(context.Background(), "true"))

	err := execRunner(context.Background(), "sh", "-c", "echo broken >&2; exit 4")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}
