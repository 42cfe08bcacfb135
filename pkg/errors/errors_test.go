// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and utility functions

package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/arthur-debert/deskit/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "input_error",
			code:    errors.ErrInput,
			message: "not a file or URL",
			wantStr: "[INPUT] not a file or URL",
		},
		{
			name:    "network_error",
			code:    errors.ErrNetwork,
			message: "fetch failed",
			wantStr: "[NETWORK] fetch failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.NotNil(t, err.Details)
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrFilesystem, "cannot write %s with mode %o", "app.desktop", 0755)
	assert.Equal(t, "cannot write app.desktop with mode 755", err.Message)
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("base error")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrExtraction, "extract failed")

		assert.Equal(t, errors.ErrExtraction, err.Code)
		assert.Same(t, baseErr, err.Wrapped)
		assert.Equal(t, "[EXTRACTION] extract failed: base error", err.Error())
		assert.True(t, stderrors.Is(err, baseErr))
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		assert.Nil(t, errors.Wrap(nil, errors.ErrInternal, "internal error"))
		assert.Nil(t, errors.Wrapf(nil, errors.ErrInternal, "internal %s", "error"))
	})
}

func TestErrorCodeHelpers(t *testing.T) {
	inner := errors.New(errors.ErrNetwork, "timeout")
	outer := fmt.Errorf("installing https://example.com: %w", inner)

	assert.True(t, errors.IsErrorCode(outer, errors.ErrNetwork))
	assert.False(t, errors.IsErrorCode(outer, errors.ErrInput))
	assert.Equal(t, errors.ErrNetwork, errors.GetErrorCode(outer))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("plain")))

	assert.True(t, stderrors.Is(outer, errors.New(errors.ErrNetwork, "")))
	assert.False(t, stderrors.Is(outer, errors.New(errors.ErrFilesystem, "")))
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrInput, "bad identity").WithDetail("id", "../etc")

	details := errors.GetErrorDetails(err)
	require.NotNil(t, details)
	assert.Equal(t, "../etc", details["id"])
	assert.Nil(t, errors.GetErrorDetails(stderrors.New("plain")))
}
