package identity

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/deskit/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Foo.AppImage")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0755))

	id, err := FromFile(path)
	require.NoError(t, err)

	// md5("hello")
	assert.Equal(t, "5d41402abc4b2a76b9719d911017c592", id)
	assert.Len(t, id, Length)
	assert.True(t, Valid(id))

	again, err := FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, id, again, "same bytes must give the same identity")

	copyPath := filepath.Join(dir, "renamed.AppImage")
	require.NoError(t, os.WriteFile(copyPath, []byte("hello"), 0644))
	renamed, err := FromFile(copyPath)
	require.NoError(t, err)
	assert.Equal(t, id, renamed, "identity depends on content, not name")
}

func TestFromFileBinaryContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bin")
	// Invalid UTF-8 must be hashed as raw bytes.
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0xfe, 0x00, 0x41}, 0644))

	a, err := FromFile(path)
	require.NoError(t, err)
	b, err := FromReader(strings.NewReader(string([]byte{0xff, 0xfe, 0x00, 0x41})))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestFromFileErrors(t *testing.T) {
	_, err := FromFile("/non/existent/file")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInput))
}

func TestFromURL(t *testing.T) {
	parse := func(s string) *url.URL {
		u, err := url.Parse(s)
		require.NoError(t, err)
		return u
	}

	// md5("https://example.com/")
	assert.Equal(t, "182ccedb33a9e03fbf1079b209da1a31", FromURL(parse("https://example.com/")))

	tests := []struct {
		name string
		a, b string
		same bool
	}{
		{"empty path equals slash", "https://example.com", "https://example.com/", true},
		{"host case is ignored", "https://Example.COM/app", "https://example.com/app", true},
		{"scheme case is ignored", "HTTPS://example.com", "https://example.com/", true},
		{"different paths differ", "https://example.com/a", "https://example.com/b", false},
		{"query matters", "https://example.com/?x=1", "https://example.com/", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := FromURL(parse(tt.a))
			b := FromURL(parse(tt.b))
			if tt.same {
				assert.Equal(t, a, b)
			} else {
				assert.NotEqual(t, a, b)
			}
		})
	}
}

func TestCanonicalDoesNotMutate(t *testing.T) {
	u, err := url.Parse("https://Example.com")
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/", Canonical(u))
	assert.Equal(t, "Example.com", u.Host)
	assert.Equal(t, "", u.Path)
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("5d41402abc4b2a76b9719d911017c592"))
	assert.False(t, Valid("5D41402ABC4B2A76B9719D911017C592"))
	assert.False(t, Valid("5d41402abc4b2a76b9719d911017c59"))
	assert.False(t, Valid("../../etc/passwd"))
	assert.False(t, Valid(""))
}
