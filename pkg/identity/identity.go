// Package identity computes the content-derived identifiers deskit uses as
// the primary key for every installed app.
//
// An identity is the lowercase hex MD5 digest of either the bytes of an
// AppImage bundle or the canonical text of a web app URL. MD5 is used as a
// wide, stable fingerprint, not as a security boundary.
package identity

import (
	"crypto/md5"
	"encoding/hex"
	"io"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/arthur-debert/deskit/pkg/errors"
)

// Length is the number of hex characters in an identity
const Length = md5.Size * 2

var validID = regexp.MustCompile(`^[0-9a-f]{32}$`)

// FromReader hashes everything read from r
func FromReader(r io.Reader) (string, error) {
	hash := md5.New()
	if _, err := io.Copy(hash, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}

// FromFile hashes the file at path byte for byte
func FromFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInput, "cannot read %s", path)
	}
	defer func() {
		_ = file.Close()
	}()

	id, err := FromReader(file)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInput, "cannot read %s", path)
	}
	return id, nil
}

// FromURL hashes the canonical form of u
func FromURL(u *url.URL) string {
	id, _ := FromReader(strings.NewReader(Canonical(u)))
	return id
}

// Canonical returns the textual form a URL is identified by: scheme and host
// lowercased, and an empty path serialized as "/". "https://Example.com" and
// "https://example.com/" therefore share one identity.
func Canonical(u *url.URL) string {
	c := *u
	c.Scheme = strings.ToLower(c.Scheme)
	c.Host = strings.ToLower(c.Host)
	if c.Path == "" && c.Opaque == "" {
		c.Path = "/"
	}
	return c.String()
}

// Valid reports whether s is a well-formed identity
func Valid(s string) bool {
	return validID.MatchString(s)
}
