package catalog

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/deskit/pkg/desktopentry"
	"github.com/arthur-debert/deskit/pkg/errors"
	"github.com/arthur-debert/deskit/pkg/identity"
	"github.com/arthur-debert/deskit/pkg/logging"
	"github.com/arthur-debert/deskit/pkg/store"
	"github.com/arthur-debert/deskit/pkg/types"
	"github.com/arthur-debert/deskit/pkg/webapp"
	"github.com/rs/zerolog"
)

// Catalog lists and removes installed apps
type Catalog struct {
	fs     types.FS
	store  *store.Store
	logger zerolog.Logger
}

// New creates a Catalog over st
func New(fs types.FS, st *store.Store) *Catalog {
	return &Catalog{
		fs:     fs,
		store:  st,
		logger: logging.GetLogger("catalog"),
	}
}

// List describes every installed app, sorted by identity. A missing or
// unreadable shortcut does not hide the app; its fields read "unknown".
func (c *Catalog) List() ([]types.InstalledApp, error) {
	ids, err := c.store.IDs()
	if err != nil {
		return nil, err
	}

	apps := make([]types.InstalledApp, 0, len(ids))
	for _, id := range ids {
		apps = append(apps, c.describe(id))
	}
	return apps, nil
}

func (c *Catalog) describe(id string) types.InstalledApp {
	app := types.InstalledApp{
		ID:      id,
		Name:    types.Unknown,
		Version: types.Unknown,
		Type:    types.Unknown,
	}

	content, err := c.store.ReadShortcut(id)
	if err != nil {
		c.logger.Debug().Err(err).Str("id", id).Msg("Shortcut unreadable")
		return app
	}

	entry := desktopentry.Parse(content)
	if v, ok := entry.Lookup(desktopentry.KeyName); ok {
		app.Name = v
	}
	if v, ok := entry.Lookup(desktopentry.KeyVersion); ok {
		app.Version = v
	}
	if v, ok := entry.Lookup(desktopentry.KeyType); ok {
		app.Type = v
	}
	return app
}

// Uninstall removes everything installed for id. Removing an identity that
// is not installed succeeds and changes nothing.
func (c *Catalog) Uninstall(id string) error {
	if !identity.Valid(id) {
		return errors.Newf(errors.ErrInput, "%q is not a deskit identity", id).
			WithDetail("id", id)
	}

	if err := c.store.Remove(id); err != nil {
		return err
	}
	c.logger.Info().Str("id", id).Msg("Uninstalled")
	return nil
}

// Resolve maps a command line argument to an identity. An existing file is
// identified by its bytes and an http(s) URL by its canonical form, so the
// same argument that installed an app can remove it. Anything else must be
// an identity already.
func (c *Catalog) Resolve(arg string) (string, error) {
	if identity.Valid(arg) {
		return arg, nil
	}

	if info, err := c.fs.Stat(arg); err == nil && !info.IsDir() {
		return c.identifyFile(arg)
	}

	lower := strings.ToLower(arg)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		u, err := webapp.ParseURL(arg)
		if err != nil {
			return "", err
		}
		return identity.FromURL(u), nil
	}

	return "", errors.Newf(errors.ErrInput, "%q is neither an identity, a file nor a URL", arg).
		WithDetail("input", arg)
}

func (c *Catalog) identifyFile(path string) (string, error) {
	f, err := c.fs.Open(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInput, "cannot read %s", path).
			WithDetail("path", path)
	}
	defer func() { _ = f.Close() }()

	id, err := identity.FromReader(f)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInput, "cannot read %s", path).
			WithDetail("path", path)
	}
	c.logger.Debug().Str("path", filepath.Clean(path)).Str("id", id).Msg("Resolved file to identity")
	return id, nil
}

// Installed reports whether id has an executable in the store
func (c *Catalog) Installed(id string) bool {
	_, err := c.fs.Stat(c.store.ExecutablePath(id))
	return err == nil || !os.IsNotExist(err)
}
