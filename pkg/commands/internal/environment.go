package internal

import (
	"net/http"

	"github.com/arthur-debert/deskit/pkg/appimage"
	"github.com/arthur-debert/deskit/pkg/catalog"
	"github.com/arthur-debert/deskit/pkg/config"
	"github.com/arthur-debert/deskit/pkg/filesystem"
	"github.com/arthur-debert/deskit/pkg/paths"
	"github.com/arthur-debert/deskit/pkg/store"
	"github.com/arthur-debert/deskit/pkg/types"
	"github.com/arthur-debert/deskit/pkg/webapp"
)

// Environment wires every component a command needs from one configuration.
type Environment struct {
	Config   *config.Config
	FS       types.FS
	Paths    paths.Paths
	Store    *store.Store
	Catalog  *catalog.Catalog
	AppImage *appimage.Installer
	WebApp   *webapp.Installer
	Desktop  *DesktopDatabase
}

// EnvironmentOptions overrides the defaults NewEnvironment picks. Zero
// values mean "use the default".
type EnvironmentOptions struct {
	// FileSystem defaults to the OS filesystem
	FileSystem types.FS
	// Paths defaults to the layout described by the configuration
	Paths paths.Paths
	// Extractor defaults to running the bundle itself
	Extractor appimage.Extractor
	// HTTPClient defaults to webapp.NewClient
	HTTPClient *http.Client
	// Runner defaults to running external commands for real
	Runner Runner
}

// NewEnvironment builds an Environment from cfg. A nil cfg means defaults.
func NewEnvironment(cfg *config.Config, opts EnvironmentOptions) (*Environment, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	fs := opts.FileSystem
	if fs == nil {
		fs = filesystem.NewOS()
	}

	p := opts.Paths
	if p == nil {
		var err error
		p, err = paths.New(paths.Options{
			StaticDirName: cfg.Store.StaticDir,
			ProfilesDir:   cfg.Store.ProfilesDir,
		})
		if err != nil {
			return nil, err
		}
	}

	st := store.New(fs, p, cfg.Store.ShortcutPrefix)

	return &Environment{
		Config:   cfg,
		FS:       fs,
		Paths:    p,
		Store:    st,
		Catalog:  catalog.New(fs, st),
		AppImage: appimage.NewInstaller(fs, st, cfg.AppImage, opts.Extractor),
		WebApp:   webapp.NewInstaller(fs, st, cfg.WebApp, opts.HTTPClient),
		Desktop:  NewDesktopDatabase(cfg.Desktop, p.ShortcutsDir(), opts.Runner),
	}, nil
}
