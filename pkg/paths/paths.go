package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/deskit/pkg/errors"
)

// Environment variable names
const (
	// EnvDeskitDataDir overrides the XDG data root shortcuts and icons live under
	EnvDeskitDataDir = "DESKIT_DATA_DIR"

	// EnvDeskitCacheDir overrides the cache directory holding scratch extractions
	EnvDeskitCacheDir = "DESKIT_CACHE_DIR"

	// EnvDeskitConfigDir overrides the config directory
	EnvDeskitConfigDir = "DESKIT_CONFIG_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Fixed directory names. Shortcuts and icons must sit where desktop
// environments look for them, so these are not configurable.
const (
	// DeskitDirName is the directory name for deskit-specific files
	DeskitDirName = "deskit"

	// ShortcutsDirName is the freedesktop applications directory
	ShortcutsDirName = "applications"

	// IconsDirName is the user icon directory
	IconsDirName = "icons"

	// ExtractDirName is the cache subdirectory for scratch extractions
	ExtractDirName = "extract"

	// ConfigFileName is the name of the user configuration file
	ConfigFileName = "config.toml"

	// DefaultStaticDirName is where executables land under the data root
	DefaultStaticDirName = DeskitDirName

	// DefaultProfilesDir is where web app browser profiles land under the data root
	DefaultProfilesDir = "ice/profiles"
)

// Paths provides centralized path management for deskit
type Paths interface {
	DataRoot() string
	CacheDir() string
	ShortcutsDir() string
	IconsDir() string
	StaticDir() string
	ProfilesDir() string
	TempDir() string
}

// Options configures the layout. Empty fields fall back to environment
// overrides and then XDG defaults.
type Options struct {
	DataRoot      string
	CacheDir      string
	StaticDirName string
	ProfilesDir   string
}

type paths struct {
	dataRoot    string
	cacheDir    string
	staticDir   string
	profilesDir string
}

// New creates a new Paths instance.
func New(opts Options) (Paths, error) {
	p := &paths{}

	switch {
	case opts.DataRoot != "":
		p.dataRoot = expandHome(opts.DataRoot)
	case os.Getenv(EnvDeskitDataDir) != "":
		p.dataRoot = expandHome(os.Getenv(EnvDeskitDataDir))
	default:
		p.dataRoot = xdg.DataHome
	}

	switch {
	case opts.CacheDir != "":
		p.cacheDir = expandHome(opts.CacheDir)
	case os.Getenv(EnvDeskitCacheDir) != "":
		p.cacheDir = expandHome(os.Getenv(EnvDeskitCacheDir))
	default:
		p.cacheDir = filepath.Join(xdg.CacheHome, DeskitDirName)
	}

	if p.dataRoot == "" {
		return nil, errors.New(errors.ErrFilesystem, "cannot determine data directory")
	}

	absRoot, err := filepath.Abs(p.dataRoot)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFilesystem, "failed to get absolute path for data root")
	}
	p.dataRoot = absRoot

	absCache, err := filepath.Abs(p.cacheDir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFilesystem, "failed to get absolute path for cache dir")
	}
	p.cacheDir = absCache

	staticName := opts.StaticDirName
	if staticName == "" {
		staticName = DefaultStaticDirName
	}
	p.staticDir = filepath.Join(p.dataRoot, staticName)

	profiles := opts.ProfilesDir
	if profiles == "" {
		profiles = DefaultProfilesDir
	}
	if filepath.IsAbs(expandHome(profiles)) {
		p.profilesDir = expandHome(profiles)
	} else {
		p.profilesDir = filepath.Join(p.dataRoot, profiles)
	}

	return p, nil
}

// DataRoot returns the XDG data root all stores hang off
func (p *paths) DataRoot() string {
	return p.dataRoot
}

// CacheDir returns deskit's cache directory
func (p *paths) CacheDir() string {
	return p.cacheDir
}

// ShortcutsDir returns the directory desktop entries are written to
func (p *paths) ShortcutsDir() string {
	return filepath.Join(p.dataRoot, ShortcutsDirName)
}

// IconsDir returns the directory icons are copied to
func (p *paths) IconsDir() string {
	return filepath.Join(p.dataRoot, IconsDirName)
}

// StaticDir returns the directory holding placed executables and launchers
func (p *paths) StaticDir() string {
	return p.staticDir
}

// ProfilesDir returns the directory holding per-app browser profiles
func (p *paths) ProfilesDir() string {
	return p.profilesDir
}

// TempDir returns the scratch extraction root
func (p *paths) TempDir() string {
	return filepath.Join(p.cacheDir, ExtractDirName)
}

// ConfigDir returns deskit's configuration directory
func ConfigDir() string {
	if dir := os.Getenv(EnvDeskitConfigDir); dir != "" {
		return expandHome(dir)
	}
	return filepath.Join(xdg.ConfigHome, DeskitDirName)
}

// ConfigFilePath returns the default user configuration file
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// ExpandHome expands a leading ~ to the user's home directory
func ExpandHome(path string) string {
	return expandHome(path)
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			homeDir = os.Getenv(EnvHome)
			if homeDir == "" {
				return path
			}
		}

		if len(path) == 1 {
			return homeDir
		}

		if path[1] == '/' || path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:])
		}

		// ~something (not the user's home)
		return path
	}

	return path
}
