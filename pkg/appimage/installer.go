package appimage

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/deskit/pkg/config"
	"github.com/arthur-debert/deskit/pkg/desktopentry"
	"github.com/arthur-debert/deskit/pkg/errors"
	"github.com/arthur-debert/deskit/pkg/identity"
	"github.com/arthur-debert/deskit/pkg/logging"
	"github.com/arthur-debert/deskit/pkg/store"
	"github.com/arthur-debert/deskit/pkg/types"
	"github.com/rs/zerolog"
)

// iconExtensions are tried, in order, when falling back to the icon named by
// the bundle's own desktop entry.
var iconExtensions = []string{".png", ".svg", ".xpm"}

// Installer turns AppImage bundles into installed applications
type Installer struct {
	fs        types.FS
	store     *store.Store
	extractor Extractor
	cfg       config.AppImage
	logger    zerolog.Logger
}

// NewInstaller creates an Installer. A nil extractor runs the bundle's own
// extraction mode as configured in cfg.
func NewInstaller(fs types.FS, st *store.Store, cfg config.AppImage, extractor Extractor) *Installer {
	if extractor == nil {
		extractor = NewExecExtractor(cfg.ExtractFlag, cfg.ExtractDir)
	}
	return &Installer{
		fs:        fs,
		store:     st,
		extractor: extractor,
		cfg:       cfg,
		logger:    logging.GetLogger("appimage"),
	}
}

// Install places the bundle at src, derives its metadata and writes its
// shortcut. Nothing is written when src cannot be read.
func (i *Installer) Install(ctx context.Context, src string) (*types.InstallResult, error) {
	done := logging.LogOperationStart(i.logger, "appimage.install")
	defer done()

	id, err := i.identify(src)
	if err != nil {
		return nil, err
	}
	logger := i.logger.With().Str("id", id).Str("src", src).Logger()

	execPath, err := i.store.PlaceExecutable(id, src)
	if err != nil {
		return nil, err
	}

	scratch, release, err := i.store.AcquireScratch(id)
	if err != nil {
		return nil, err
	}
	defer release()

	root, err := i.extractor.Extract(ctx, execPath, scratch)
	if err != nil {
		return nil, err
	}

	original := i.readBundledEntry(root, logger)

	iconPath := i.placeIcon(id, root, original, logger)

	name := original.Get(desktopentry.KeyName)
	if name == "" {
		name = filepath.Base(src)
	}

	version := original.Get(desktopentry.KeyAppImageVersion)
	if version == "" {
		version = metainfoVersion(i.fs, root, i.cfg.MetainfoDirs, logger)
	}
	if version == "" {
		version = i.cfg.FallbackVersion
	}

	entry := desktopentry.Merge(desktopentry.Fields{
		Name:    name,
		Icon:    iconPath,
		Version: version,
		Type:    desktopentry.TypeAppImage,
		Exec:    execPath,
	}, original).WithDefaults(desktopentry.DefaultFields()...)

	shortcutPath, err := i.store.WriteShortcut(id, entry.String())
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("name", name).
		Str("version", version).
		Str("shortcut", shortcutPath).
		Msg("AppImage installed")

	return &types.InstallResult{
		ID:           id,
		Type:         types.AppTypeAppImage,
		Name:         name,
		Version:      version,
		ExecPath:     execPath,
		IconPath:     iconPath,
		ShortcutPath: shortcutPath,
	}, nil
}

func (i *Installer) identify(src string) (string, error) {
	info, err := i.fs.Stat(src)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInput, "cannot read %s", src).
			WithDetail("path", src)
	}
	if info.IsDir() {
		return "", errors.Newf(errors.ErrInput, "%s is a directory, not an AppImage", src).
			WithDetail("path", src)
	}

	f, err := i.fs.Open(src)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInput, "cannot read %s", src).
			WithDetail("path", src)
	}
	defer func() { _ = f.Close() }()

	id, err := identity.FromReader(f)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInput, "cannot read %s", src).
			WithDetail("path", src)
	}
	return id, nil
}

// readBundledEntry returns the first desktop entry at the extraction root.
// A bundle without one installs with derived values only.
func (i *Installer) readBundledEntry(root string, logger zerolog.Logger) *desktopentry.Entry {
	entries, err := i.fs.ReadDir(root)
	if err != nil {
		logger.Warn().Err(err).Str("root", root).Msg("Cannot list extracted tree")
		return desktopentry.Parse("")
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), desktopentry.Extension) {
			continue
		}
		path := filepath.Join(root, entry.Name())
		data, err := i.fs.ReadFile(path)
		if err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("Cannot read bundled desktop entry")
			return desktopentry.Parse("")
		}
		logger.Debug().Str("path", path).Msg("Using bundled desktop entry")
		return desktopentry.Parse(string(data))
	}

	logger.Info().Msg("Bundle ships no desktop entry")
	return desktopentry.Parse("")
}

// placeIcon copies the bundle icon into the store and returns its path, or
// "" when the bundle has no usable icon.
func (i *Installer) placeIcon(id, root string, original *desktopentry.Entry, logger zerolog.Logger) string {
	for _, candidate := range i.iconCandidates(root, original) {
		if _, err := i.fs.Lstat(candidate); err != nil {
			continue
		}
		path, err := i.store.PlaceIcon(id, candidate)
		if err != nil {
			logger.Warn().Err(err).Str("icon", candidate).Msg("Skipping unusable icon")
			continue
		}
		return path
	}

	// A previous install of the same bytes may have left an icon behind.
	if err := i.fs.Remove(i.store.IconPath(id)); err != nil && !os.IsNotExist(err) {
		logger.Debug().Err(err).Msg("Cannot remove stale icon")
	}
	logger.Debug().Msg("No icon found in bundle")
	return ""
}

func (i *Installer) iconCandidates(root string, original *desktopentry.Entry) []string {
	var candidates []string
	for _, name := range i.cfg.IconNames {
		candidates = append(candidates, filepath.Join(root, name))
	}

	// Icon names in desktop entries are theme names; only plain names can
	// map to a file at the root.
	iconName := original.Get(desktopentry.KeyIcon)
	if iconName != "" && !strings.ContainsRune(iconName, filepath.Separator) {
		for _, ext := range iconExtensions {
			candidates = append(candidates, filepath.Join(root, iconName+ext))
		}
	}
	return candidates
}
