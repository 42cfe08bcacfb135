package webapp

import (
	"context"
	"net/http"
	"net/url"
	"os"
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

// DefaultVersion is reported for every web app; sites have no release number
const DefaultVersion = "latest"

// Installer turns URLs into installed web apps
type Installer struct {
	fs     types.FS
	store  *store.Store
	client *http.Client
	cfg    config.WebApp
	logger zerolog.Logger
}

// NewInstaller creates an Installer. A nil client is replaced by NewClient(cfg).
func NewInstaller(fs types.FS, st *store.Store, cfg config.WebApp, client *http.Client) *Installer {
	if client == nil {
		client = NewClient(cfg)
	}
	return &Installer{
		fs:     fs,
		store:  st,
		client: client,
		cfg:    cfg,
		logger: logging.GetLogger("webapp"),
	}
}

// ParseURL accepts absolute http and https URLs only.
func ParseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInput, "malformed URL %q", raw).
			WithDetail("url", raw)
	}
	scheme := strings.ToLower(u.Scheme)
	if (scheme != "http" && scheme != "https") || u.Host == "" {
		return nil, errors.Newf(errors.ErrInput, "%q is not an absolute http(s) URL", raw).
			WithDetail("url", raw)
	}
	return u, nil
}

// WMClass is the window class the launcher gives the browser for id
func (i *Installer) WMClass(id string) string {
	if i.cfg.WMClassPrefix == "" {
		return id
	}
	return i.cfg.WMClassPrefix + "-" + id
}

// Install creates the profile, launcher, icon and shortcut for the site at
// target. Nothing is written when target is not a usable URL.
func (i *Installer) Install(ctx context.Context, target string) (*types.InstallResult, error) {
	done := logging.LogOperationStart(i.logger, "webapp.install")
	defer done()

	u, err := ParseURL(target)
	if err != nil {
		return nil, err
	}
	canonical := identity.Canonical(u)
	id := identity.FromURL(u)
	logger := i.logger.With().Str("id", id).Str("url", canonical).Logger()

	_, readErr := i.store.ReadShortcut(id)
	previouslyInstalled := readErr == nil

	profile, err := i.store.EnsureProfile(id)
	if err != nil {
		return nil, err
	}

	class := i.WMClass(id)
	script, err := renderLauncher(launcherData{
		Browsers: i.cfg.Browsers,
		URL:      canonical,
		Class:    class,
		Profile:  profile,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to render launcher")
	}
	execPath, err := i.store.WriteExecutable(id, script)
	if err != nil {
		return nil, err
	}

	pageURL, _ := url.Parse(canonical)
	body, err := i.get(ctx, pageURL, i.pageHeaders(), maxPageBytes)
	if err != nil {
		if !previouslyInstalled {
			i.cleanup(id, logger)
		}
		return nil, err
	}

	doc, err := parsePage(body)
	if err != nil {
		// The tokenizer is lenient; treat an unparsable page as an empty one.
		logger.Warn().Err(err).Msg("Cannot parse page")
		doc = &page{}
	}

	iconPath := i.fetchIcon(ctx, id, pageURL, doc, logger)
	name := appName(doc.title, pageURL)

	version := i.cfg.Version
	if version == "" {
		version = DefaultVersion
	}

	defaults := append(desktopentry.DefaultFields(),
		desktopentry.KeyValue{Key: desktopentry.KeyStartupWMClass, Value: class})
	entry := desktopentry.Merge(desktopentry.Fields{
		Name:    name,
		Icon:    iconPath,
		Version: version,
		Type:    desktopentry.TypeWebApp,
		Exec:    execPath,
	}, nil).WithDefaults(defaults...)

	shortcutPath, err := i.store.WriteShortcut(id, entry.String())
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("name", name).
		Str("shortcut", shortcutPath).
		Bool("icon", iconPath != "").
		Msg("Web app installed")

	return &types.InstallResult{
		ID:           id,
		Type:         types.AppTypeWebApp,
		Name:         name,
		Version:      version,
		ExecPath:     execPath,
		IconPath:     iconPath,
		ShortcutPath: shortcutPath,
	}, nil
}

// fetchIcon downloads the first declared icon. Any failure yields "".
func (i *Installer) fetchIcon(ctx context.Context, id string, pageURL *url.URL, doc *page, logger zerolog.Logger) string {
	if len(doc.iconHrefs) == 0 {
		logger.Debug().Msg("Page declares no icon")
		i.dropIcon(id, logger)
		return ""
	}

	href := doc.iconHrefs[0]
	iconURL, err := pageURL.Parse(href)
	if err != nil {
		logger.Warn().Err(err).Str("href", href).Msg("Cannot resolve icon link")
		i.dropIcon(id, logger)
		return ""
	}

	data, err := i.get(ctx, iconURL, i.iconHeaders(), maxIconBytes)
	if err != nil {
		logger.Warn().Err(err).Str("icon", iconURL.String()).Msg("Cannot fetch icon")
		i.dropIcon(id, logger)
		return ""
	}
	if len(data) == 0 {
		logger.Warn().Str("icon", iconURL.String()).Msg("Icon is empty")
		i.dropIcon(id, logger)
		return ""
	}

	path, err := i.store.WriteIcon(id, data)
	if err != nil {
		logger.Warn().Err(err).Msg("Cannot store icon")
		return ""
	}
	return path
}

// dropIcon removes an icon left by an earlier install of the same site.
func (i *Installer) dropIcon(id string, logger zerolog.Logger) {
	if err := i.fs.Remove(i.store.IconPath(id)); err != nil && !os.IsNotExist(err) {
		logger.Debug().Err(err).Msg("Cannot remove stale icon")
	}
}

func (i *Installer) cleanup(id string, logger zerolog.Logger) {
	if err := i.store.Remove(id); err != nil {
		logger.Warn().Err(err).Msg("Cleanup after failed install was incomplete")
	}
}
