package store

import (
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/deskit/pkg/desktopentry"
	"github.com/arthur-debert/deskit/pkg/errors"
	"github.com/arthur-debert/deskit/pkg/identity"
	"github.com/arthur-debert/deskit/pkg/logging"
	"github.com/arthur-debert/deskit/pkg/paths"
	"github.com/arthur-debert/deskit/pkg/types"
	"github.com/rs/zerolog"
)

const (
	dirPerm        os.FileMode = 0755
	executablePerm os.FileMode = 0755
	iconPerm       os.FileMode = 0644
	shortcutPerm   os.FileMode = 0755

	partialSuffix = ".partial"
)

// Store places and removes the artifacts of installed applications.
type Store struct {
	fs             types.FS
	paths          paths.Paths
	shortcutPrefix string
	logger         zerolog.Logger
}

// New creates a Store rooted at the given layout. A non-empty prefix is
// prepended to shortcut file names as "<prefix>-<id>.desktop".
func New(fs types.FS, p paths.Paths, shortcutPrefix string) *Store {
	return &Store{
		fs:             fs,
		paths:          p,
		shortcutPrefix: shortcutPrefix,
		logger:         logging.GetLogger("store"),
	}
}

// Paths returns the layout the store is rooted at.
func (s *Store) Paths() paths.Paths {
	return s.paths
}

// ExecutablePath returns where the executable for id lives.
func (s *Store) ExecutablePath(id string) string {
	return filepath.Join(s.paths.StaticDir(), id)
}

// IconPath returns where the icon for id lives.
func (s *Store) IconPath(id string) string {
	return filepath.Join(s.paths.IconsDir(), id)
}

// ShortcutPath returns where the desktop entry for id is written.
func (s *Store) ShortcutPath(id string) string {
	return filepath.Join(s.paths.ShortcutsDir(), s.shortcutName(id))
}

// ProfilePath returns the browser profile directory for id.
func (s *Store) ProfilePath(id string) string {
	return filepath.Join(s.paths.ProfilesDir(), id)
}

func (s *Store) shortcutName(id string) string {
	if s.shortcutPrefix == "" {
		return id + desktopentry.Extension
	}
	return s.shortcutPrefix + "-" + id + desktopentry.Extension
}

// shortcutCandidates lists every file name a shortcut for id may have been
// written under, current naming first.
func (s *Store) shortcutCandidates(id string) []string {
	candidates := []string{s.ShortcutPath(id)}
	if s.shortcutPrefix != "" {
		candidates = append(candidates, filepath.Join(s.paths.ShortcutsDir(), id+desktopentry.Extension))
	}
	return candidates
}

// PlaceExecutable copies src into the static directory as id with mode 0755.
// The copy is streamed into a sibling file and renamed into place, so an
// executable that is currently running can be replaced.
func (s *Store) PlaceExecutable(id, src string) (string, error) {
	dst := s.ExecutablePath(id)

	in, err := s.fs.Open(src)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFilesystem, "failed to open %s", src).
			WithDetail("path", src)
	}
	defer func() { _ = in.Close() }()

	if err := s.writeStream(dst, in, executablePerm); err != nil {
		return "", err
	}

	s.logger.Debug().Str("id", id).Str("src", src).Str("path", dst).Msg("Placed executable")
	return dst, nil
}

// WriteExecutable writes content as the executable for id with mode 0755.
func (s *Store) WriteExecutable(id string, content []byte) (string, error) {
	dst := s.ExecutablePath(id)
	if err := s.writeFile(dst, content, executablePerm); err != nil {
		return "", err
	}
	s.logger.Debug().Str("id", id).Str("path", dst).Msg("Wrote executable")
	return dst, nil
}

// PlaceIcon copies the icon at src into the icon directory as id. Symbolic
// links are followed to the real file first; a dangling link is an error.
func (s *Store) PlaceIcon(id, src string) (string, error) {
	resolved, err := s.fs.EvalSymlinks(src)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFilesystem, "cannot resolve icon %s", src).
			WithDetail("path", src)
	}

	info, err := s.fs.Stat(resolved)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFilesystem, "cannot stat icon %s", resolved).
			WithDetail("path", resolved)
	}
	if info.IsDir() {
		return "", errors.Newf(errors.ErrFilesystem, "icon %s is a directory", resolved).
			WithDetail("path", resolved)
	}

	in, err := s.fs.Open(resolved)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFilesystem, "failed to open icon %s", resolved).
			WithDetail("path", resolved)
	}
	defer func() { _ = in.Close() }()

	dst := s.IconPath(id)
	if err := s.writeStream(dst, in, iconPerm); err != nil {
		return "", err
	}

	s.logger.Debug().Str("id", id).Str("src", resolved).Str("path", dst).Msg("Placed icon")
	return dst, nil
}

// WriteIcon stores downloaded icon bytes as the icon for id.
func (s *Store) WriteIcon(id string, data []byte) (string, error) {
	dst := s.IconPath(id)
	if err := s.writeFile(dst, data, iconPerm); err != nil {
		return "", err
	}
	s.logger.Debug().Str("id", id).Str("path", dst).Int("bytes", len(data)).Msg("Wrote icon")
	return dst, nil
}

// WriteShortcut writes the desktop entry for id, replacing any previous one.
func (s *Store) WriteShortcut(id, content string) (string, error) {
	dst := s.ShortcutPath(id)
	if err := s.writeFile(dst, []byte(content), shortcutPerm); err != nil {
		return "", err
	}
	s.logger.Debug().Str("id", id).Str("path", dst).Msg("Wrote shortcut")
	return dst, nil
}

// ReadShortcut returns the desktop entry text for id. Entries written
// without the configured prefix are found too.
func (s *Store) ReadShortcut(id string) (string, error) {
	var lastErr error
	for _, candidate := range s.shortcutCandidates(id) {
		data, err := s.fs.ReadFile(candidate)
		if err == nil {
			return string(data), nil
		}
		if lastErr == nil || !os.IsNotExist(err) {
			lastErr = err
		}
	}
	return "", errors.Wrapf(lastErr, errors.ErrFilesystem, "cannot read shortcut for %s", id).
		WithDetail("id", id)
}

// EnsureProfile creates the browser profile directory for id.
func (s *Store) EnsureProfile(id string) (string, error) {
	dir := s.ProfilePath(id)
	if err := s.fs.MkdirAll(dir, dirPerm); err != nil {
		return "", errors.Wrapf(err, errors.ErrFilesystem, "failed to create profile directory %s", dir).
			WithDetail("path", dir)
	}
	return dir, nil
}

// Remove deletes every artifact belonging to id. Missing artifacts are not
// an error; the first real failure is reported after all removals were tried.
func (s *Store) Remove(id string) error {
	targets := []string{s.ExecutablePath(id), s.IconPath(id)}
	targets = append(targets, s.shortcutCandidates(id)...)
	targets = append(targets, s.ProfilePath(id), filepath.Join(s.paths.TempDir(), id))

	var firstErr error
	for _, target := range targets {
		if err := s.fs.RemoveAll(target); err != nil && !os.IsNotExist(err) {
			s.logger.Warn().Err(err).Str("path", target).Msg("Failed to remove artifact")
			if firstErr == nil {
				firstErr = errors.Wrapf(err, errors.ErrFilesystem, "failed to remove %s", target).
					WithDetail("path", target)
			}
			continue
		}
		s.logger.Trace().Str("path", target).Msg("Removed")
	}

	if firstErr != nil {
		return firstErr
	}
	s.logger.Debug().Str("id", id).Msg("Removed application artifacts")
	return nil
}

// AcquireScratch returns an empty scratch directory for id. The returned
// release func removes it and is safe to call more than once.
func (s *Store) AcquireScratch(id string) (string, func(), error) {
	dir := filepath.Join(s.paths.TempDir(), id)

	if err := s.fs.RemoveAll(dir); err != nil {
		return "", nil, errors.Wrapf(err, errors.ErrFilesystem, "failed to clear scratch directory %s", dir).
			WithDetail("path", dir)
	}
	if err := s.fs.MkdirAll(dir, dirPerm); err != nil {
		return "", nil, errors.Wrapf(err, errors.ErrFilesystem, "failed to create scratch directory %s", dir).
			WithDetail("path", dir)
	}

	release := func() {
		if err := s.fs.RemoveAll(dir); err != nil {
			s.logger.Warn().Err(err).Str("path", dir).Msg("Failed to remove scratch directory")
		}
	}
	return dir, release, nil
}

// IDs lists the identities present in the static directory, sorted.
// A missing directory means nothing is installed.
func (s *Store) IDs() ([]string, error) {
	entries, err := s.fs.ReadDir(s.paths.StaticDir())
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, errors.Wrapf(err, errors.ErrFilesystem, "failed to read %s", s.paths.StaticDir()).
			WithDetail("path", s.paths.StaticDir())
	}

	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !identity.Valid(entry.Name()) {
			s.logger.Trace().Str("name", entry.Name()).Msg("Skipping non-identity entry")
			continue
		}
		ids = append(ids, entry.Name())
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *Store) writeFile(dst string, content []byte, perm os.FileMode) error {
	if err := s.fs.MkdirAll(filepath.Dir(dst), dirPerm); err != nil {
		return errors.Wrapf(err, errors.ErrFilesystem, "failed to create directory %s", filepath.Dir(dst)).
			WithDetail("path", dst)
	}
	if err := s.fs.WriteFile(dst, content, perm); err != nil {
		return errors.Wrapf(err, errors.ErrFilesystem, "failed to write %s", dst).
			WithDetail("path", dst)
	}
	// WriteFile keeps the mode of a file that already existed.
	if err := s.fs.Chmod(dst, perm); err != nil {
		return errors.Wrapf(err, errors.ErrFilesystem, "failed to set mode on %s", dst).
			WithDetail("path", dst)
	}
	return nil
}

func (s *Store) writeStream(dst string, r io.Reader, perm os.FileMode) error {
	if err := s.fs.MkdirAll(filepath.Dir(dst), dirPerm); err != nil {
		return errors.Wrapf(err, errors.ErrFilesystem, "failed to create directory %s", filepath.Dir(dst)).
			WithDetail("path", dst)
	}

	tmp := dst + partialSuffix
	out, err := s.fs.Create(tmp, perm)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFilesystem, "failed to create %s", tmp).
			WithDetail("path", dst)
	}

	if _, err := io.Copy(out, r); err != nil {
		_ = out.Close()
		_ = s.fs.Remove(tmp)
		return errors.Wrapf(err, errors.ErrFilesystem, "failed to copy into %s", dst).
			WithDetail("path", dst)
	}
	if err := out.Close(); err != nil {
		_ = s.fs.Remove(tmp)
		return errors.Wrapf(err, errors.ErrFilesystem, "failed to flush %s", dst).
			WithDetail("path", dst)
	}
	if err := s.fs.Chmod(tmp, perm); err != nil {
		_ = s.fs.Remove(tmp)
		return errors.Wrapf(err, errors.ErrFilesystem, "failed to set mode on %s", dst).
			WithDetail("path", dst)
	}
	if err := s.fs.Rename(tmp, dst); err != nil {
		_ = s.fs.Remove(tmp)
		return errors.Wrapf(err, errors.ErrFilesystem, "failed to move %s into place", dst).
			WithDetail("path", dst)
	}
	return nil
}
