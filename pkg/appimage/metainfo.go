package appimage

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/deskit/pkg/types"
	"github.com/beevik/etree"
	"github.com/rs/zerolog"
)

const metainfoExtension = ".xml"

// metainfoVersion returns the newest release version declared by the
// AppStream metadata shipped in the extracted tree, or "" if there is none.
func metainfoVersion(fs types.FS, root string, dirs []string, logger zerolog.Logger) string {
	for _, dir := range dirs {
		metaDir := filepath.Join(root, dir)
		entries, err := fs.ReadDir(metaDir)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), metainfoExtension) {
				continue
			}

			path := filepath.Join(metaDir, entry.Name())
			data, err := fs.ReadFile(path)
			if err != nil {
				logger.Debug().Err(err).Str("path", path).Msg("Cannot read metainfo")
				continue
			}

			doc := etree.NewDocument()
			if err := doc.ReadFromBytes(data); err != nil {
				logger.Debug().Err(err).Str("path", path).Msg("Cannot parse metainfo")
				continue
			}

			if version := releaseVersion(doc); version != "" {
				logger.Debug().Str("path", path).Str("version", version).Msg("Version from metainfo")
				return version
			}
		}
	}
	return ""
}

// releaseVersion returns the first release version. AppStream lists releases
// newest first.
func releaseVersion(doc *etree.Document) string {
	for _, release := range doc.FindElements("//releases/release") {
		if version := strings.TrimSpace(release.SelectAttrValue("version", "")); version != "" {
			return version
		}
	}
	return ""
}
