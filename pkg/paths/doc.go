// Package paths provides centralized path handling for deskit.
//
// Every installed artifact lives under a fixed per-user layout derived from
// the XDG Base Directory specification:
//
//   - Shortcuts: $XDG_DATA_HOME/applications/<id>.desktop
//   - Icons: $XDG_DATA_HOME/icons/<id>
//   - Executables and launchers: $XDG_DATA_HOME/deskit/<id>
//   - Browser profiles: $XDG_DATA_HOME/ice/profiles/<id>
//   - Scratch extraction: $XDG_CACHE_HOME/deskit/extract/<id>
//
// # Environment Variables
//
//   - DESKIT_DATA_DIR: Override the data root (default: $XDG_DATA_HOME)
//   - DESKIT_CACHE_DIR: Override the cache root (default: $XDG_CACHE_HOME/deskit)
//   - DESKIT_CONFIG_DIR: Override the config directory (default: $XDG_CONFIG_HOME/deskit)
package paths
