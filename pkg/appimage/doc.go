// Package appimage installs AppImage bundles as desktop applications.
//
// Installing a bundle copies it into the artifact store under its content
// identity, lets the bundle extract itself into a scratch directory, and
// reads the desktop entry, icon and version it ships with. Those are merged
// with the values deskit controls (name, icon path, version, type and the
// Exec line pointing at the placed copy) and written out as a shortcut.
//
// The scratch directory is removed whether or not the install succeeds.
// Installing the same bytes again rewrites the same files with the same
// content.
package appimage
