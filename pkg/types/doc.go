// Package types defines the core types and interfaces shared across deskit.
// This includes the FS abstraction used by the artifact store and the
// InstalledApp view produced by the catalog.
package types
