// Package catalog answers what is installed and removes installed apps.
//
// The catalog is derived from the artifact store on every call: each
// identity in the executable directory is one installed app, described by
// whatever its shortcut still says. There is no separate index to drift out
// of sync.
package catalog
