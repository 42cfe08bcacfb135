// Package desktopentry models freedesktop desktop-entry shortcuts as ordered
// lines rather than a key/value map.
//
// Order matters in two places. Lookups scan top to bottom and the first
// "Key=value" line with a non-empty value wins, later duplicates are ignored.
// Merging emits the section header and the five installer-controlled fields
// (Name, Icon, X-Version, X-Type, Exec) first, then every original line whose
// key has not been emitted yet, so the first occurrence of each key survives
// and the rest are dropped.
//
//	original := desktopentry.Parse(text)
//	merged := desktopentry.Merge(desktopentry.Fields{
//		Name:    "FooApp",
//		Version: "2.1",
//		Type:    desktopentry.TypeAppImage,
//		Exec:    "/home/me/.local/share/deskit/<id>",
//	}, original).WithDefaults(desktopentry.DefaultFields()...)
//	content := merged.String()
package desktopentry
