// Package store owns the on-disk layout of installed applications.
//
// Every installed application is keyed by its identity and spread over four
// places: the executable (or launcher script) in the static directory, the
// icon in the user icon directory, the desktop entry in the applications
// directory, and for web apps a browser profile directory. The store is the
// only component that knows these locations; installers and the catalog go
// through it for every read and write.
//
// All I/O goes through types.FS so the store can be exercised against an
// in-memory filesystem in tests.
package store
