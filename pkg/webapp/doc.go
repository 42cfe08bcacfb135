// Package webapp installs web sites as desktop applications.
//
// A web app gets a dedicated browser profile, a small launcher script that
// opens the site in a Chromium-family browser in app mode, and a shortcut
// whose name and icon come from the page itself. The page is fetched once;
// its icon, when it declares one, is fetched at most once more. A failed
// icon fetch leaves the icon empty, a failed page fetch fails the install.
package webapp
