package types

// AppType tags how an installed app was produced. It is written to the
// X-Type field of the shortcut.
type AppType string

const (
	AppTypeAppImage AppType = "AppImage"
	AppTypeWebApp   AppType = "WebApp"
)

// Unknown is reported for any field that could not be read back from a shortcut.
const Unknown = "unknown"

// InstalledApp is the list-time view of one identity in the artifact store.
type InstalledApp struct {
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version" yaml:"version"`
	Type    string `json:"type" yaml:"type"`
}

// InstallResult describes what an installer wrote for one input.
type InstallResult struct {
	ID           string  `json:"id" yaml:"id"`
	Type         AppType `json:"type" yaml:"type"`
	Name         string  `json:"name" yaml:"name"`
	Version      string  `json:"version" yaml:"version"`
	ExecPath     string  `json:"exec" yaml:"exec"`
	IconPath     string  `json:"icon,omitempty" yaml:"icon,omitempty"`
	ShortcutPath string  `json:"shortcut" yaml:"shortcut"`
}
