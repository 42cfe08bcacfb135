package config

import (
	"time"
)

// Store holds artifact store layout settings
type Store struct {
	StaticDir      string `koanf:"static_dir" toml:"static_dir"`
	ShortcutPrefix string `koanf:"shortcut_prefix" toml:"shortcut_prefix"`
	ProfilesDir    string `koanf:"profiles_dir" toml:"profiles_dir"`
}

// AppImage holds AppImage installer settings
type AppImage struct {
	ExtractFlag     string   `koanf:"extract_flag" toml:"extract_flag"`
	ExtractDir      string   `koanf:"extract_dir" toml:"extract_dir"`
	IconNames       []string `koanf:"icon_names" toml:"icon_names"`
	FallbackVersion string   `koanf:"fallback_version" toml:"fallback_version"`
	MetainfoDirs    []string `koanf:"metainfo_dirs" toml:"metainfo_dirs"`
}

// WebApp holds web app installer settings
type WebApp struct {
	Browsers       []string `koanf:"browsers" toml:"browsers"`
	WMClassPrefix  string   `koanf:"wm_class_prefix" toml:"wm_class_prefix"`
	Timeout        string   `koanf:"timeout" toml:"timeout"`
	UserAgent      string   `koanf:"user_agent" toml:"user_agent"`
	AcceptLanguage string   `koanf:"accept_language" toml:"accept_language"`
	Version        string   `koanf:"version" toml:"version"`
}

// FetchTimeout parses Timeout, falling back to 30s when it is unset or invalid.
func (w WebApp) FetchTimeout() time.Duration {
	d, err := time.ParseDuration(w.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// Desktop holds desktop environment integration settings
type Desktop struct {
	RefreshDatabase bool   `koanf:"refresh_database" toml:"refresh_database"`
	DatabaseCommand string `koanf:"database_command" toml:"database_command"`
}

// Config is the main configuration structure
type Config struct {
	Store    Store    `koanf:"store" toml:"store"`
	AppImage AppImage `koanf:"appimage" toml:"appimage"`
	WebApp   WebApp   `koanf:"webapp" toml:"webapp"`
	Desktop  Desktop  `koanf:"desktop" toml:"desktop"`

	// Source is the user file that was loaded, empty when none existed
	Source string `koanf:"-" toml:"-"`
}

// Default returns the configuration built from the embedded defaults only
func Default() *Config {
	cfg, err := Load(LoadOptions{SkipUserFile: true, SkipEnv: true})
	if err != nil {
		// The embedded file is part of the binary; failing here is a build bug.
		panic(err)
	}
	return cfg
}
