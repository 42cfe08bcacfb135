// Package config handles configuration management for deskit.
// It layers the embedded defaults, the user's TOML file and DESKIT_*
// environment variables with koanf, and can render the result back to TOML.
package config
