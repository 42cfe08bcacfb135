package config

import (
	"os"
	"strings"

	"github.com/arthur-debert/deskit/pkg/errors"
	"github.com/arthur-debert/deskit/pkg/logging"
	"github.com/arthur-debert/deskit/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "DESKIT_"

// LoadOptions controls which layers Load reads
type LoadOptions struct {
	// Path of the user file; empty means paths.ConfigFilePath()
	Path         string
	SkipUserFile bool
	SkipEnv      bool
}

// NewKoanf loads the configuration layers into a koanf instance:
// embedded defaults, then the user file if present, then environment variables.
func NewKoanf(opts LoadOptions) (*koanf.Koanf, string, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, "", errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	var source string
	if !opts.SkipUserFile {
		path := opts.Path
		explicit := path != ""
		if !explicit {
			path = paths.ConfigFilePath()
		}
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, "", errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path)
			}
			source = path
			logger.Debug().Str("path", path).Msg("Loaded user config")
		} else if explicit {
			return nil, "", errors.Wrapf(err, errors.ErrConfigLoad, "config file %s", path)
		}
	}

	if !opts.SkipEnv {
		err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil)
		if err != nil {
			return nil, "", errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
		}
	}

	return k, source, nil
}

// envKey maps DESKIT_WEBAPP__TIMEOUT to webapp.timeout. Single underscores
// stay inside key names.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// Load builds the effective Config
func Load(opts LoadOptions) (*Config, error) {
	k, source, err := NewKoanf(opts)
	if err != nil {
		return nil, err
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	cfg.Source = source

	return &cfg, nil
}
