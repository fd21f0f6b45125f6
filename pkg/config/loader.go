package config

import (
	"os"
	"strings"

	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/logging"
	"github.com/arthur-debert/dotsync/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks environment variables that override configuration
const EnvPrefix = "DOTSYNC_"

// Load reads the configuration from the user's XDG config directory
func Load() (*Config, error) {
	return LoadFrom(paths.ConfigFilePath())
}

// LoadFrom reads the configuration using userPath as the user file. A
// missing user file is not an error.
func LoadFrom(userPath string) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. User file if it exists
	if userPath != "" {
		if _, err := os.Stat(userPath); err == nil {
			if err := k.Load(file.Provider(userPath), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", userPath).
					WithDetail("path", userPath)
			}
			logger.Debug().Str("path", userPath).Msg("Loaded user config")
		}
	}

	// 3. Env vars
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Unmarshal
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to unmarshal configuration")
	}

	// 5. Post-process
	if err := postProcess(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// envKey maps DOTSYNC_SECTION_SOME_KEY to section.some_key. Only the first
// underscore separates the section; the rest belong to the key name.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

func postProcess(cfg *Config) error {
	if cfg.Manifest == "" {
		return errors.New(errors.ErrConfigLoad, "manifest must not be empty")
	}
	if cfg.Bootstrap.Timeout <= 0 {
		return errors.Newf(errors.ErrConfigLoad, "bootstrap timeout must be positive, got %s", cfg.Bootstrap.Timeout)
	}
	if cfg.Bootstrap.StateDir == "" {
		cfg.Bootstrap.StateDir = paths.StateDir()
	}
	return nil
}
