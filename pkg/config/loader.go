package config

import (
	"os"
	"slices"
	"strings"

	"github.com/arthur-debert/xdgmime/pkg/errors"
	"github.com/arthur-debert/xdgmime/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes environment overrides. A double underscore separates
// nesting levels: XDGMIME_MAGIC__MAX_PRIORITY sets magic.max_priority.
const EnvPrefix = "XDGMIME_"

// Options tells Load where to look
type Options struct {
	// UserFile is read when it exists
	UserFile string
	// ExplicitFile must exist when set
	ExplicitFile string
	// Overrides are dotted keys applied last, typically from CLI flags
	Overrides map[string]interface{}
}

// Load merges every configuration layer and decodes the result.
func Load(opts Options) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(defaults{}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User config if it exists
	if opts.UserFile != "" {
		if _, err := os.Stat(opts.UserFile); err == nil {
			if err := k.Load(file.Provider(opts.UserFile), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", opts.UserFile)
			}
			logger.Debug().Str("file", opts.UserFile).Msg("Loaded user config")
		}
	}

	// 3. Explicit config
	if opts.ExplicitFile != "" {
		if _, err := os.Stat(opts.ExplicitFile); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not found", opts.ExplicitFile)
		}
		if err := k.Load(file.Provider(opts.ExplicitFile), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", opts.ExplicitFile)
		}
		logger.Debug().Str("file", opts.ExplicitFile).Msg("Loaded explicit config")
	}

	// 4. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 5. Flag overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
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

	if err := postProcess(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps XDGMIME_MAGIC__MAX_PRIORITY to magic.max_priority
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

func postProcess(cfg *Config) error {
	if cfg.Magic.MinPriority > cfg.Magic.MaxPriority {
		return errors.Newf(errors.ErrConfigParse,
			"magic.min_priority (%d) is above magic.max_priority (%d)",
			cfg.Magic.MinPriority, cfg.Magic.MaxPriority)
	}
	if cfg.Identify.SniffBytes <= 0 {
		return errors.Newf(errors.ErrConfigParse,
			"identify.sniff_bytes must be positive, got %d", cfg.Identify.SniffBytes)
	}
	cfg.Output.Format = strings.ToLower(cfg.Output.Format)
	if !slices.Contains(validFormats, cfg.Output.Format) {
		return errors.Newf(errors.ErrConfigParse, "unknown output.format %q", cfg.Output.Format).
			WithDetail("valid", validFormats)
	}
	if cfg.Describe.Language == "" {
		cfg.Describe.Language = "en"
	}
	if len(cfg.Desktop.Current) == 0 {
		cfg.Desktop.Current = currentDesktops()
	}
	return nil
}

// currentDesktops reads XDG_CURRENT_DESKTOP, a colon separated list
func currentDesktops() []string {
	var out []string
	for _, name := range strings.Split(os.Getenv("XDG_CURRENT_DESKTOP"), ":") {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, strings.ToLower(name))
		}
	}
	return out
}
