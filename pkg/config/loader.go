package config

import (
	"os"
	"strings"

	"github.com/arthur-debert/clseek/pkg/errors"
	"github.com/arthur-debert/clseek/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix prefixes every configuration environment variable
	EnvPrefix = "CLSEEK_"
	// EnvConfigFile names a user config file to load instead of the XDG one
	EnvConfigFile = "CLSEEK_CONFIG"
	// EnvPreset holds default seek options, the historical CLSEEKOPT variable
	EnvPreset = "CLSEEKOPT"
)

// Default returns the configuration built from the embedded defaults only
func Default() *Config {
	cfg, err := load(nil)
	if err != nil {
		// The embedded file is part of the binary; failing here is a build defect
		panic(err)
	}
	return cfg
}

// UserConfigPath returns the config file Load reads when no path is given
func UserConfigPath() string {
	if p := os.Getenv(EnvConfigFile); p != "" {
		return paths.ExpandHome(p)
	}
	return paths.ConfigFile()
}

// Load merges defaults, the user file, the environment and overrides. An
// empty path means UserConfigPath, which may be missing; an explicit path
// must exist. Override keys use dotted paths such as "seek.recursive".
func Load(path string, overrides map[string]interface{}) (*Config, error) {
	explicit := path != ""
	if explicit {
		path = paths.ExpandHome(path)
	} else {
		path = UserConfigPath()
	}

	var layers []layer
	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		layers = append(layers, fileLayer(path))
	case explicit:
		return nil, errors.Wrapf(statErr, errors.ErrConfigLoad, "config file %s not found", path)
	}
	layers = append(layers, envLayer, presetLayer)
	if len(overrides) > 0 {
		layers = append(layers, overrideLayer(overrides))
	}

	cfg, err := load(layers)
	if err != nil {
		return nil, err
	}
	if statErr == nil {
		cfg.Source = []string{path}
	}
	return cfg, nil
}

// layer loads one source into k
type layer struct {
	load func(k *koanf.Koanf) error
}

func fileLayer(path string) layer {
	return layer{load: func(k *koanf.Koanf) error {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path)
		}
		return nil
	}}
}

// envLayer maps CLSEEK_SECTION_KEY to section.key; only the first underscore
// separates, so CLSEEK_SEEK_IGNORE_CASE sets seek.ignore_case
var envLayer = layer{load: func(k *koanf.Koanf) error {
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		if key == "config" {
			return ""
		}
		return strings.Replace(key, "_", ".", 1)
	}), nil)
	if err != nil {
		return errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}
	return nil
}}

var presetLayer = layer{load: func(k *koanf.Koanf) error {
	preset, ok := os.LookupEnv(EnvPreset)
	if !ok {
		return nil
	}
	return k.Load(confmap.Provider(map[string]interface{}{"seek.preset": preset}, "."), nil)
}}

func overrideLayer(overrides map[string]interface{}) layer {
	return layer{load: func(k *koanf.Koanf) error {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
		return nil
	}}
}

func load(layers []layer) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}
	for _, l := range layers {
		if err := l.load(k); err != nil {
			return nil, err
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	switch cfg.Output.Color {
	case "auto", "always", "never":
	default:
		return errors.Newf(errors.ErrConfigParse, "output.color must be auto, always or never, got %q", cfg.Output.Color)
	}
	if cfg.Sync.BufferSize <= 0 {
		return errors.Newf(errors.ErrConfigParse, "sync.buffer_size must be positive, got %d", cfg.Sync.BufferSize)
	}
	if cfg.Seek.Shell == "" {
		return errors.New(errors.ErrConfigParse, "seek.shell must not be empty")
	}
	return nil
}
