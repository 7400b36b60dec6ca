package localemap

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the file-based construction surface, typically parsed from a
// YAML document:
//
//	supported_locales: [en, en-US, pt-BR]
//	default_locale: en-US
//	fallbacks:
//	  en-US: [en]
//	  pt-BR: [en-US]
//	assets:
//	  src: res/lang
//	  base_file_names: [common, validation]
//	  auto_clean: true
//	  loader_type: filesystem
type Config struct {
	SupportedLocales []string            `yaml:"supported_locales"`
	DefaultLocale    string              `yaml:"default_locale"`
	Fallbacks        map[string][]string `yaml:"fallbacks"`
	Assets           AssetConfig         `yaml:"assets"`
}

// AssetConfig configures the asset source.
type AssetConfig struct {
	// Src is the loader root: a directory for the filesystem loader or a
	// base URL for the HTTP loader.
	Src string `yaml:"src"`

	// BaseFileNames is the ordered list of logical asset groups.
	BaseFileNames []string `yaml:"base_file_names"`

	// AutoClean toggles cache eviction after successful loads.
	// Unset keeps the default (enabled).
	AutoClean *bool `yaml:"auto_clean"`

	// LoaderType selects the loader: "filesystem" (or "fs") or "http".
	LoaderType string `yaml:"loader_type"`
}

// ParseConfig parses a YAML configuration document.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrConfiguration, err)
	}
	return cfg, nil
}

// LoadConfigFile reads and parses a YAML configuration file.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: reading %q: %s", ErrConfiguration, path, err)
	}
	return ParseConfig(data)
}

// Options materializes the configuration into constructor options,
// including the loader selected by Assets.LoaderType. Extra options are
// appended after the config-derived ones, so programmatic settings
// (loggers, handlers, a custom loader) override the file.
func (c Config) Options(extra ...Option) ([]Option, error) {
	loader, err := c.Assets.loader()
	if err != nil {
		return nil, err
	}

	opts := []Option{WithLoader(loader)}

	if len(c.SupportedLocales) > 0 {
		opts = append(opts, WithSupportedLocales(c.SupportedLocales...))
	}
	if c.DefaultLocale != "" {
		opts = append(opts, WithDefaultLocale(c.DefaultLocale))
	}
	if len(c.Fallbacks) > 0 {
		opts = append(opts, WithFallbacks(c.Fallbacks))
	}
	if len(c.Assets.BaseFileNames) > 0 {
		opts = append(opts, WithBaseFileNames(c.Assets.BaseFileNames...))
	}
	if c.Assets.AutoClean != nil {
		opts = append(opts, WithAutoClean(*c.Assets.AutoClean))
	}

	return append(opts, extra...), nil
}

func (a AssetConfig) loader() (Loader, error) {
	if a.Src == "" {
		return nil, fmt.Errorf("%w: assets.src is required", ErrConfiguration)
	}

	switch strings.ToLower(a.LoaderType) {
	case "", "filesystem", "fs":
		return NewDirLoader(a.Src), nil
	case "http":
		return NewHTTPLoader(a.Src, nil), nil
	default:
		return nil, fmt.Errorf("%w: unknown loader type %q", ErrConfiguration, a.LoaderType)
	}
}
