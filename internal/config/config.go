package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath overrides the default config file location.
const EnvConfigPath = "CAPREG_CONFIG"

// defaultDirName is the state directory under the user's home.
const defaultDirName = ".capreg"

// Config holds the host configuration.
type Config struct {
	// Edition selects the producer set: "core" or "enterprise".
	Edition string `yaml:"edition"`

	Log LogConfig `yaml:"log"`

	// Disable lists "category/id" entries to unregister after all producers ran.
	Disable []string `yaml:"disable"`

	// DataDir holds persisted admin settings (auth provider configs, secrets fallback).
	DataDir string `yaml:"data_dir"`

	// Path is the file the config was loaded from. Empty when defaults were used.
	Path string `yaml:"-"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Disabled is a parsed entry of Config.Disable.
type Disabled struct {
	Category string
	ID       string
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Edition: "enterprise",
		Log:     LogConfig{Level: "info", Format: "text"},
		DataDir: defaultDataDir(),
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return defaultDirName
	}
	return filepath.Join(home, defaultDirName)
}

// DefaultPath returns the config path from CAPREG_CONFIG or ~/.capreg/capreg.yaml.
func DefaultPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return filepath.Join(defaultDataDir(), "capreg.yaml")
}

// Load reads the YAML file at path on top of Default(). A missing file is not
// an error. An empty path means DefaultPath().
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Path = path
	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field values. Errors name the offending field.
func (c *Config) Validate() error {
	switch c.Edition {
	case "core", "enterprise":
	default:
		return fmt.Errorf("edition: unknown value %q", c.Edition)
	}
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level: unknown value %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format: unknown value %q", c.Log.Format)
	}
	if _, err := c.DisabledEntries(); err != nil {
		return err
	}
	return nil
}

// DisabledEntries parses Disable into category/id pairs.
func (c *Config) DisabledEntries() ([]Disabled, error) {
	out := make([]Disabled, 0, len(c.Disable))
	for i, raw := range c.Disable {
		cat, id, ok := strings.Cut(strings.TrimSpace(raw), "/")
		if !ok || cat == "" || id == "" {
			return nil, fmt.Errorf("disable[%d]: %q is not in category/id form", i, raw)
		}
		out = append(out, Disabled{Category: cat, ID: id})
	}
	return out, nil
}

// Save writes the config as YAML to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
