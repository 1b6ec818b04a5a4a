// Package config provides reading and writing of linkapp configuration,
// stored as config.yaml inside the application data directory. The app is
// per-user, so there is a single scope; the data directory itself comes
// from the --dir flag, the LINKAPP_DIR environment variable, or ~/.linkapp.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// EnvDir is the environment variable overriding the data directory.
const EnvDir = "LINKAPP_DIR"

// Limits holds size limit configuration options.
type Limits struct {
	MaxButtons *int `yaml:"max_buttons,omitempty"`
}

// DefaultMaxButtons is the per-section button cap applied when not
// configured. It matches the historical hard limit of the browser build.
const DefaultMaxButtons = 500

// Validation bounds for configuration values.
const (
	MinMaxButtons = 1
	MaxMaxButtons = 100000
)

// Config contains configuration for linkapp.
type Config struct {
	DefaultBrowser string `yaml:"default_browser,omitempty"`
	Theme          string `yaml:"theme,omitempty"`
	Limits         Limits `yaml:"limits,omitempty"`

	// path is the file this config was loaded from (for Save)
	path string
}

// Validate checks that all configured values are within acceptable bounds.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	if c.Limits.MaxButtons != nil {
		v := *c.Limits.MaxButtons
		if v < MinMaxButtons || v > MaxMaxButtons {
			return fmt.Errorf("%w: limits.max_buttons must be between %d and %d, got %d",
				ErrInvalidValue, MinMaxButtons, MaxMaxButtons, v)
		}
	}
	switch c.Theme {
	case "", "system", "light", "sea", "dark":
	default:
		return fmt.Errorf("%w: theme must be one of system, light, sea, dark; got %q", ErrInvalidValue, c.Theme)
	}
	return nil
}

// MaxButtons returns the per-section button cap (defaults to 500).
func (c *Config) MaxButtons() int {
	if c.Limits.MaxButtons == nil {
		return DefaultMaxButtons
	}
	return *c.Limits.MaxButtons
}

// DataDir resolves the application data directory: explicit dir argument
// first (the --dir flag), then LINKAPP_DIR, then ~/.linkapp.
func DataDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	if env := os.Getenv(EnvDir); env != "" {
		return env, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".linkapp"), nil
}

// Path returns the config file path inside dataDir.
func Path(dataDir string) string {
	return filepath.Join(dataDir, "config.yaml")
}

// Load reads configuration from dataDir. A missing file yields defaults.
func Load(dataDir string) (*Config, error) {
	path := Path(dataDir)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes the configuration back to its original location, creating
// parent directories as needed.
func (c *Config) Save() error {
	if c.path == "" {
		return ErrNoConfigPath
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Get returns the value of a config key as a display string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "default_browser":
		return c.DefaultBrowser, nil
	case "theme":
		return c.Theme, nil
	case "limits.max_buttons":
		return fmt.Sprintf("%d", c.MaxButtons()), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set updates a config key from its string form and validates the result.
func (c *Config) Set(key, value string) error {
	switch key {
	case "default_browser":
		c.DefaultBrowser = value
	case "theme":
		c.Theme = value
	case "limits.max_buttons":
		var v int
		if _, err := fmt.Sscanf(value, "%d", &v); err != nil {
			return fmt.Errorf("%w: limits.max_buttons must be an integer, got %q", ErrInvalidValue, value)
		}
		c.Limits.MaxButtons = &v
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return c.Validate()
}

// Keys lists the known configuration keys.
func Keys() []string {
	return []string{"default_browser", "theme", "limits.max_buttons"}
}
