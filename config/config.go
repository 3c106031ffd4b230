package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultAddress is fetched when no addresses are configured.
const DefaultAddress = "https://jsonplaceholder.typicode.com/todos/1"

// Config is the top-level configuration.
type Config struct {
	Title       string        `toml:"title"`
	Addresses   []string      `toml:"addresses"`
	CounterStep int           `toml:"counter_step"`
	Timeout     Duration      `toml:"timeout"`
	Log         LogConfig     `toml:"log"`
	Tracing     TracingConfig `toml:"tracing"`
}

// LogConfig controls where structured logs are written.
// An empty File discards all log output.
type LogConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// TracingConfig holds optional OTLP/HTTP trace export settings.
type TracingConfig struct {
	Endpoint    string `toml:"endpoint"`
	ServiceName string `toml:"service_name"`
	Insecure    bool   `toml:"insecure"`
}

// Duration is a time.Duration that decodes from strings like "10s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Title:       "Garten",
		Addresses:   []string{DefaultAddress},
		CounterStep: 1,
		Timeout:     Duration{10 * time.Second},
		Log: LogConfig{
			Level: "info",
		},
		Tracing: TracingConfig{
			ServiceName: "garten",
			Insecure:    true,
		},
	}
}

// DefaultPath returns the default config file path using XDG conventions.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(dir, "garten", "config.toml")
}

// LoadFrom reads and parses the config file at the given path.
// Values missing from the file keep their defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault behaves like LoadFrom but returns Default when the file
// does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := LoadFrom(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

func (c *Config) applyDefaults() {
	def := Default()
	if strings.TrimSpace(c.Title) == "" {
		c.Title = def.Title
	}
	if len(c.Addresses) == 0 {
		c.Addresses = def.Addresses
	}
	if c.Timeout.Duration == 0 {
		c.Timeout = def.Timeout
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.Tracing.ServiceName == "" {
		c.Tracing.ServiceName = def.Tracing.ServiceName
	}
	c.Log.File = expandPath(c.Log.File)
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.CounterStep < 0 {
		return fmt.Errorf("counter_step must be >= 0, got %d", c.CounterStep)
	}
	if c.Timeout.Duration < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout.Duration)
	}
	if len(c.Addresses) == 0 {
		return errors.New("at least one address is required")
	}
	for i, addr := range c.Addresses {
		if strings.TrimSpace(addr) == "" {
			return fmt.Errorf("addresses[%d] is empty", i)
		}
	}
	return nil
}

// expandPath expands ~ to $HOME and then expands all environment variables.
func expandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		path = "$HOME" + path[1:]
	}
	return os.ExpandEnv(path)
}
