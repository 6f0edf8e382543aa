package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"coingrid/internal/currency"
)

// Config is the app configuration.
//
// Loaded from an optional YAML file, then COINGRID_* env vars, then CLI flags
// (applied by the caller).
type Config struct {
	Source struct {
		URL       string        `yaml:"url"`
		Timeout   time.Duration `yaml:"timeout"`
		UserAgent string        `yaml:"user_agent"`
		Insecure  bool          `yaml:"insecure"`
	} `yaml:"source"`

	UI struct {
		Locale    string `yaml:"locale"`
		CellWidth int    `yaml:"cell_width"`
	} `yaml:"ui"`

	Log struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"log"`
}

func Default() Config {
	var c Config
	c.Source.URL = currency.DefaultURL
	c.Source.Timeout = 10 * time.Second
	c.Source.UserAgent = "coingrid/0.1.0"
	c.UI.Locale = "en"
	c.UI.CellWidth = 28
	c.Log.Level = "info"
	return c
}

// Load loads configuration from the given path.
//
// An empty path yields Default() with env overrides. A missing file is an error.
func Load(path string) (Config, error) {
	c := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return Config{}, fmt.Errorf("config file not found: %s", path)
			}
			return Config{}, err
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	applyEnv(&c)

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func applyEnv(c *Config) {
	if v := strings.TrimSpace(os.Getenv("COINGRID_URL")); v != "" {
		c.Source.URL = v
	}
	if v := strings.TrimSpace(os.Getenv("COINGRID_LOG_LEVEL")); v != "" {
		c.Log.Level = v
	}
	if v := strings.TrimSpace(os.Getenv("COINGRID_LOCALE")); v != "" {
		c.UI.Locale = v
	}
}

// Validate checks values a YAML file or env var could have broken.
func (c Config) Validate() error {
	if c.Source.Timeout <= 0 {
		return fmt.Errorf("source.timeout must be positive, got %s", c.Source.Timeout)
	}
	if c.UI.CellWidth < 8 {
		return fmt.Errorf("ui.cell_width must be at least 8, got %d", c.UI.CellWidth)
	}
	if _, err := c.LocaleTag(); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	return nil
}

// LocaleTag parses UI.Locale.
func (c Config) LocaleTag() (language.Tag, error) {
	tag, err := language.Parse(c.UI.Locale)
	if err != nil {
		return language.Und, fmt.Errorf("ui.locale %q: %w", c.UI.Locale, err)
	}
	return tag, nil
}
