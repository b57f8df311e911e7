package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"
	_ "time/tzdata"

	"github.com/adrg/xdg"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

const appName = "meallottery"

type Source struct {
	URL     string `yaml:"url"`
	ViewURL string `yaml:"view_url,omitempty"`
	Timeout string `yaml:"timeout,omitempty"`
}

type Config struct {
	Source    Source `yaml:"source"`
	Timezone  string `yaml:"timezone,omitempty"`
	DrawDelay string `yaml:"draw_delay,omitempty"`
	LogFile   string `yaml:"log_file,omitempty"`
}

// envOverrides are applied after the config file; empty values leave the file value alone.
type envOverrides struct {
	SourceURL string `env:"MEALS_SOURCE_URL"`
	Timezone  string `env:"MEALS_TIMEZONE"`
	DrawDelay string `env:"MEALS_DRAW_DELAY"`
	LogFile   string `env:"MEALS_LOG_FILE"`
}

func (c *Config) SourceTimeout() time.Duration {
	d, err := time.ParseDuration(c.Source.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// DrawDelayDuration returns how long the drawing animation runs before the reveal.
func (c *Config) DrawDelayDuration() time.Duration {
	d, err := time.ParseDuration(c.DrawDelay)
	if err != nil || d < 0 {
		return 1200 * time.Millisecond
	}
	return d
}

// Location resolves the configured timezone, falling back to local time.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// ViewURL is the page opened for humans; the CSV export when unset.
func (c *Config) ViewURL() string {
	if c.Source.ViewURL != "" {
		return c.Source.ViewURL
	}
	return c.Source.URL
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.yaml")
}

// DefaultLogPath is used when --debug is set and log_file is empty.
func DefaultLogPath() string {
	return filepath.Join(xdg.StateHome, appName, appName+".log")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

// Load reads the config file at path (DefaultConfigPath when empty) over the
// embedded defaults, then applies .env and MEALS_* environment overrides.
func Load(path string) (*Config, error) {
	cfg, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Non-fatal: embedded defaults still apply
		_ = writeDefaults(path)
	case err != nil:
		return nil, fmt.Errorf("reading config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	cfg.dropDefaultViewURL()

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	_ = godotenv.Load()

	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	if o.SourceURL != "" {
		cfg.Source.URL = o.SourceURL
	}
	if o.Timezone != "" {
		cfg.Timezone = o.Timezone
	}
	if o.DrawDelay != "" {
		cfg.DrawDelay = o.DrawDelay
	}
	if o.LogFile != "" {
		cfg.LogFile = o.LogFile
	}
	return nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

// SetSourceURL points the config at another sheet.
func (c *Config) SetSourceURL(u string) error {
	if err := ValidateSourceURL(u); err != nil {
		return err
	}
	c.Source.URL = u
	c.dropDefaultViewURL()
	return nil
}

// dropDefaultViewURL clears the embedded view_url once source.url no longer
// names the embedded sheet; that page belongs to the default sheet only.
func (c *Config) dropDefaultViewURL() {
	def, err := loadDefaults()
	if err != nil {
		return
	}
	if c.Source.URL != def.Source.URL && c.Source.ViewURL == def.Source.ViewURL {
		c.Source.ViewURL = ""
	}
}

// ValidateSourceURL checks that u is an absolute http or https URL.
func ValidateSourceURL(u string) error {
	if u == "" {
		return fmt.Errorf("source url is required")
	}
	parsed, err := url.Parse(u)
	if err != nil {
		return fmt.Errorf("invalid source url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("source url scheme must be http or https, got %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("source url %q has no host", u)
	}
	return nil
}

func validate(cfg *Config) error {
	if err := ValidateSourceURL(cfg.Source.URL); err != nil {
		return err
	}
	if cfg.Source.ViewURL != "" {
		if err := ValidateSourceURL(cfg.Source.ViewURL); err != nil {
			return fmt.Errorf("view_url: %w", err)
		}
	}
	if cfg.Source.Timeout != "" {
		d, err := time.ParseDuration(cfg.Source.Timeout)
		if err != nil {
			return fmt.Errorf("invalid source.timeout %q: %w", cfg.Source.Timeout, err)
		}
		if d <= 0 {
			return fmt.Errorf("source.timeout must be positive, got %q", cfg.Source.Timeout)
		}
	}
	if cfg.Timezone != "" {
		if _, err := time.LoadLocation(cfg.Timezone); err != nil {
			return fmt.Errorf("unknown timezone %q: %w", cfg.Timezone, err)
		}
	}
	if cfg.DrawDelay != "" {
		if _, err := time.ParseDuration(cfg.DrawDelay); err != nil {
			return fmt.Errorf("invalid draw_delay %q: %w", cfg.DrawDelay, err)
		}
	}
	return nil
}
