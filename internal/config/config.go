package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for a mojo run.
type Config struct {
	ListingURL   string
	StorePath    string
	Teams        []string // accepted team names, matched exactly
	HTTPTimeout  time.Duration
	DetailDelay  time.Duration // minimum gap between detail-page fetches to the same host
	Retry        RetryConfig
	Notification NotificationConfig
}

// RetryConfig controls the listing-fetch retry decorator.
type RetryConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
}

// NotificationConfig controls which notifier is used and its settings.
type NotificationConfig struct {
	Type   string `yaml:"type"`    // "log" or "mailgun"
	APIURL string `yaml:"api_url"` // mailgun messages endpoint
	APIKey string `yaml:"api_key"` // expanded from env var by Load
	From   string `yaml:"from"`
	To     string `yaml:"to"`
}

const (
	defaultListingURL  = "https://careers.mozilla.org/en-US/listings"
	defaultStorePath   = "offers.json"
	defaultHTTPTimeout = 30 * time.Second
	defaultDetailDelay = 1 * time.Second
	defaultMaxRetries  = 2
	defaultBaseDelay   = 5 * time.Second
)

// rawConfig is used for YAML unmarshaling (snake_case fields and durations as strings).
type rawConfig struct {
	ListingURL   string             `yaml:"listing_url"`
	StorePath    string             `yaml:"store_path"`
	Teams        []string           `yaml:"teams"`
	HTTPTimeout  string             `yaml:"http_timeout"`
	DetailDelay  string             `yaml:"detail_delay"`
	Retry        rawRetryConfig     `yaml:"retry"`
	Notification NotificationConfig `yaml:"notification"`
}

type rawRetryConfig struct {
	MaxRetries *int   `yaml:"max_retries"`
	BaseDelay  string `yaml:"base_delay"`
}

// Load reads and parses the YAML config file at path, expands environment
// variables, validates the result, and returns Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables so secrets never live in the file.
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg := &Config{
		ListingURL:  defaultListingURL,
		StorePath:   defaultStorePath,
		Teams:       raw.Teams,
		HTTPTimeout: defaultHTTPTimeout,
		DetailDelay: defaultDetailDelay,
		Retry: RetryConfig{
			MaxRetries: defaultMaxRetries,
			BaseDelay:  defaultBaseDelay,
		},
		Notification: raw.Notification,
	}

	if raw.ListingURL != "" {
		cfg.ListingURL = raw.ListingURL
	}
	if raw.StorePath != "" {
		cfg.StorePath = raw.StorePath
	}
	if raw.HTTPTimeout != "" {
		cfg.HTTPTimeout, err = time.ParseDuration(raw.HTTPTimeout)
		if err != nil {
			return nil, fmt.Errorf("parse http_timeout %q: %w", raw.HTTPTimeout, err)
		}
	}
	if raw.DetailDelay != "" {
		cfg.DetailDelay, err = time.ParseDuration(raw.DetailDelay)
		if err != nil {
			return nil, fmt.Errorf("parse detail_delay %q: %w", raw.DetailDelay, err)
		}
	}
	if raw.Retry.MaxRetries != nil {
		cfg.Retry.MaxRetries = *raw.Retry.MaxRetries
	}
	if raw.Retry.BaseDelay != "" {
		cfg.Retry.BaseDelay, err = time.ParseDuration(raw.Retry.BaseDelay)
		if err != nil {
			return nil, fmt.Errorf("parse retry.base_delay %q: %w", raw.Retry.BaseDelay, err)
		}
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if len(cfg.Teams) == 0 {
		return fmt.Errorf("at least one team must be configured")
	}
	if cfg.HTTPTimeout <= 0 {
		return fmt.Errorf("http_timeout must be positive, got %v", cfg.HTTPTimeout)
	}
	if cfg.DetailDelay < 0 {
		return fmt.Errorf("detail_delay must not be negative, got %v", cfg.DetailDelay)
	}
	if cfg.Retry.MaxRetries < 0 {
		return fmt.Errorf("retry.max_retries must not be negative, got %d", cfg.Retry.MaxRetries)
	}

	if cfg.Notification.Type == "mailgun" {
		if cfg.Notification.APIURL == "" {
			return fmt.Errorf("notification.api_url is required when type is \"mailgun\"")
		}
		if cfg.Notification.APIKey == "" {
			return fmt.Errorf("notification.api_key is required when type is \"mailgun\"")
		}
		if cfg.Notification.From == "" || cfg.Notification.To == "" {
			return fmt.Errorf("notification.from and notification.to are required when type is \"mailgun\"")
		}
	}

	return nil
}
