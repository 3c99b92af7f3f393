package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
listing_url: https://careers.example.org/listings
store_path: /var/lib/mojo/offers.json
teams:
  - Engineering
  - IT
http_timeout: 10s
detail_delay: 2s
retry:
  max_retries: 3
  base_delay: 1s
notification:
  type: log
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListingURL != "https://careers.example.org/listings" {
		t.Errorf("ListingURL = %q", cfg.ListingURL)
	}
	if cfg.StorePath != "/var/lib/mojo/offers.json" {
		t.Errorf("StorePath = %q", cfg.StorePath)
	}
	if len(cfg.Teams) != 2 || cfg.Teams[0] != "Engineering" || cfg.Teams[1] != "IT" {
		t.Errorf("Teams = %v", cfg.Teams)
	}
	if cfg.HTTPTimeout != 10*time.Second {
		t.Errorf("HTTPTimeout = %v, want 10s", cfg.HTTPTimeout)
	}
	if cfg.DetailDelay != 2*time.Second {
		t.Errorf("DetailDelay = %v, want 2s", cfg.DetailDelay)
	}
	if cfg.Retry.MaxRetries != 3 || cfg.Retry.BaseDelay != time.Second {
		t.Errorf("Retry = %+v", cfg.Retry)
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
teams:
  - Engineering
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListingURL != defaultListingURL {
		t.Errorf("ListingURL = %q, want default", cfg.ListingURL)
	}
	if cfg.StorePath != defaultStorePath {
		t.Errorf("StorePath = %q, want default", cfg.StorePath)
	}
	if cfg.HTTPTimeout != defaultHTTPTimeout {
		t.Errorf("HTTPTimeout = %v, want default", cfg.HTTPTimeout)
	}
	if cfg.Retry.MaxRetries != defaultMaxRetries || cfg.Retry.BaseDelay != defaultBaseDelay {
		t.Errorf("Retry = %+v, want defaults", cfg.Retry)
	}
}

func TestLoad_ExpandsEnvVars(t *testing.T) {
	t.Setenv("MOJO_TEST_API_KEY", "key-12345")
	path := writeConfig(t, `
teams:
  - Engineering
notification:
  type: mailgun
  api_url: https://api.mailgun.net/v3/example.org/messages
  api_key: ${MOJO_TEST_API_KEY}
  from: mojo@example.org
  to: me@example.org
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Notification.APIKey != "key-12345" {
		t.Errorf("APIKey = %q, want expanded env var", cfg.Notification.APIKey)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err == nil {
		t.Fatal("Load: expected error for missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "teams: [broken")
	if _, err := Load(path); err == nil {
		t.Fatal("Load: expected error for invalid YAML")
	}
}

func TestLoad_NoTeams(t *testing.T) {
	path := writeConfig(t, `
listing_url: https://careers.example.org/listings
teams: []
`)
	if _, err := Load(path); err == nil {
		t.Fatal("Load: expected validation error when no team is configured")
	}
}

func TestLoad_MailgunRequiresCredentials(t *testing.T) {
	path := writeConfig(t, `
teams:
  - Engineering
notification:
  type: mailgun
  from: mojo@example.org
  to: me@example.org
`)
	if _, err := Load(path); err == nil {
		t.Fatal("Load: expected validation error for mailgun without api settings")
	}
}

func TestLoad_BadDuration(t *testing.T) {
	path := writeConfig(t, `
teams:
  - Engineering
http_timeout: soon
`)
	if _, err := Load(path); err == nil {
		t.Fatal("Load: expected error for unparseable duration")
	}
}
