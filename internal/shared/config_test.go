package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		cfg := DefaultConfig()
		if cfg.Backend.BaseURL != "http://localhost:8080" {
			t.Errorf("unexpected backend base URL: %s", cfg.Backend.BaseURL)
		}
		if cfg.Database.Path != "replaylist.db" {
			t.Errorf("unexpected database path: %s", cfg.Database.Path)
		}
		if cfg.Handshake.RetryDelayMS != 100 {
			t.Errorf("unexpected retry delay: %d", cfg.Handshake.RetryDelayMS)
		}
		if cfg.Transfer.Workers != 0 || cfg.Transfer.RateLimit != 0 {
			t.Errorf("expected unbounded fan-out by default: %+v", cfg.Transfer)
		}
		if _, ok := cfg.OAuth["spotify"]; !ok {
			t.Error("expected spotify oauth section")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := `
[backend]
base_url = "http://example.test:9000"

[handshake]
retry_delay_ms = 250

[oauth.spotify]
client_id = "abc"
auth_url = "https://accounts.spotify.com/authorize"
redirect_uri = "http://example.test/cb"
scopes = ["playlist-read-private"]
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Backend.BaseURL != "http://example.test:9000" {
			t.Errorf("unexpected base URL: %s", cfg.Backend.BaseURL)
		}
		if cfg.Handshake.RetryDelayMS != 250 {
			t.Errorf("unexpected retry delay: %d", cfg.Handshake.RetryDelayMS)
		}
		if cfg.OAuth["spotify"].ClientID != "abc" {
			t.Errorf("unexpected client id: %s", cfg.OAuth["spotify"].ClientID)
		}
	})

	t.Run("LoadConfig Missing File", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); !errors.Is(err, ErrMissingConfig) {
			t.Errorf("expected ErrMissingConfig, got %v", err)
		}
	})

	t.Run("LoadConfig Invalid TOML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("[backend\nbase_url ="), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadConfig(path); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := CreateConfigFile(path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("written config does not parse: %v", err)
		}
		if cfg.Backend.BaseURL == "" {
			t.Error("expected backend section in written config")
		}

		if err := CreateConfigFile(path); err == nil {
			t.Error("expected error when config already exists")
		}
	})
}
