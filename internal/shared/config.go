package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Backend   BackendConfig          `toml:"backend"`
	Database  DatabaseConfig         `toml:"database"`
	Handshake HandshakeConfig        `toml:"handshake"`
	Transfer  TransferConfig         `toml:"transfer"`
	OAuth     map[string]OAuthConfig `toml:"oauth"`
}

// BackendConfig points the client at the replaylist backend origin.
type BackendConfig struct {
	BaseURL string `toml:"base_url"`
}

// DatabaseConfig contains settings for the local snapshot cache.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// HandshakeConfig tunes the Apple native-bridge token handshake.
type HandshakeConfig struct {
	RetryDelayMS int `toml:"retry_delay_ms"`
}

// TransferConfig caps the transfer fan-out. Zero values preserve the
// default contract: every request issued immediately.
type TransferConfig struct {
	Workers   int     `toml:"workers"`
	RateLimit float64 `toml:"rate_limit"`
}

// OAuthConfig contains one provider's authorize-URL parameters, keyed by
// wire key in the [oauth] table.
type OAuthConfig struct {
	ClientID    string   `toml:"client_id"`
	AuthURL     string   `toml:"auth_url"`
	RedirectURI string   `toml:"redirect_uri"`
	Scopes      []string `toml:"scopes"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingConfig, err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
