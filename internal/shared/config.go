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
	Credentials CredentialsConfig `toml:"credentials"`
	Replay      ReplayConfig      `toml:"replay"`
	Auth        AuthConfig        `toml:"auth"`
}

// CredentialsConfig contains MusicKit and catalog API settings.
type CredentialsConfig struct {
	MusicKit MusicKitConfig `toml:"musickit"`
	Catalog  CatalogConfig  `toml:"catalog"`
}

// MusicKitConfig contains the developer token and bridge connection settings.
type MusicKitConfig struct {
	DeveloperToken string `toml:"developer_token"`
	BridgeURL      string `toml:"bridge_url"`
	AppName        string `toml:"app_name"`
	AppBuild       string `toml:"app_build"`
}

// CatalogConfig contains Apple Music API settings.
type CatalogConfig struct {
	BaseURL    string `toml:"base_url"`
	Storefront string `toml:"storefront"`
}

// ReplayConfig contains pagination and pacing settings for history aggregation.
type ReplayConfig struct {
	PageSize  int     `toml:"page_size"`
	MaxItems  int     `toml:"max_items"`
	RateLimit float64 `toml:"rate_limit"`
}

// AuthConfig contains tunables for the authorization recovery path and the consent callback server.
type AuthConfig struct {
	RecoveryDelayMS int    `toml:"recovery_delay_ms"`
	RecoveryPolls   int    `toml:"recovery_polls"`
	CallbackHost    string `toml:"callback_host"`
	CallbackPort    int    `toml:"callback_port"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
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
	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	// Write the embedded example config to the file
	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
