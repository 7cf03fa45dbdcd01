// Package config handles loading and saving application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	API APIConfig `yaml:"api"`
	UI  UIConfig  `yaml:"ui"`
}

// APIConfig holds backend and identity settings.
type APIConfig struct {
	// ProjectID and AppID locate this application's document namespace.
	ProjectID string `yaml:"project_id"`
	AppID     string `yaml:"app_id"`

	// Key authenticates sign-in requests against the identity provider.
	Key string `yaml:"key"`

	// CustomToken, when set, is used instead of anonymous sign-in.
	CustomToken string `yaml:"custom_token,omitempty"`

	// BaseURL and AuthURL override the hosted endpoints (emulators, tests).
	BaseURL string `yaml:"base_url,omitempty"`
	AuthURL string `yaml:"auth_url,omitempty"`

	// PollInterval is how often live queries re-run.
	PollInterval time.Duration `yaml:"poll_interval,omitempty"`
}

// UIConfig holds UI-related settings.
type UIConfig struct {
	// Theme is "light" or "dark"; persisted when toggled in the app.
	Theme string `yaml:"theme"`

	// Notifications enables desktop notifications for due tasks.
	Notifications bool `yaml:"notifications"`
}

// DefaultConfig returns a new Config with default values.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			AppID:        "default-app-id",
			PollInterval: 5 * time.Second,
		},
		UI: UIConfig{
			Theme:         "light",
			Notifications: true,
		},
	}
}

// ConfigDir returns the path to the configuration directory.
// Creates the directory if it doesn't exist.
func ConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".config", "myday")
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// ConfigPath returns the full path to the configuration file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the configuration from the config file.
// If the file doesn't exist, returns a default configuration.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the configuration from an explicit path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the config file.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the configuration to an explicit path.
func SaveTo(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	// Restricted permissions: the file holds the API key.
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// HasCredentials returns true if the config can reach the backend.
func (c *Config) HasCredentials() bool {
	return c.API.ProjectID != "" && c.API.Key != ""
}

// DarkMode returns true when the configured theme is dark.
func (c *Config) DarkMode() bool {
	return c.UI.Theme == "dark"
}

// ToggleTheme flips between light and dark.
func (c *Config) ToggleTheme() {
	if c.DarkMode() {
		c.UI.Theme = "light"
	} else {
		c.UI.Theme = "dark"
	}
}
