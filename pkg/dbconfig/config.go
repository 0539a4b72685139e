// Package dbconfig holds trackvault's on-disk configuration: the decoder
// tuning thresholds a user may want to override without recompiling.
package dbconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is trackvault's persisted configuration.
type Config struct {
	Decoder Decoder `yaml:"decoder"`
	Logging Logging `yaml:"logging"`
}

// Decoder holds the size caps, walk limits and foreign-key defaults that
// cmd/trackvault passes to catalog.Decode as catalog.Option values.
type Decoder struct {
	MaxInputBytes    int    `yaml:"max_input_bytes"`
	WarnInputBytes   int    `yaml:"warn_input_bytes"`
	MaxPagesPerTable int    `yaml:"max_pages_per_table"`
	MaxRowsPerPage   int    `yaml:"max_rows_per_page"`
	DefaultArtist    string `yaml:"default_artist"`
	DefaultAlbum     string `yaml:"default_album"`
	DefaultTitle     string `yaml:"default_title"`
}

// Logging contains logging configuration.
type Logging struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a default configuration matching the reference
// bounds from the decoder's own package-level defaults.
func DefaultConfig() *Config {
	return &Config{
		Decoder: Decoder{
			MaxInputBytes:    500 << 20,
			WarnInputBytes:   100 << 20,
			MaxPagesPerTable: 10000,
			MaxRowsPerPage:   2000,
			DefaultArtist:    "Unknown Artist",
			DefaultAlbum:     "Unknown Album",
			DefaultTitle:     "Unknown Title",
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from the specified path.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves the configuration to the specified path.
func SaveConfig(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetDefaultConfigPath returns the default configuration path for the
// current platform.
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./trackvault.yaml"
	}
	return filepath.Join(homeDir, ".config", "trackvault", "config.yaml")
}

// ConfigExists reports whether a configuration file exists at configPath.
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
