/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ssargent/pkcore/pkg/logging"
)

// Config represents the pkcore configuration
type Config struct {
	BankDir  string   `yaml:"bank_dir"`
	Port     int      `yaml:"port"`
	Bind     string   `yaml:"bind"`
	Security Security `yaml:"security"`
	Logging  Logging  `yaml:"logging"`
	Tables   Tables   `yaml:"tables"`
	Transfer Transfer `yaml:"transfer"`
}

// Security contains security-related configuration
type Security struct {
	APIKey string `yaml:"api_key"`
	// MaxUploadSize bounds request bodies accepted by the API
	MaxUploadSize int `yaml:"max_upload_size"`
}

// Logging contains logging configuration
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Tables points at replacement data tables. Empty paths select the
// embedded data.
type Tables struct {
	PersonalPath string `yaml:"personal_path"`
}

// Transfer configures bulk conversion
type Transfer struct {
	Workers int `yaml:"workers"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		BankDir: "./bank",
		Port:    8080,
		Bind:    "127.0.0.1",
		Security: Security{
			APIKey:        "auto",
			MaxUploadSize: 1 << 20,
		},
		Logging: Logging{
			Level:  "info",
			Format: "text",
		},
		Transfer: Transfer{
			Workers: 4,
		},
	}
}

// Validate reports the first invalid setting
func (c *Config) Validate() error {
	if c.BankDir == "" {
		return errors.New("bank_dir must be set")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	switch logging.Format(c.Logging.Format) {
	case logging.FormatText, logging.FormatJSON, "":
	default:
		return fmt.Errorf("unknown log format %q", c.Logging.Format)
	}
	if c.Transfer.Workers < 0 {
		return fmt.Errorf("transfer workers must not be negative, got %d", c.Transfer.Workers)
	}
	if c.Security.MaxUploadSize < 0 {
		return fmt.Errorf("max_upload_size must not be negative, got %d", c.Security.MaxUploadSize)
	}
	return nil
}

// LoggingConfig converts the logging section for logging.New
func (c *Config) LoggingConfig() logging.Config {
	return logging.Config{Level: c.Logging.Level, Format: logging.Format(c.Logging.Format)}
}

// LoadConfig loads configuration from the specified path
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	// Validate path to prevent directory traversal
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

// SaveConfig saves the configuration to the specified path with secure permissions
func SaveConfig(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write with secure permissions (0600)
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GenerateSecureKey generates a cryptographically secure random key
func GenerateSecureKey(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate secure key: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// BootstrapConfig writes a new configuration with a generated API key
func BootstrapConfig(configPath string, bankDir string) (*Config, error) {
	config := DefaultConfig()
	if bankDir != "" {
		config.BankDir = bankDir
	}

	apiKey, err := GenerateSecureKey(32) // 256 bits
	if err != nil {
		return nil, fmt.Errorf("failed to generate API key: %w", err)
	}
	config.Security.APIKey = apiKey

	if err := SaveConfig(config, configPath); err != nil {
		return nil, fmt.Errorf("failed to save bootstrap config: %w", err)
	}

	return config, nil
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./pkcore.yaml"
	}

	// For Linux/macOS, use ~/.config/pkcore/config.yaml
	configDir := filepath.Join(homeDir, ".config", "pkcore")
	return filepath.Join(configDir, "config.yaml")
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
