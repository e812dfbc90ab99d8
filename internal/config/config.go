// Package config provides configuration management for the report tooling.
package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/eklokova/connect-reports/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// API contains vendor platform API configuration
	API APIConfig `json:"api"`

	// Forex contains exchange-rate service configuration
	Forex ForexConfig `json:"forex"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// APIConfig contains vendor platform API settings
type APIConfig struct {
	// Endpoint is the base URL of the platform public API
	Endpoint string `json:"endpoint"`

	// Token is the bearer token passed on every request
	Token string `json:"token,omitempty"`

	// TimeoutSeconds is the per-request timeout
	TimeoutSeconds int `json:"timeout_seconds"`

	// PageSize is the limit used when iterating collections
	PageSize int `json:"page_size"`
}

// Timeout returns the request timeout as a duration
func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ForexConfig contains exchange-rate service settings
type ForexConfig struct {
	// URL is the latest-rates endpoint
	URL string `json:"url"`

	// BaseCurrency is the currency all financials are converted to
	BaseCurrency string `json:"base_currency"`

	// TimeoutSeconds is the rate fetch timeout
	TimeoutSeconds int `json:"timeout_seconds"`
}

// Timeout returns the fetch timeout as a duration
func (c ForexConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// Directory is where report files are written
	Directory string `json:"directory"`

	// Delimiter is the CSV field delimiter
	Delimiter string `json:"delimiter"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		API: APIConfig{
			Endpoint:       "https://api.connect.cloudblue.com/public/v1",
			TimeoutSeconds: 30,
			PageSize:       100,
		},
		Forex: ForexConfig{
			URL:            "https://theforexapi.com/api/latest",
			BaseCurrency:   "USD",
			TimeoutSeconds: 10,
		},
		Output: OutputConfig{
			Directory: ".",
			Delimiter: ",",
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file, falling back to defaults when the
// file does not exist. Environment variables from a .env file (if present)
// override the API token and endpoint.
func Load(path string) (*Config, error) {
	config := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	_ = godotenv.Load()
	if token := os.Getenv("CONNECT_API_TOKEN"); token != "" {
		config.API.Token = token
	}
	if endpoint := os.Getenv("CONNECT_API_ENDPOINT"); endpoint != "" {
		config.API.Endpoint = endpoint
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
