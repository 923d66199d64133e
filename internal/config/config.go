package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application's configuration.
type Config struct {
	Database struct {
		URL string `yaml:"url"`
	} `yaml:"database"`
	Reputation struct {
		URL            string `yaml:"url"`
		APIKey         string `yaml:"api_key"`
		TimeoutSeconds int64  `yaml:"timeout_seconds"`
	} `yaml:"reputation"`
	Scan struct {
		TimeoutSeconds int64 `yaml:"timeout_seconds"`
	} `yaml:"scan"`
	Auth struct {
		JWTSecret string `yaml:"jwt_secret"`
	} `yaml:"auth"`
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
}

// LoadConfig reads configuration from the specified YAML file. Secrets may
// be overridden through the environment so they stay out of the file.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	if v := os.Getenv("DATABASE_URL"); v != "" {
		config.Database.URL = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		config.Auth.JWTSecret = v
	}
	if v := os.Getenv("REPUTATION_API_KEY"); v != "" {
		config.Reputation.APIKey = v
	}

	if config.Reputation.TimeoutSeconds <= 0 {
		config.Reputation.TimeoutSeconds = 10
	}
	if config.Scan.TimeoutSeconds <= 0 {
		config.Scan.TimeoutSeconds = 15
	}

	return config, nil
}

// ReputationTimeout is the per-request timeout for the reputation client.
func (c *Config) ReputationTimeout() time.Duration {
	return time.Duration(c.Reputation.TimeoutSeconds) * time.Second
}

// ScanTimeout bounds a whole scan, lookups included.
func (c *Config) ScanTimeout() time.Duration {
	return time.Duration(c.Scan.TimeoutSeconds) * time.Second
}
