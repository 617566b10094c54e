package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Discord configuration
	Token       string
	Prefix      string
	DeveloperID string

	// HTTP status API
	Port int

	// Storage
	StorageType string // "memory" or "sqlite"
	DataDir     string
	StatusFile  string

	// Optional command-usage audit sink
	ElasticsearchURL string

	// Environment
	Environment string // "development" or "production"
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// Only return error if file exists but couldn't be loaded
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	port, err := strconv.Atoi(getEnvWithDefault("PORT", "3000"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}

	dataDir := getEnvWithDefault("DATA_DIR", filepath.Join(wd, "data"))

	cfg := &Config{
		Token:            os.Getenv("DISCORD_TOKEN"),
		Prefix:           getEnvWithDefault("PREFIX", "!"),
		DeveloperID:      os.Getenv("DEVELOPER_ID"),
		Port:             port,
		StorageType:      getEnvWithDefault("STORAGE_TYPE", "memory"),
		DataDir:          dataDir,
		StatusFile:       getEnvWithDefault("STATUS_FILE", filepath.Join(dataDir, "bot-status.json")),
		ElasticsearchURL: os.Getenv("ELASTICSEARCH_URL"),
		Environment:      getEnvWithDefault("ENVIRONMENT", "development"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// Create data directory if it doesn't exist
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// validate checks if all required configuration is present
func (c *Config) validate() error {
	if c.Token == "" {
		return fmt.Errorf("DISCORD_TOKEN is required")
	}
	if c.Prefix == "" {
		return fmt.Errorf("PREFIX must not be empty")
	}
	if c.StorageType != "memory" && c.StorageType != "sqlite" {
		return fmt.Errorf("STORAGE_TYPE must be \"memory\" or \"sqlite\", got %q", c.StorageType)
	}
	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// getEnvWithDefault returns environment variable value or default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
