package config

import (
	"os"
	"strconv"

	"wafersight/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Paths PathConfig
	Logs  LogConfig
}

// PathConfig holds file system paths
type PathConfig struct {
	Input string // CSV or xlsx input file
}

// LogConfig holds error-log retention settings
type LogConfig struct {
	Dir           string
	RetentionDays int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Paths: PathConfig{
			Input: getEnvOrDefault("WAFERSIGHT_INPUT", ""),
		},
		Logs: LogConfig{
			Dir:           getEnvOrDefault("ERROR_LOG_DIR", "logs"),
			RetentionDays: getEnvIntOrDefault("ERROR_LOG_RETENTION_DAYS", 30),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Logs.RetentionDays <= 0 {
		return errors.ConfigInvalid("ERROR_LOG_RETENTION_DAYS must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
