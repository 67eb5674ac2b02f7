package config

import (
	"os"
	"strconv"

	"gohare/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Input  InputConfig `validate:"required"`
	Output OutputConfig
	Server ServerConfig
}

// InputConfig holds data ingestion settings
type InputConfig struct {
	File    string `validate:"required"`
	Lenient bool
}

// OutputConfig holds report output settings
type OutputConfig struct {
	Dir       string
	ExcelFile string
}

// ServerConfig holds serve-mode settings
type ServerConfig struct {
	Port string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Input: InputConfig{
			File:    getEnvOrDefault("HARE_INPUT", ""),
			Lenient: getEnvBoolOrDefault("HARE_LENIENT", false),
		},
		Output: OutputConfig{
			Dir:       getEnvOrDefault("HARE_OUT_DIR", "out"),
			ExcelFile: getEnvOrDefault("HARE_XLSX", ""),
		},
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// The input file may still arrive via CLI flag, so it is validated at
// command time rather than here.
func validateConfig(config *Config) error {
	if config.Output.Dir == "" {
		return errors.ConfigInvalid("output directory is required")
	}
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
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

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
