// Package config provides configuration management for roman-calc.
// It loads configuration from environment variables and .env files.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config represents the application configuration.
type Config struct {
	Calculator CalculatorConfig
	Storage    StorageConfig
	Server     ServerConfig
	Batch      BatchConfig
	Debug      bool `env:"DEBUG"`
}

// CalculatorConfig represents numeral arithmetic limits.
type CalculatorConfig struct {
	MaxLength int `env:"ROMAN_MAX_NUMERAL_LENGTH" envDefault:"5000"`
}

// StorageConfig represents history and cache storage.
type StorageConfig struct {
	Root      string `env:"ROMAN_DATA_ROOT" envDefault:"./.roman"`
	DBPath    string `env:"ROMAN_DB_PATH"`
	CachePath string `env:"ROMAN_CACHE_PATH"`
	History   bool   `env:"ROMAN_HISTORY" envDefault:"true"`
	Cache     bool   `env:"ROMAN_CACHE" envDefault:"false"`
}

// ServerConfig represents the HTTP API configuration.
type ServerConfig struct {
	Addr string `env:"ROMAN_ADDR" envDefault:":8080"`
}

// BatchConfig represents batch evaluation settings.
type BatchConfig struct {
	Workers int `env:"ROMAN_BATCH_WORKERS" envDefault:"4"`
}

// Load loads configuration from environment variables.
// It automatically loads .env file from the current directory if available.
// You can optionally specify a custom .env file path.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		// Try to load .env from current directory (ignore error if not found)
		_ = godotenv.Load()
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration.
// It checks if all required fields are set to usable values.
func (c *Config) Validate(required ...[]string) error {
	var missing []string

	for _, path := range required {
		if len(path) < 2 {
			continue
		}

		ok := true
		switch path[0] {
		case "calculator":
			switch path[1] {
			case "maxLength":
				ok = c.Calculator.MaxLength > 0
			}
		case "storage":
			switch path[1] {
			case "root":
				ok = c.Storage.Root != ""
			}
		case "server":
			switch path[1] {
			case "addr":
				ok = c.Server.Addr != ""
			}
		case "batch":
			switch path[1] {
			case "workers":
				ok = c.Batch.Workers > 0
			}
		}

		if !ok {
			missing = append(missing, joinPath(path))
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing or invalid configuration: %v\nPlease check your .env file or environment variables", missing)
	}

	return nil
}

// joinPath joins a path slice into a dot-separated string.
func joinPath(path []string) string {
	result := ""
	for i, p := range path {
		if i > 0 {
			result += "."
		}
		result += p
	}
	return result
}
