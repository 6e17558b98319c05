package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config is loaded once at startup and not changed afterwards.
type Config struct {
	// VariableID is the game variable that mirrors the timer. 0 disables it.
	VariableID int `yaml:"variable_id"`
	// Format is "raw" (722) or "mmss" (1202).
	Format string `yaml:"format"`
	// AbortOnExpire aborts the current encounter when the countdown expires.
	AbortOnExpire bool `yaml:"abort_on_expire"`

	Database string `yaml:"database"`
	LogFile  string `yaml:"log_file"`
	LogLevel string `yaml:"log_level"`
}

func Default() Config {
	return Config{
		Format:   "raw",
		Database: "truetimer.db",
		LogFile:  "truetimer.log",
		LogLevel: "info",
	}
}

// Load reads the YAML file at path over the defaults, then applies
// TRUETIMER_* environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.VariableID = getEnvAsInt("TRUETIMER_VARIABLE_ID", cfg.VariableID)
	cfg.Format = getEnv("TRUETIMER_FORMAT", cfg.Format)
	cfg.AbortOnExpire = getEnvAsBool("TRUETIMER_ABORT_ON_EXPIRE", cfg.AbortOnExpire)
	cfg.Database = getEnv("TRUETIMER_DB", cfg.Database)
	cfg.LogFile = getEnv("TRUETIMER_LOG_FILE", cfg.LogFile)
	cfg.LogLevel = getEnv("TRUETIMER_LOG_LEVEL", cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.VariableID < 0 {
		return fmt.Errorf("%w: variable_id must not be negative, got %d", ErrInvalidConfig, c.VariableID)
	}
	if c.Database == "" {
		return fmt.Errorf("%w: database path is required", ErrInvalidConfig)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return b
		}
	}
	return defaultValue
}
