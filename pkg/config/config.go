// Package config provides configuration management for the RNE client.
// It loads configuration from environment variables and .env files.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultBaseURL is the production endpoint of the Registre National des
// Entreprises API.
const DefaultBaseURL = "https://registre-national-entreprises.inpi.fr/api"

// DefaultTimeout is the HTTP request timeout applied when RNE_TIMEOUT_SECONDS
// is not set.
const DefaultTimeout = 30 * time.Second

// Error reports missing or invalid configuration. It is surfaced before any
// network call is made.
type Error struct {
	Missing []string
}

func (e *Error) Error() string {
	return fmt.Sprintf("missing required configuration: %v (check your .env file or environment variables)", e.Missing)
}

// INPIConfig holds credentials and endpoint settings for the RNE API.
type INPIConfig struct {
	Username string
	Password string
	BaseURL  string
	Timeout  time.Duration
}

// HistoryConfig holds settings for the local fetch-history database.
type HistoryConfig struct {
	DBPath       string
	DownloadsDir string
}

// Config represents the application configuration.
type Config struct {
	INPI    INPIConfig
	History HistoryConfig
	Debug   bool
}

// Load loads configuration from environment variables.
// It automatically loads a .env file from the current directory if available.
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

	timeout, err := parseSecondsEnv("RNE_TIMEOUT_SECONDS", DefaultTimeout)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		INPI: INPIConfig{
			Username: os.Getenv("INPI_USERNAME"),
			Password: os.Getenv("INPI_PASSWORD"),
			BaseURL:  getEnvOrDefault("RNE_BASE_URL", DefaultBaseURL),
			Timeout:  timeout,
		},
		History: HistoryConfig{
			DBPath:       os.Getenv("RNE_HISTORY_DB_PATH"),
			DownloadsDir: os.Getenv("RNE_DOWNLOADS_DIR"),
		},
		Debug: os.Getenv("DEBUG") == "true",
	}

	return cfg, nil
}

// Validate checks that the credentials required for any API call are set.
// It returns a *Error listing the missing variables.
func (c *Config) Validate() error {
	var missing []string

	if c.INPI.Username == "" {
		missing = append(missing, "INPI_USERNAME")
	}
	if c.INPI.Password == "" {
		missing = append(missing, "INPI_PASSWORD")
	}

	if len(missing) > 0 {
		return &Error{Missing: missing}
	}
	return nil
}

// getEnvOrDefault returns the value of the environment variable or a default
// value if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseSecondsEnv parses a duration in whole seconds from an environment
// variable. Returns defaultValue if the variable is not set.
func parseSecondsEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	seconds, err := strconv.Atoi(value)
	if err != nil || seconds <= 0 {
		return 0, fmt.Errorf("invalid integer value for %s: %s", key, value)
	}

	return time.Duration(seconds) * time.Second, nil
}
