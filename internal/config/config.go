package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	AuthBasic  = "basic"
	AuthBearer = "bearer"

	StoreNone     = "none"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

// Config holds the application configuration
type Config struct {
	// GitHub
	APIBaseURL  string
	AuthScheme  string // "basic" or "bearer"
	HTTPTimeout time.Duration

	// Output file naming
	Year     string
	Provider string

	// Logging
	Debug bool

	// Snapshot store
	StoreType   string // "none", "sqlite" or "postgres"
	SQLitePath  string
	PostgresURL string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	return LoadWithEnv(os.Getenv)
}

// LoadWithEnv builds the configuration from the given lookup function.
func LoadWithEnv(getenv func(string) string) (*Config, error) {
	get := func(key, defaultValue string) string {
		if value := getenv(key); value != "" {
			return value
		}
		return defaultValue
	}

	timeout, err := time.ParseDuration(get("GHSTATS_HTTP_TIMEOUT", "30s"))
	if err != nil {
		return nil, &ConfigError{Field: "GHSTATS_HTTP_TIMEOUT", Message: "must be a Go duration such as 30s"}
	}

	return &Config{
		APIBaseURL:  get("GHSTATS_API_URL", "https://api.github.com/"),
		AuthScheme:  strings.ToLower(get("GHSTATS_AUTH_SCHEME", AuthBasic)),
		HTTPTimeout: timeout,
		Year:        get("GHSTATS_YEAR", "2024"),
		Provider:    get("GHSTATS_PROVIDER", "github"),
		Debug:       get("GHSTATS_DEBUG", "false") == "true",
		StoreType:   strings.ToLower(get("GHSTATS_STORE", StoreNone)),
		SQLitePath:  get("GHSTATS_SQLITE_PATH", "./ghstats.db"),
		PostgresURL: get("GHSTATS_POSTGRES_URL", ""),
	}, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.AuthScheme != AuthBasic && c.AuthScheme != AuthBearer {
		return &ConfigError{Field: "GHSTATS_AUTH_SCHEME", Message: "must be 'basic' or 'bearer'"}
	}
	if c.HTTPTimeout < 0 {
		return &ConfigError{Field: "GHSTATS_HTTP_TIMEOUT", Message: "must not be negative"}
	}
	if _, err := strconv.Atoi(c.Year); err != nil {
		return &ConfigError{Field: "GHSTATS_YEAR", Message: "must be a number"}
	}
	if strings.TrimSpace(c.Provider) == "" {
		return &ConfigError{Field: "GHSTATS_PROVIDER", Message: "must not be empty"}
	}
	switch c.StoreType {
	case StoreNone, StoreSQLite:
	case StorePostgres:
		if c.PostgresURL == "" {
			return &ConfigError{Field: "GHSTATS_POSTGRES_URL", Message: "PostgreSQL URL is required when GHSTATS_STORE is 'postgres'"}
		}
	default:
		return &ConfigError{Field: "GHSTATS_STORE", Message: "must be 'none', 'sqlite' or 'postgres'"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
