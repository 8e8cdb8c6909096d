// Package config loads and validates application configuration.
//
// Values are layered with koanf, later layers winning:
//
//  1. built-in defaults
//  2. an optional YAML file named by CONFIG_PATH
//  3. environment variables (PORT, DATABASE_URL, ...)
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar names the optional YAML config file.
const ConfigPathEnvVar = "CONFIG_PATH"

// Config holds all configuration values for the API server.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string `koanf:"port"`

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string `koanf:"database_url"`

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string `koanf:"cors_origins"`

	// APISecret is the shared bearer token required on /api routes. Required.
	APISecret string `koanf:"api_secret"`

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`

	// RateLimitRequests per RateLimitWindow are allowed per client IP.
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`

	// DefaultPageSize is the list limit used when a client sends none.
	DefaultPageSize int `koanf:"default_page_size"`
}

func defaultConfig() Config {
	return Config{
		Port:              "8080",
		LogLevel:          "info",
		CORSOrigins:       []string{"http://localhost:5173"},
		MaxBodyBytes:      1 << 20,
		RateLimitRequests: 100,
		RateLimitWindow:   time.Minute,
		DefaultPageSize:   20,
	}
}

// envKeys maps recognised environment variables to config paths.
var envKeys = map[string]string{
	"PORT":                "port",
	"DATABASE_URL":        "database_url",
	"LOG_LEVEL":           "log_level",
	"CORS_ORIGINS":        "cors_origins",
	"API_SECRET":          "api_secret",
	"MAX_BODY_BYTES":      "max_body_bytes",
	"RATE_LIMIT_REQUESTS": "rate_limit_requests",
	"RATE_LIMIT_WINDOW":   "rate_limit_window",
	"DEFAULT_PAGE_SIZE":   "default_page_size",
}

// Load builds a Config from defaults, the optional file, and the environment.
// Returns an error listing any required values that are not set.
func Load() (Config, error) {
	cfg, err := load()
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadDatabaseURL resolves only DATABASE_URL through the same layers, for
// commands such as migrate that never serve HTTP.
func LoadDatabaseURL() (string, error) {
	cfg, err := load()
	if err != nil {
		return "", err
	}
	if cfg.DatabaseURL == "" {
		return "", fmt.Errorf("required environment variables not set: DATABASE_URL")
	}
	return cfg.DatabaseURL, nil
}

func load() (Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("config: load defaults: %w", err)
	}

	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("config: load file %s: %w", path, err)
		}
	}

	// Empty variables are skipped so they fall back to the layers below.
	envProvider := env.ProviderWithValue("", ".", func(key, value string) (string, any) {
		path, ok := envKeys[key]
		if !ok || strings.TrimSpace(value) == "" {
			return "", nil
		}
		if path == "cors_origins" {
			return path, splitCSV(value)
		}
		return path, value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return Config{}, fmt.Errorf("config: load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	return cfg, nil
}

// Validate reports missing required values and out-of-range settings.
func (c Config) Validate() error {
	var missing []string
	if c.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.APISecret == "" {
		missing = append(missing, "API_SECRET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: invalid LOG_LEVEL %q", c.LogLevel)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("config: MAX_BODY_BYTES must be positive")
	}
	if c.RateLimitRequests <= 0 || c.RateLimitWindow <= 0 {
		return fmt.Errorf("config: RATE_LIMIT_REQUESTS and RATE_LIMIT_WINDOW must be positive")
	}
	if c.DefaultPageSize <= 0 {
		return fmt.Errorf("config: DEFAULT_PAGE_SIZE must be positive")
	}
	return nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
