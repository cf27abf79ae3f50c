package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/platinummonkey/feedgate/pkg/observability"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Auth      AuthConfig
	Feed      FeedConfig
	RateLimit RateLimitConfig

	LogLevel       observability.LogLevel
	MetricsEnabled bool
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// AuthConfig holds the authorization subsystem configuration.
type AuthConfig struct {
	// AccountsFile is the YAML account list.
	AccountsFile string
	// FeedTokenSecret signs and verifies feed capability tokens.
	// Rotating it invalidates every previously issued token; tokens
	// carry no key version.
	FeedTokenSecret string
	// Production enables startup policy checks (minimum credential
	// length) that are fatal when violated.
	Production bool
	// WatchAccounts enables hot-reload of the accounts file.
	WatchAccounts bool
}

// FeedConfig holds feed engine and cache configuration.
type FeedConfig struct {
	// EngineURL is the external feed-scraping engine endpoint.
	EngineURL     string
	EngineTimeout time.Duration
	CacheSize     int
	CacheTTL      time.Duration
}

// RateLimitConfig holds rate limiter settings.
type RateLimitConfig struct {
	Enabled           bool
	RequestsPerMinute int
	BurstSize         int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("FEEDGATE_HOST", "0.0.0.0"),
			Port:            getEnv("FEEDGATE_PORT", "8080"),
			ReadTimeout:     getEnvDuration("FEEDGATE_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvDuration("FEEDGATE_WRITE_TIMEOUT", 60*time.Second),
			IdleTimeout:     getEnvDuration("FEEDGATE_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvDuration("FEEDGATE_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Auth: AuthConfig{
			AccountsFile:    getEnv("FEEDGATE_ACCOUNTS_FILE", "accounts.yml"),
			FeedTokenSecret: getEnv("FEEDGATE_FEED_TOKEN_SECRET", ""),
			Production:      getEnvBool("FEEDGATE_PRODUCTION", false),
			WatchAccounts:   getEnvBool("FEEDGATE_WATCH_ACCOUNTS", true),
		},
		Feed: FeedConfig{
			EngineURL:     getEnv("FEEDGATE_ENGINE_URL", "http://localhost:3000/feeds"),
			EngineTimeout: getEnvDuration("FEEDGATE_ENGINE_TIMEOUT", 30*time.Second),
			CacheSize:     getEnvInt("FEEDGATE_CACHE_SIZE", 256),
			CacheTTL:      getEnvDuration("FEEDGATE_CACHE_TTL", 10*time.Minute),
		},
		RateLimit: RateLimitConfig{
			Enabled:           getEnvBool("FEEDGATE_RATELIMIT_ENABLED", true),
			RequestsPerMinute: getEnvInt("FEEDGATE_RATELIMIT_RPM", 100),
			BurstSize:         getEnvInt("FEEDGATE_RATELIMIT_BURST", 10),
		},
		LogLevel:       observability.ParseLogLevel(getEnv("FEEDGATE_LOG_LEVEL", "info")),
		MetricsEnabled: getEnvBool("FEEDGATE_METRICS_ENABLED", true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if c.Auth.AccountsFile == "" {
		return fmt.Errorf("accounts file is required")
	}
	if c.Auth.FeedTokenSecret == "" {
		return fmt.Errorf("FEEDGATE_FEED_TOKEN_SECRET is required")
	}
	if c.Auth.Production && len(c.Auth.FeedTokenSecret) < 32 {
		return fmt.Errorf("feed token secret must be at least 32 bytes in production")
	}
	if c.Feed.EngineURL == "" {
		return fmt.Errorf("feed engine URL is required")
	}
	if c.RateLimit.Enabled && c.RateLimit.RequestsPerMinute <= 0 {
		return fmt.Errorf("rate limit requests per minute must be positive")
	}
	return nil
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
