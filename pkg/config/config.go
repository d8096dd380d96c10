package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/felixgeelhaar/taskflow/internal/shared/infrastructure/security"
)

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv    string
	LogLevel  string
	LogFormat string

	// LogLevelSet records whether LOG_LEVEL or [app] log_level was given.
	LogLevelSet bool

	// Storage
	StorageURL string
	StorageKey string

	// Circuit breaker around remote storage
	BreakerEnabled  bool
	BreakerFailures int
	BreakerTimeout  time.Duration

	// RabbitMQ
	RabbitMQURL string

	// MCP
	MCPAddr      string
	MCPAuthToken string
}

// fileConfig is the TOML representation.
type fileConfig struct {
	App struct {
		Env       string `toml:"env"`
		LogLevel  string `toml:"log_level"`
		LogFormat string `toml:"log_format"`
	} `toml:"app"`
	Storage struct {
		URL string `toml:"url"`
		Key string `toml:"key"`
	} `toml:"storage"`
	Breaker struct {
		Enabled  *bool  `toml:"enabled"`
		Failures int    `toml:"failures"`
		Timeout  string `toml:"timeout"`
	} `toml:"breaker"`
	Events struct {
		RabbitMQURL string `toml:"rabbitmq_url"`
	} `toml:"events"`
	MCP struct {
		Addr      string `toml:"addr"`
		AuthToken string `toml:"auth_token"`
	} `toml:"mcp"`
}

// Load loads configuration from an optional TOML file and environment variables.
// Environment variables take precedence over file values.
func Load(path string) (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	var fc fileConfig
	if path != "" {
		cleanPath, err := security.ValidateFilePath(path)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		if _, err := toml.DecodeFile(cleanPath, &fc); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	breakerTimeout := 30 * time.Second
	if fc.Breaker.Timeout != "" {
		d, err := time.ParseDuration(fc.Breaker.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid breaker timeout %q: %w", fc.Breaker.Timeout, err)
		}
		breakerTimeout = d
	}
	breakerEnabled := true
	if fc.Breaker.Enabled != nil {
		breakerEnabled = *fc.Breaker.Enabled
	}

	cfg := &Config{
		AppEnv:    getEnv("APP_ENV", or(fc.App.Env, "development")),
		LogLevel:  getEnv("LOG_LEVEL", or(fc.App.LogLevel, "info")),
		LogFormat: getEnv("LOG_FORMAT", or(fc.App.LogFormat, "text")),

		LogLevelSet: os.Getenv("LOG_LEVEL") != "" || fc.App.LogLevel != "",

		StorageURL: getEnv("TASKFLOW_STORAGE_URL", fc.Storage.URL),
		StorageKey: getEnv("TASKFLOW_STORAGE_KEY", or(fc.Storage.Key, "taskflow-tasks")),

		BreakerEnabled:  getBoolEnv("TASKFLOW_BREAKER_ENABLED", breakerEnabled),
		BreakerFailures: getIntEnv("TASKFLOW_BREAKER_FAILURES", orInt(fc.Breaker.Failures, 3)),
		BreakerTimeout:  getDurationEnv("TASKFLOW_BREAKER_TIMEOUT", breakerTimeout),

		RabbitMQURL: getEnv("RABBITMQ_URL", fc.Events.RabbitMQURL),

		MCPAddr:      getEnv("MCP_ADDR", or(fc.MCP.Addr, "127.0.0.1:8082")),
		MCPAuthToken: getEnv("MCP_AUTH_TOKEN", fc.MCP.AuthToken),
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// ServerLogLevel is the level for long-running servers: an explicit level wins,
// otherwise debug in development and info elsewhere.
func (c *Config) ServerLogLevel() string {
	if c.LogLevelSet && c.LogLevel != "" {
		return c.LogLevel
	}
	if c.IsDevelopment() {
		return "debug"
	}
	return "info"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func or(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

func orInt(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
