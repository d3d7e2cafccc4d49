package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Catalog   CatalogConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
	Metrics   MetricsConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// StorageConfig locates the managed project directory.
type StorageConfig struct {
	ProjectsDir string `envconfig:"PROJECTS_DIR" default:"projects"`
	ProjectExt  string `envconfig:"PROJECT_EXT" default:".project"`
}

// CatalogConfig points at optional table overrides. Empty means the
// embedded defaults.
type CatalogConfig struct {
	PackFormatFile string `envconfig:"PACK_FORMAT_FILE"`
	FileTypesFile  string `envconfig:"FILE_TYPES_FILE"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// MetricsConfig toggles the /metrics endpoint.
type MetricsConfig struct {
	Enabled bool `envconfig:"METRICS_ENABLED" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	if c.Storage.ProjectsDir == "" {
		return fmt.Errorf("invalid config: PROJECTS_DIR is empty")
	}
	if len(c.Storage.ProjectExt) < 2 || c.Storage.ProjectExt[0] != '.' {
		return fmt.Errorf("invalid config: PROJECT_EXT %q must start with a dot", c.Storage.ProjectExt)
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("invalid config: rate limit must be positive")
	}
	return nil
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "0.0.0.0",
		},
		Storage: StorageConfig{
			ProjectsDir: "projects",
			ProjectExt:  ".project",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}
