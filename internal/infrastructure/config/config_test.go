package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Server config
	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "0.0.0.0:8000", cfg.Addr())

	// Storage config
	assert.Equal(t, "projects", cfg.Storage.ProjectsDir)
	assert.Equal(t, ".project", cfg.Storage.ProjectExt)

	// Catalog falls back to embedded tables
	assert.Empty(t, cfg.Catalog.PackFormatFile)
	assert.Empty(t, cfg.Catalog.FileTypesFile)

	// Logging config
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)

	// Rate limit config
	assert.Equal(t, 100, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 200, cfg.RateLimit.Burst)
	assert.True(t, cfg.RateLimit.Enabled)

	assert.True(t, cfg.Metrics.Enabled)
	assert.NoError(t, cfg.Validate())
}

func TestLoadMatchesDefault(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"PORT":               "9000",
		"HOST":               "127.0.0.1",
		"PROJECTS_DIR":       "/srv/packs",
		"PROJECT_EXT":        ".pack",
		"PACK_FORMAT_FILE":   "/etc/packstudio/formats.toml",
		"FILE_TYPES_FILE":    "/etc/packstudio/types.yaml",
		"LOG_LEVEL":          "debug",
		"LOG_DEV":            "true",
		"RATE_LIMIT_RPS":     "500",
		"RATE_LIMIT_BURST":   "1000",
		"RATE_LIMIT_ENABLED": "false",
		"METRICS_ENABLED":    "false",
	}
	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, "/srv/packs", cfg.Storage.ProjectsDir)
	assert.Equal(t, ".pack", cfg.Storage.ProjectExt)
	assert.Equal(t, "/etc/packstudio/formats.toml", cfg.Catalog.PackFormatFile)
	assert.Equal(t, "/etc/packstudio/types.yaml", cfg.Catalog.FileTypesFile)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, 500, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 1000, cfg.RateLimit.Burst)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoadWithPartialEnvironmentVariables(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Verify overridden values
	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Logging.Level)

	// Verify default values still apply
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "projects", cfg.Storage.ProjectsDir)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "extension without dot",
			env:  map[string]string{"PROJECT_EXT": "project"},
		},
		{
			name: "zero rate",
			env:  map[string]string{"RATE_LIMIT_RPS": "0"},
		},
		{
			name: "unparseable bool",
			env:  map[string]string{"METRICS_ENABLED": "maybe"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			_, err := Load()
			assert.Error(t, err)

			// Fallback still gives a usable config
			assert.Equal(t, Default(), LoadOrDefault())
		})
	}
}

func TestZeroRateAllowedWhenDisabled(t *testing.T) {
	t.Setenv("RATE_LIMIT_RPS", "0")
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	_, err := Load()
	assert.NoError(t, err)
}
