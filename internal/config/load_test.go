package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	// t.Setenv is incompatible with t.Parallel
	t.Setenv("DB_PASSWORD", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "postgres", cfg.Database.User)
	assert.Equal(t, "task_manager", cfg.Database.Name)
	assert.Equal(t, "s3cret", cfg.Database.Password)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "tasks")
	t.Setenv("DB_PASSWORD", "s3cret")
	t.Setenv("DB_NAME", "tasks_prod")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "tasks", cfg.Database.User)
	assert.Equal(t, "tasks_prod", cfg.Database.Name)
}

func TestLoadRequiresPassword(t *testing.T) {
	// No DB_PASSWORD in the environment and no default for it
	t.Setenv("DB_PASSWORD", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestLoadRejectsBadLogLevel(t *testing.T) {
	t.Setenv("DB_PASSWORD", "s3cret")
	t.Setenv("LOG_LEVEL", "verbose")

	_, err := Load()
	require.Error(t, err)
}

func TestDatabaseURL(t *testing.T) {
	t.Parallel()

	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "p@ss/word",
		Name:     "task_manager",
	}

	url := cfg.URL()
	assert.True(t, strings.HasPrefix(url, "postgres://"), "unexpected scheme: %s", url)
	assert.Contains(t, url, "localhost:5432")
	assert.Contains(t, url, "task_manager")
	// The raw password must be escaped, never embedded verbatim
	assert.NotContains(t, url, "p@ss/word")
}
