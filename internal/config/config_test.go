package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(EnvAPIKey, "test-key")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultStatePath, cfg.StatePath)
	assert.Equal(t, DefaultConfigDir, cfg.ConfigDir)
	assert.Equal(t, DefaultTimezone, cfg.Timezone)
}

func TestLoad_RequiresAPIKey(t *testing.T) {
	t.Setenv(EnvAPIKey, "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv(EnvAPIKey, "test-key")
	t.Setenv(EnvPort, "9090")
	t.Setenv(EnvStatePath, "/tmp/custom.json")
	t.Setenv(EnvTimezone, "UTC")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "/tmp/custom.json", cfg.StatePath)
	assert.Equal(t, "UTC", cfg.Timezone)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv(EnvAPIKey, "test-key")
	t.Setenv(EnvPort, "not-a-port")

	_, err := Load()
	assert.Error(t, err)
}
