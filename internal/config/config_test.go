package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"catalog/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.AppPort)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "product_events", cfg.EventsQueue)
	assert.False(t, cfg.EventsEnabled())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", ":9090")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DATABASE_DSN", "host=db user=catalog")
	t.Setenv("RABBITMQ_URL", "amqp://guest:guest@mq:5672/")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.AppPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "host=db user=catalog", cfg.DatabaseDSN)
	assert.True(t, cfg.EventsEnabled())
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := "APP_PORT: \":7070\"\nPRODUCT_EVENTS_QUEUE: catalog\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600))

	cfg, err := config.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.AppPort)
	assert.Equal(t, "catalog", cfg.EventsQueue)
	assert.Equal(t, "sqlite", cfg.DBDriver)
}

func TestLoadMissingConfigFileIsIgnored(t *testing.T) {
	_, err := config.Load(t.TempDir())

	assert.NoError(t, err)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")

	_, err := config.Load()

	assert.ErrorContains(t, err, "unsupported DB_DRIVER")
}
