package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ranjanashish/leh-registry/internal/config"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	c, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":5000", c.Server.Addr)
	assert.Equal(t, []string{"*"}, c.Server.CORSAllowedOrigins)
	assert.Equal(t, "memory", c.Storage.Driver)
	assert.Equal(t, "leh_registry", c.Storage.Mongo.Database)
	assert.Equal(t, "1m", c.Rate.Window)
	assert.Equal(t, 120, c.Rate.MaxRequests)
	assert.Equal(t, 10, c.Rate.Login.Limit)
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9090"
storage:
  driver: postgres
  dsn: postgres://localhost/leh
rate:
  enabled: true
  max_requests: 30
`), 0o600))

	c, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", c.Server.Addr)
	assert.Equal(t, "postgres", c.Storage.Driver)
	assert.Equal(t, "postgres://localhost/leh", c.Storage.DSN)
	assert.True(t, c.Rate.Enabled)
	assert.Equal(t, 30, c.Rate.MaxRequests)
	// lo no declarado conserva defaults
	assert.Equal(t, "1m", c.Rate.Window)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "5001")
	t.Setenv("STORAGE_DRIVER", "mongo")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("BOOTSTRAP_ADMIN_EMAIL", "root@plant.local")
	t.Setenv("SERVER_CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	c, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":5001", c.Server.Addr)
	assert.Equal(t, "mongo", c.Storage.Driver)
	assert.Equal(t, "mongodb://localhost:27017", c.Storage.Mongo.URI)
	assert.Equal(t, "root@plant.local", c.Bootstrap.Admin.Email)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, c.Server.CORSAllowedOrigins)
}

func TestLoad_InvalidDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
rate:
  window: "not-a-duration"
`), 0o600))

	_, err := config.Load(path)
	assert.Error(t, err)
}
