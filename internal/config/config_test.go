package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("tradfrid", filepath.Join(t.TempDir(), "tradfrid.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Gateway.Address)
	assert.Equal(t, 10*time.Second, cfg.Gateway.Timeout)
	assert.Equal(t, ":8080", cfg.API.ListenAddress)
	assert.Equal(t, 120, cfg.API.RequestsPerMinute)
	assert.Equal(t, 10*time.Second, cfg.Cache.TTL)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tradfrid.yaml")
	content := `gateway:
  address: "192.168.1.50:5684"
  identity: "abcdef"
  psk: "secret"
  timeout: 5s
api:
  listen_address: ":9090"
cache:
  ttl: 30s
logging:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load("tradfrid", path)
	require.NoError(t, err)

	assert.Equal(t, "192.168.1.50:5684", cfg.Gateway.Address)
	assert.Equal(t, "abcdef", cfg.Gateway.Identity)
	assert.Equal(t, "secret", cfg.Gateway.PSK)
	assert.Equal(t, 5*time.Second, cfg.Gateway.Timeout)
	assert.Equal(t, ":9090", cfg.API.ListenAddress)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("TRADFRI_GATEWAY_ADDRESS", "10.0.0.1:5684")
	t.Setenv("TRADFRI_LOGGING_LEVEL", "warn")

	cfg, err := Load("tradfrid", filepath.Join(t.TempDir(), "tradfrid.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "10.0.0.1:5684", cfg.Gateway.Address)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestSavePersistsCredentials(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tradfrid.yaml")

	cfg, err := Load("tradfrid", path)
	require.NoError(t, err)

	cfg.Gateway.Address = "192.168.1.50:5684"
	cfg.Gateway.Identity = "provisioned-id"
	cfg.Gateway.PSK = "provisioned-psk"
	require.NoError(t, cfg.Save())

	reloaded, err := Load("tradfrid", path)
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.50:5684", reloaded.Gateway.Address)
	assert.Equal(t, "provisioned-id", reloaded.Gateway.Identity)
	assert.Equal(t, "provisioned-psk", reloaded.Gateway.PSK)
}
