package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3333", cfg.API.BaseURL)
	assert.Equal(t, 10, cfg.API.DefaultPageSize)
	assert.Equal(t, "websocket", cfg.Realtime.Transport)
	assert.Equal(t, 1000, cfg.Realtime.Reconnect.InitialIntervalMs)
	assert.Equal(t, "api", cfg.Mail.Transport)
	assert.True(t, cfg.Thread.PostResolutionMarker)
	assert.Same(t, cfg, Get())
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "helpdesk.yaml")
	content := []byte(`
api:
  base_url: https://desk.example.com
  default_page_size: 25
realtime:
  transport: redis
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))
	t.Setenv("HELPDESK_LOGGER_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://desk.example.com", cfg.API.BaseURL)
	assert.Equal(t, 25, cfg.API.DefaultPageSize)
	assert.Equal(t, "redis", cfg.Realtime.Transport)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
