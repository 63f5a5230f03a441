package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000", cfg.Service.BaseURL)
	assert.Equal(t, 60*time.Second, cfg.Service.Timeout)
	assert.Equal(t, 500, cfg.Widget.MaxChars)
	assert.Equal(t, 5*time.Second, cfg.Widget.ErrorDisplay)
	assert.Equal(t, 300*time.Millisecond, cfg.Widget.ErrorFade)
	assert.Equal(t, 500*time.Millisecond, cfg.Widget.GreetingDelay)
	assert.Equal(t, DefaultGreeting, cfg.Widget.Greeting)
	assert.Equal(t, "disk", cfg.Storage.Type)
	assert.Equal(t, 10, cfg.Stub.RateLimitPerMinute)
	assert.Equal(t, []string{"*"}, cfg.Stub.CORS.AllowedOrigins)
	assert.Same(t, cfg, Get())
}

func TestLoad_YAMLOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
service:
  base_url: "http://shop.internal:8080"
  timeout: 10s
widget:
  max_chars: 280
  error_display: 2s
storage:
  type: sqlite
stub:
  replies:
    sheets: "buy sheets"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://shop.internal:8080", cfg.Service.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Service.Timeout)
	assert.Equal(t, 280, cfg.Widget.MaxChars)
	assert.Equal(t, 2*time.Second, cfg.Widget.ErrorDisplay)
	assert.Equal(t, 300*time.Millisecond, cfg.Widget.ErrorFade)
	assert.Equal(t, "sqlite", cfg.Storage.Type)
	assert.Equal(t, "buy sheets", cfg.Stub.Replies["sheets"])
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CHAT_SERVICE_BASE_URL", "http://from-env:9000")
	t.Setenv("CHAT_STORAGE_TYPE", "memory")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://from-env:9000", cfg.Service.BaseURL)
	assert.Equal(t, "memory", cfg.Storage.Type)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("service: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_NonPositiveMaxChars(t *testing.T) {
	t.Setenv("CHAT_WIDGET_MAX_CHARS", "0")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.Widget.MaxChars)
}
