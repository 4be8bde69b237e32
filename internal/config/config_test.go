package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "qwen3", cfg.LLM.Model)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout())
	assert.False(t, cfg.LLM.Mock)
	assert.Equal(t, 10, cfg.RateLimit.MaxRequests)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window())
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("LLM_BASE_URL", "10.0.0.1:9997/v1/")
	t.Setenv("LLM_MODEL", "qwen2.5")
	t.Setenv("LLM_TIMEOUT", "45")
	t.Setenv("USE_MOCK", "true")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", "file::memory:")
	t.Setenv("REDIS_URL", "redis://cache:6379/1")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "10.0.0.1:9997/v1/", cfg.LLM.BaseURL)
	assert.Equal(t, "qwen2.5", cfg.LLM.Model)
	assert.Equal(t, 45*time.Second, cfg.LLM.Timeout())
	assert.True(t, cfg.LLM.Mock)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "file::memory:", cfg.Database.URL)
	assert.Equal(t, "redis://cache:6379/1", cfg.Redis.URL)
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("server:\n  port: \"9090\"\nrate_limit:\n  max_requests: 3\n  window_seconds: 10\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 3, cfg.RateLimit.MaxRequests)
	assert.Equal(t, 10*time.Second, cfg.RateLimit.Window())
}

func TestLoadConfig_InvalidRateLimit(t *testing.T) {
	t.Setenv("RATE_LIMIT_MAX_REQUESTS", "0")

	_, err := LoadConfig(t.TempDir())
	assert.Error(t, err)
}

func TestLoadConfig_CORSOrigins(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 600, cfg.RateLimit.GlobalPerMinute)

	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.example,http://b.example")
	cfg, err = LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORS.AllowedOrigins)
}
