package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 3000, cfg.Port)
	assert.False(t, cfg.Students.CacheEnabled)
	assert.Equal(t, time.Minute, cfg.Students.CacheTTL)
	assert.Equal(t, "http://localhost:3000", cfg.Client.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Client.Timeout)
	assert.Equal(t, "warn", cfg.Client.LogLevel)
	assert.Nil(t, cfg.CORS.AllowedOrigins)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENABLE_CACHE", "true")
	t.Setenv("STUDENTS_CACHE_TTL", "30s")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:5173, https://admin.example.com/ ,")
	t.Setenv("ROSTER_API_URL", "http://api.internal:3000/")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.Students.CacheEnabled)
	assert.Equal(t, 30*time.Second, cfg.Students.CacheTTL)
	assert.Equal(t, []string{"http://localhost:5173", "https://admin.example.com/"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "http://api.internal:3000", cfg.Client.BaseURL)
}

func TestParseDurationFallback(t *testing.T) {
	assert.Equal(t, time.Second, parseDuration("", time.Second))
	assert.Equal(t, time.Second, parseDuration("soon", time.Second))
	assert.Equal(t, 2*time.Minute, parseDuration("2m", time.Second))
}
