package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("PORT", "")
	t.Setenv("REDIS_DB", "")
	t.Setenv("UPSTREAM_MAX_ATTEMPTS", "")

	cfg := Load()

	assert.Equal(t, DEFAULT_ENV, cfg.Env)
	assert.Equal(t, DEFAULT_PORT, cfg.Port)
	assert.Equal(t, REDIS_DB, cfg.RedisDB)
	assert.Equal(t, DEFAULT_UPSTREAM_MAX_ATTEMPTS, cfg.UpstreamMaxAttempts)
	assert.False(t, cfg.IsProd())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "PROD")
	t.Setenv("PORT", "9090")
	t.Setenv("SEARCH_RADIUS_METERS", "800")
	t.Setenv("GEMINI_MODEL", "gemini-test")

	cfg := Load()

	assert.True(t, cfg.IsProd())
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 800, cfg.SearchRadiusMeters)
	assert.Equal(t, "gemini-test", cfg.GeminiModel)
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("SEARCH_RADIUS_METERS", "far")
	t.Setenv("REDIS_DB", "-2")

	cfg := Load()

	assert.Equal(t, DEFAULT_SEARCH_RADIUS_METERS, cfg.SearchRadiusMeters)
	assert.Equal(t, REDIS_DB, cfg.RedisDB)
}

func TestGetResourcePath_UsesProjectRoot(t *testing.T) {
	t.Setenv("PROJECT_ROOT", "/srv/app")

	got := GetResourcePath(TIME_WEIGHTS_RESOURCE)

	assert.Equal(t, filepath.Join("/srv/app", "resources", "time_weights.yaml"), got)
}
