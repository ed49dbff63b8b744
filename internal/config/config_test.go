package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("BACKEND_BASE_URL", "http://localhost:8000/api/admin")
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("TERMINAL_ID", "kasir-1")
	t.Setenv("TIMEZONE", "UTC")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.App.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.App.AllowedOrigins)
	assert.Equal(t, 10*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "kasir-1", cfg.Terminal.ID)
	assert.Equal(t, 5*time.Minute, cfg.Terminal.CatalogRefreshInterval)
	assert.Equal(t, 58, cfg.Receipt.Width)
	assert.Equal(t, "SMASH ARENA", cfg.Receipt.BusinessName)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("BACKEND_BASE_URL", "http://backend")
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("APP_PORT", "9000")
	t.Setenv("RECEIPT_WIDTH", "80")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("CATALOG_REFRESH_INTERVAL", "0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.App.Port)
	assert.Equal(t, 80, cfg.Receipt.Width)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.App.AllowedOrigins)
	assert.Equal(t, time.Duration(0), cfg.Terminal.CatalogRefreshInterval)
	assert.NotEmpty(t, cfg.Terminal.ID)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"missing backend": {"JWT_SECRET_KEY": "secret"},
		"missing secret":  {"BACKEND_BASE_URL": "http://backend"},
		"bad width":       {"BACKEND_BASE_URL": "http://backend", "JWT_SECRET_KEY": "s", "RECEIPT_WIDTH": "72"},
		"bad port":        {"BACKEND_BASE_URL": "http://backend", "JWT_SECRET_KEY": "s", "APP_PORT": "http"},
		"bad timeout":     {"BACKEND_BASE_URL": "http://backend", "JWT_SECRET_KEY": "s", "BACKEND_TIMEOUT": "soon"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("BACKEND_BASE_URL", "")
			t.Setenv("JWT_SECRET_KEY", "")
			t.Setenv("TIMEZONE", "UTC")
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
