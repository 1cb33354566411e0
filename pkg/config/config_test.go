package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp keeps stray .env or config.yaml files out of Load.
func chdirTemp(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", c.AppEnv)
	assert.Equal(t, "0.0.0.0:8080", c.HTTPAddr)
	assert.Equal(t, 15*time.Second, c.ShutdownTimeout)
	assert.Equal(t, []string{"http://localhost:3000"}, c.AllowedOrigins())
	assert.Equal(t, 10*time.Minute, c.CORSMaxAge)
	assert.False(t, c.RejectEmptyBody)
	assert.False(t, c.ErrorDetail)
	assert.Equal(t, int64(1<<20), c.MaxBodyBytes)
	assert.Empty(t, c.AuthJWTSecret)
}

func TestLoadFromEnv(t *testing.T) {
	chdirTemp(t)
	t.Setenv("APP_ENV", "test")
	t.Setenv("HTTP_ADDR", "127.0.0.1:9000")
	t.Setenv("SHUTDOWN_TIMEOUT", "1s")
	t.Setenv("LOG_FORMAT", "console")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, https://app.example.com ,")
	t.Setenv("CORS_MAX_AGE", "90s")
	t.Setenv("AUTH_JWT_SECRET", "0123456789abcdef0123")
	t.Setenv("REJECT_EMPTY_BODY", "true")
	t.Setenv("ERROR_DETAIL", "true")
	t.Setenv("MAX_BODY_BYTES", "2048")

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test", c.AppEnv)
	assert.Equal(t, "127.0.0.1:9000", c.HTTPAddr)
	assert.Equal(t, time.Second, c.ShutdownTimeout)
	assert.Equal(t, "console", c.LogFormat)
	assert.Equal(t, []string{"http://localhost:3000", "https://app.example.com"}, c.AllowedOrigins())
	assert.Equal(t, 90*time.Second, c.CORSMaxAge)
	assert.Equal(t, "0123456789abcdef0123", c.AuthJWTSecret)
	assert.True(t, c.RejectEmptyBody)
	assert.True(t, c.ErrorDetail)
	assert.Equal(t, int64(2048), c.MaxBodyBytes)
}

func TestLoadValidation(t *testing.T) {
	cases := map[string]map[string]string{
		"bad env":          {"APP_ENV": "qa"},
		"bad level":        {"LOG_LEVEL": "loud"},
		"bad duration":     {"SHUTDOWN_TIMEOUT": "soon"},
		"blank origins":    {"CORS_ALLOWED_ORIGINS": " , "},
		"short jwt secret": {"AUTH_JWT_SECRET": "short"},
		"tiny max age":     {"CORS_MAX_AGE": "10ms"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			chdirTemp(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
