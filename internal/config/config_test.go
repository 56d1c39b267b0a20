package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"LISTEN_ADDR", "BACKEND_BASE_URL", "SESSION_SECRET", "IDLE_TIMEOUT",
		"BACKEND_TIMEOUT", "TLS_CERT_FILE", "TLS_KEY_FILE", "ALLOW_INSECURE_HTTP",
		"LOG_LEVEL", "ENV", "LOGIN_RATE_LIMIT_RPS", "LOGIN_RATE_LIMIT_BURST",
		"CORS_ALLOWED_ORIGINS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "http://localhost:5000/api", cfg.BackendBaseURL)
	assert.Equal(t, 15*time.Minute, cfg.IdleTimeout)
	assert.Equal(t, 15*time.Second, cfg.BackendTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, float64(1), cfg.LoginRateLimitRPS)
	assert.Equal(t, 5, cfg.LoginRateLimitBurst)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.IsProduction())

	// Insecure defaults surface as warnings, not errors, in development.
	assert.Len(t, cfg.Warnings, 2)
}

func TestLoadFromEnv_AllVarsSet(t *testing.T) {
	clearEnv(t)
	t.Setenv("LISTEN_ADDR", ":9090")
	t.Setenv("BACKEND_BASE_URL", "https://lms.example.edu/api")
	t.Setenv("SESSION_SECRET", "s3cr3t")
	t.Setenv("IDLE_TIMEOUT", "5m")
	t.Setenv("BACKEND_TIMEOUT", "3s")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOGIN_RATE_LIMIT_RPS", "2.5")
	t.Setenv("LOGIN_RATE_LIMIT_BURST", "10")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, "https://lms.example.edu/api", cfg.BackendBaseURL)
	assert.Equal(t, 5*time.Minute, cfg.IdleTimeout)
	assert.Equal(t, 3*time.Second, cfg.BackendTimeout)
	assert.Equal(t, 2.5, cfg.LoginRateLimitRPS)
	assert.Equal(t, 10, cfg.LoginRateLimitBurst)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSAllowedOrigins)
	assert.Empty(t, cfg.Warnings)
}

func TestLoadFromEnv_InvalidIdleTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("IDLE_TIMEOUT", "fifteen minutes")

	_, err := LoadFromEnv()
	require.Error(t, err)
}

func TestLoadFromEnv_TLSFilesMustPair(t *testing.T) {
	clearEnv(t)
	t.Setenv("TLS_CERT_FILE", "/etc/ssl/cert.pem")

	_, err := LoadFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TLS_KEY_FILE")
}

func TestLoadFromEnv_RelativeBackendURLRejected(t *testing.T) {
	clearEnv(t)
	t.Setenv("BACKEND_BASE_URL", "/api")

	_, err := LoadFromEnv()
	require.Error(t, err)
}

func TestLoadFromEnv_ProductionRequiresSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "production")
	t.Setenv("BACKEND_BASE_URL", "https://lms.example.edu/api")
	t.Setenv("ALLOW_INSECURE_HTTP", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://portal.example.edu")

	_, err := LoadFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_SECRET")
}

func TestLoadFromEnv_ProductionRequiresHTTPSBackend(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "production")
	t.Setenv("SESSION_SECRET", "s3cr3t")
	t.Setenv("BACKEND_BASE_URL", "http://lms.example.edu/api")
	t.Setenv("ALLOW_INSECURE_HTTP", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://portal.example.edu")

	_, err := LoadFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "https")
}

func TestLoadFromEnv_ProductionRejectsCORSWildcard(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "production")
	t.Setenv("SESSION_SECRET", "s3cr3t")
	t.Setenv("BACKEND_BASE_URL", "https://lms.example.edu/api")
	t.Setenv("ALLOW_INSECURE_HTTP", "true")

	_, err := LoadFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CORS")
}

func TestLoadFromEnv_ProductionValid(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "production")
	t.Setenv("SESSION_SECRET", "s3cr3t")
	t.Setenv("BACKEND_BASE_URL", "https://lms.example.edu/api")
	t.Setenv("ALLOW_INSECURE_HTTP", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://portal.example.edu")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestSlogLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", (&Config{LogLevel: "debug"}).SlogLevel().String())
	assert.Equal(t, "WARN", (&Config{LogLevel: "warning"}).SlogLevel().String())
	assert.Equal(t, "ERROR", (&Config{LogLevel: "error"}).SlogLevel().String())
	assert.Equal(t, "INFO", (&Config{LogLevel: ""}).SlogLevel().String())
	assert.Equal(t, "INFO", (&Config{LogLevel: "bogus"}).SlogLevel().String())
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "# comment\nLISTEN_ADDR=:7070\nSESSION_SECRET=\"quoted\"\n\nBROKEN LINE\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("LISTEN_ADDR", "")
	t.Setenv("SESSION_SECRET", "already-set")

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, ":7070", os.Getenv("LISTEN_ADDR"))
	// Environment wins over the file.
	assert.Equal(t, "already-set", os.Getenv("SESSION_SECRET"))
}

func TestLoadDotEnv_MissingFileIsFine(t *testing.T) {
	require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "nope.env")))
}
