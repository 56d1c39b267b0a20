// Package config handles application configuration and environment loading.
package config

import (
	"bufio"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const insecureSessionSecret = "dev-session-secret-change-in-production"

// Config holds the configuration for the portal server.
type Config struct {
	ListenAddr        string // HTTP listen address (default ":8080")
	BackendBaseURL    string // base URL of the library backend API
	SessionSecret     string // HS256 secret signing the session cookie
	IdleTimeout       time.Duration // inactivity window before forced logout (default 15m)
	BackendTimeout    time.Duration // per-request backend timeout (default 15s)
	TLSCertFile       string // TLS certificate file path (optional)
	TLSKeyFile        string // TLS private key file path (optional)
	AllowInsecureHTTP bool   // allow non-TLS listener in production (for trusted TLS termination)
	LogLevel          string // log level: debug, info, warn, error (default "info")
	Env               string // environment: "development" (default) or "production"

	// Login rate limiting
	LoginRateLimitRPS   float64 // sustained login attempts per second per client (default 1)
	LoginRateLimitBurst int     // burst capacity (default 5)

	// CORS
	CORSAllowedOrigins []string // allowed origins for CORS (default: ["*"])

	// Warnings collects non-fatal warnings generated during config loading.
	// These are logged by the caller after the logger is initialised.
	Warnings []string
}

// SlogLevel maps the LogLevel string to an slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// IsProduction returns true when the server is running in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		ListenAddr:     os.Getenv("LISTEN_ADDR"),
		BackendBaseURL: os.Getenv("BACKEND_BASE_URL"),
		SessionSecret:  os.Getenv("SESSION_SECRET"),
		TLSCertFile:    os.Getenv("TLS_CERT_FILE"),
		TLSKeyFile:     os.Getenv("TLS_KEY_FILE"),
		LogLevel:       os.Getenv("LOG_LEVEL"),
		Env:            os.Getenv("ENV"),
	}

	if v := os.Getenv("IDLE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid IDLE_TIMEOUT %q: %w", v, err)
		}
		cfg.IdleTimeout = d
	}
	if v := os.Getenv("BACKEND_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid BACKEND_TIMEOUT %q: %w", v, err)
		}
		cfg.BackendTimeout = d
	}
	if v := os.Getenv("LOGIN_RATE_LIMIT_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.LoginRateLimitRPS = f
		}
	}
	if v := os.Getenv("LOGIN_RATE_LIMIT_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.LoginRateLimitBurst = n
		}
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		origins := strings.Split(v, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		cfg.CORSAllowedOrigins = origins
	}
	if strings.EqualFold(os.Getenv("ALLOW_INSECURE_HTTP"), "true") {
		cfg.AllowInsecureHTTP = true
	}

	// Defaults
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if cfg.BackendBaseURL == "" {
		cfg.BackendBaseURL = "http://localhost:5000/api"
		cfg.Warnings = append(cfg.Warnings, "BACKEND_BASE_URL not set — using http://localhost:5000/api")
	}
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = insecureSessionSecret
		cfg.Warnings = append(cfg.Warnings, "SESSION_SECRET not set — using insecure default. Set SESSION_SECRET in production!")
	}
	if cfg.IdleTimeout == 0 {
		cfg.IdleTimeout = 15 * time.Minute
	}
	if cfg.BackendTimeout == 0 {
		cfg.BackendTimeout = 15 * time.Second
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LoginRateLimitRPS == 0 {
		cfg.LoginRateLimitRPS = 1
	}
	if cfg.LoginRateLimitBurst == 0 {
		cfg.LoginRateLimitBurst = 5
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		cfg.CORSAllowedOrigins = []string{"*"}
	}

	if (cfg.TLSCertFile == "") != (cfg.TLSKeyFile == "") {
		return nil, fmt.Errorf("both TLS_CERT_FILE and TLS_KEY_FILE must be set together")
	}
	if u, err := url.Parse(cfg.BackendBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("BACKEND_BASE_URL %q is not an absolute URL", cfg.BackendBaseURL)
	}

	// Production mode: insecure defaults are fatal errors.
	if cfg.IsProduction() {
		if cfg.SessionSecret == insecureSessionSecret {
			return nil, fmt.Errorf("SESSION_SECRET must be set in production (ENV=production)")
		}
		if !strings.HasPrefix(cfg.BackendBaseURL, "https://") {
			return nil, fmt.Errorf("BACKEND_BASE_URL must use https in production (ENV=production)")
		}
		if cfg.TLSCertFile == "" && !cfg.AllowInsecureHTTP {
			return nil, fmt.Errorf("TLS_CERT_FILE/TLS_KEY_FILE must be set in production unless ALLOW_INSECURE_HTTP=true")
		}
		if len(cfg.CORSAllowedOrigins) == 1 && cfg.CORSAllowedOrigins[0] == "*" {
			return nil, fmt.Errorf("CORS wildcard (*) is not allowed in production (ENV=production)")
		}
	}

	return cfg, nil
}

// LoadDotEnv reads a .env file and sets any variables not already in the environment.
// Lines must be in KEY=VALUE format. Comments (#) and blank lines are skipped.
func LoadDotEnv(path string) error {
	f, err := os.Open(path) //nolint:gosec // path is caller-controlled
	if err != nil {
		if os.IsNotExist(err) {
			return nil // .env not found is not an error
		}
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = stripQuotes(strings.TrimSpace(value))
		// Only set if not already in the environment (env vars take precedence)
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("setenv %s: %w", key, err)
			}
		}
	}
	return scanner.Err()
}

// stripQuotes removes surrounding double or single quotes from a value.
// Only strips if both the first and last characters are matching quotes.
func stripQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
