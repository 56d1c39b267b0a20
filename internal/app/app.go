// Package app provides application-level wiring for the library portal:
// backend client, session store, idle monitor, menu catalog, and router.
package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Kotresh021/frontendLMS/internal/backend"
	"github.com/Kotresh021/frontendLMS/internal/config"
	"github.com/Kotresh021/frontendLMS/internal/idle"
	"github.com/Kotresh021/frontendLMS/internal/middleware"
	"github.com/Kotresh021/frontendLMS/internal/nav"
	"github.com/Kotresh021/frontendLMS/internal/session"
	"github.com/Kotresh021/frontendLMS/internal/ui"
)

// Deps holds the external dependencies that main() must provide.
type Deps struct {
	Cfg    *config.Config
	Logger *slog.Logger
}

// App holds the fully-wired application.
type App struct {
	Router   chi.Router
	Sessions *session.Store
	Idle     *idle.Monitor
	Backend  *backend.Client
}

// New wires the backend client, session lifecycle, idle monitor, and routes.
// The idle monitor and session store are mutually wired: session start arms
// the countdown, session end disarms it, and an expired countdown revokes
// the session.
func New(deps Deps) (*App, error) {
	cfg := deps.Cfg
	logger := deps.Logger

	client := backend.New(cfg.BackendBaseURL, cfg.BackendTimeout)

	store := session.NewStore(
		[]byte(cfg.SessionSecret),
		client,
		cfg.IsProduction(),
		logger.With("component", "session"),
	)
	monitor := idle.NewMonitor(cfg.IdleTimeout, func(sessionID string) {
		store.Revoke(sessionID, session.EndIdle)
	}, logger.With("component", "idle"))
	store.OnStart = monitor.Arm
	store.OnEnd = monitor.Disarm

	catalog, err := nav.Load()
	if err != nil {
		return nil, fmt.Errorf("load menu catalog: %w", err)
	}

	handler := ui.NewHandler(client, store, monitor, catalog, logger.With("component", "ui"), cfg.IsProduction())

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodHead, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-CSRF-Token", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	loginLimiter := middleware.RateLimiter(middleware.RateLimitConfig{
		RequestsPerSecond: cfg.LoginRateLimitRPS,
		Burst:             cfg.LoginRateLimitBurst,
	})
	ui.MountRoutes(r, handler,
		middleware.RestoreSession(store, monitor),
		loginLimiter,
		middleware.RequireRoles,
	)

	return &App{
		Router:   r,
		Sessions: store,
		Idle:     monitor,
		Backend:  client,
	}, nil
}

// Close releases background resources held by the wired application.
func (a *App) Close() {
	a.Sessions.Close()
}
