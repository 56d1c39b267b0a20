// Package ui renders the server-side views of the library portal and
// translates form submissions into backend calls.
package ui

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	gomponents "maragu.dev/gomponents"

	"github.com/Kotresh021/frontendLMS/internal/backend"
	"github.com/Kotresh021/frontendLMS/internal/domain"
	"github.com/Kotresh021/frontendLMS/internal/idle"
	"github.com/Kotresh021/frontendLMS/internal/nav"
	"github.com/Kotresh021/frontendLMS/internal/session"
)

type Handler struct {
	Backend    *backend.Client
	Sessions   *session.Store
	Idle       *idle.Monitor
	Nav        *nav.Catalog
	Logger     *slog.Logger
	Production bool
}

func NewHandler(client *backend.Client, sessions *session.Store, monitor *idle.Monitor, catalog *nav.Catalog, logger *slog.Logger, production bool) *Handler {
	return &Handler{
		Backend:    client,
		Sessions:   sessions,
		Idle:       monitor,
		Nav:        catalog,
		Logger:     logger,
		Production: production,
	}
}

func (h *Handler) log() *slog.Logger {
	if h.Logger == nil {
		return slog.Default()
	}
	return h.Logger
}

func renderHTML(w http.ResponseWriter, status int, node gomponents.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = node.Render(w)
}

func principalFromContext(ctx context.Context) domain.Principal {
	p, ok := domain.PrincipalFromContext(ctx)
	if !ok {
		return domain.Principal{DisplayName: "unknown"}
	}
	return p
}

// renderServiceError maps backend and domain failures to a status page. A 401
// or 403 from the backend means the credential is dead: the session ends and
// the user lands back on the login view with no further detail.
func (h *Handler) renderServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if backend.IsAuthError(err) {
		p := principalFromContext(r.Context())
		h.Sessions.Clear(w, p.SessionID, session.EndRejected)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	status := http.StatusInternalServerError
	title := "Unexpected Error"
	message := "An unexpected error occurred while loading this page."

	var notFound *domain.NotFoundError
	var accessDenied *domain.AccessDeniedError
	var validation *domain.ValidationError
	var authFailed *domain.AuthenticationError
	h.log().Warn("request failed", "path", r.URL.Path, "error", err)

	if errors.As(err, &notFound) {
		status = http.StatusNotFound
		title = "Not Found"
		message = notFound.Error()
	} else if errors.As(err, &accessDenied) {
		status = http.StatusForbidden
		title = "Access Denied"
		message = accessDenied.Error()
	} else if errors.As(err, &validation) {
		status = http.StatusBadRequest
		title = "Invalid Request"
		message = validation.Error()
	} else if errors.As(err, &authFailed) {
		status = http.StatusUnauthorized
		title = "Authentication Failed"
		message = authFailed.Error()
	}

	renderHTML(w, status, errorPage(title, message))
}
