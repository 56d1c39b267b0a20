package middleware

import (
	"context"
	"net/http"

	"github.com/Kotresh021/frontendLMS/internal/domain"
	"github.com/Kotresh021/frontendLMS/internal/guard"
	"github.com/Kotresh021/frontendLMS/internal/idle"
	"github.com/Kotresh021/frontendLMS/internal/session"
)

type endReasonKey struct{}

// EndReasonFromContext reports why the request's session ended, when
// RestoreSession found a revoked session on the way in.
func EndReasonFromContext(ctx context.Context) session.EndReason {
	reason, _ := ctx.Value(endReasonKey{}).(session.EndReason)
	return reason
}

// RestoreSession resolves the request's Principal from the session cookie.
//
// A verified session attaches the Principal and counts as an interaction on
// the idle monitor. A pending session (cookie from before a restart, or a
// restored tab) attaches the Principal flagged as restoring and kicks off a
// single background revalidation against the backend. A revoked session has
// its cookie expired so the next request starts clean; the end reason is left
// in the context for the login redirect to explain itself.
func RestoreSession(store *session.Store, monitor *idle.Monitor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec, status := store.Restore(r)
			switch status {
			case session.StatusVerified:
				monitor.Touch(rec.ID)
				ctx := domain.WithPrincipal(r.Context(), rec.Principal())
				next.ServeHTTP(w, r.WithContext(ctx))
				return

			case session.StatusPending:
				if store.BeginRevalidation(rec.ID) {
					// Detached from the request so a cancelled page load
					// cannot abort the verification mid-flight.
					go store.Revalidate(context.WithoutCancel(r.Context()), *rec)
				}
				ctx := domain.WithPrincipal(r.Context(), rec.Principal())
				ctx = domain.WithRestoring(ctx, true)
				next.ServeHTTP(w, r.WithContext(ctx))
				return

			case session.StatusRevoked:
				reason := store.EndReasonFor(rec.ID)
				store.Clear(w, rec.ID, reason)
				ctx := context.WithValue(r.Context(), endReasonKey{}, reason)
				next.ServeHTTP(w, r.WithContext(ctx))
				return

			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

// RequireRoles gates a route group on the access decision for the request's
// Principal. No roles means any authenticated user. Redirects carry no detail
// about whether the session was missing or merely under-privileged; an idle
// expiry adds a notice so the login view can say why the user is back there.
func RequireRoles(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var principal *domain.Principal
			if p, ok := domain.PrincipalFromContext(r.Context()); ok {
				principal = &p
			}
			restoring := domain.RestoringFromContext(r.Context())

			switch guard.Decide(principal, roles, restoring) {
			case guard.Allow:
				next.ServeHTTP(w, r)
			case guard.Loading:
				writeLoading(w)
			default:
				target := "/login"
				if EndReasonFromContext(r.Context()) == session.EndIdle {
					target = "/login?notice=idle"
				}
				http.Redirect(w, r, target, http.StatusSeeOther)
			}
		})
	}
}

// writeLoading renders the neutral placeholder shown while a restored session
// is still being revalidated. The page retries shortly; by then the session
// is either verified or revoked and the normal flow takes over.
func writeLoading(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Refresh", "1")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`<!doctype html><html lang="en"><head><meta charset="utf-8"><title>Loading…</title></head>` +
		`<body style="display:flex;align-items:center;justify-content:center;height:100vh;font-family:sans-serif">` +
		`<p>Restoring your session…</p></body></html>`))
}
