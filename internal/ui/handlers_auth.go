package ui

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Kotresh021/frontendLMS/internal/domain"
	"github.com/Kotresh021/frontendLMS/internal/session"
)

func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if p, ok := domain.PrincipalFromContext(r.Context()); ok && !domain.RestoringFromContext(r.Context()) {
		http.Redirect(w, r, p.Role.DashboardPath(), http.StatusSeeOther)
		return
	}
	q := r.URL.Query()
	renderHTML(w, http.StatusOK, loginPage(
		strings.TrimSpace(q.Get("error")),
		strings.TrimSpace(q.Get("notice")),
		csrfToken(r),
	))
}

// LoginSubmit exchanges credentials for a backend token and makes the result
// the current session. Logging in while already signed in simply replaces the
// session record; the previous one is revoked first so its idle countdown
// cannot outlive it.
func (h *Handler) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/login?error=invalid+form", http.StatusSeeOther)
		return
	}
	identifier := formString(r.Form, "identifier")
	password := formString(r.Form, "password")
	if identifier == "" || password == "" {
		http.Redirect(w, r, "/login?error=email+and+password+are+required", http.StatusSeeOther)
		return
	}

	resp, err := h.Backend.Login(r.Context(), identifier, password)
	if err != nil {
		var authErr *domain.AuthenticationError
		if errors.As(err, &authErr) {
			http.Redirect(w, r, "/login?error=invalid+credentials", http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/login?error=sign-in+is+unavailable+right+now", http.StatusSeeOther)
		return
	}

	role, err := domain.ParseRole(resp.Role)
	if err != nil {
		http.Redirect(w, r, "/login?error=account+has+no+portal+access", http.StatusSeeOther)
		return
	}

	if prev, ok := domain.PrincipalFromContext(r.Context()); ok {
		h.Sessions.Revoke(prev.SessionID, session.EndLogout)
	}

	rec := session.NewRecord(resp.ID, resp.Name, role, resp.Token)
	if err := h.Sessions.Issue(w, rec); err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	http.Redirect(w, r, role.DashboardPath(), http.StatusSeeOther)
}

// Logout ends the current session. Repeating it is harmless.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	p := principalFromContext(r.Context())
	h.Sessions.Clear(w, p.SessionID, session.EndLogout)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// SessionTouch receives the interaction beacon and resets the idle countdown.
func (h *Handler) SessionTouch(w http.ResponseWriter, r *http.Request) {
	p := principalFromContext(r.Context())
	h.Idle.Touch(p.SessionID)
	w.WriteHeader(http.StatusNoContent)
}
