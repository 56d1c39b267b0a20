package ui

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"strings"

	gomponents "maragu.dev/gomponents"
	html "maragu.dev/gomponents/html"
)

// Double-submit CSRF protection for the portal's forms. Every response gets a
// token cookie; mutating requests must echo the token back, either as the
// csrf_token form field rendered into each form or as the X-CSRF-Token header
// (the idle beacon's path). The cookie is HttpOnly, so only markup this server
// rendered can know the token.
const (
	csrfCookieName = "lms_csrf"
	csrfFieldName  = "csrf_token"
	csrfHeaderName = "X-CSRF-Token"
)

type csrfContextKey struct{}

// EnsureCSRFToken issues the token cookie on first contact and makes the
// token available to page rendering via the request context.
func (h *Handler) EnsureCSRFToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := csrfCookieValue(r)
		if token == "" {
			token = newCSRFToken()
			http.SetCookie(w, &http.Cookie{
				Name:     csrfCookieName,
				Value:    token,
				Path:     "/",
				HttpOnly: true,
				Secure:   h.Production,
				SameSite: http.SameSiteLaxMode,
			})
		}
		ctx := context.WithValue(r.Context(), csrfContextKey{}, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireCSRF rejects mutating requests whose echoed token does not match the
// token cookie. Reads pass through untouched.
func (h *Handler) RequireCSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}

		cookieToken := csrfCookieValue(r)
		if cookieToken == "" {
			h.log().Warn("request without csrf cookie rejected", "path", r.URL.Path)
			renderHTML(w, http.StatusForbidden, errorPage("CSRF Validation Failed", "Missing CSRF token cookie."))
			return
		}

		echoed := strings.TrimSpace(r.Header.Get(csrfHeaderName))
		if echoed == "" {
			_ = r.ParseForm()
			echoed = strings.TrimSpace(r.Form.Get(csrfFieldName))
		}

		if subtle.ConstantTimeCompare([]byte(cookieToken), []byte(echoed)) != 1 {
			h.log().Warn("csrf token mismatch", "path", r.URL.Path)
			renderHTML(w, http.StatusForbidden, errorPage("CSRF Validation Failed", "Invalid or missing CSRF token."))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// csrfToken returns the request's CSRF token for rendering into the page.
func csrfToken(r *http.Request) string {
	if token, ok := r.Context().Value(csrfContextKey{}).(string); ok && token != "" {
		return token
	}
	return csrfCookieValue(r)
}

// csrfInput is the hidden field carrying the token; every rendered form with
// method=post must include one.
func csrfInput(token string) gomponents.Node {
	return html.Input(
		html.Type("hidden"),
		html.Name(csrfFieldName),
		html.Value(token),
	)
}

func csrfCookieValue(r *http.Request) string {
	cookie, err := r.Cookie(csrfCookieName)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(cookie.Value)
}

func newCSRFToken() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
