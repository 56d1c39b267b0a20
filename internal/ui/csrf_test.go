package ui

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCSRFMiddleware_RejectsMissingToken(t *testing.T) {
	h := &Handler{}
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	r := httptest.NewRequest(http.MethodPost, "/books", strings.NewReader("title=x"))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()

	h.RequireCSRF(next).ServeHTTP(rr, r)
	require.Equal(t, http.StatusForbidden, rr.Code)
}

func TestCSRFMiddleware_RejectsMismatchedToken(t *testing.T) {
	h := &Handler{}
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	form := url.Values{}
	form.Set("csrf_token", "wrong")
	r := httptest.NewRequest(http.MethodPost, "/books", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.AddCookie(&http.Cookie{Name: csrfCookieName, Value: "abc123"})
	rr := httptest.NewRecorder()

	h.RequireCSRF(next).ServeHTTP(rr, r)
	require.Equal(t, http.StatusForbidden, rr.Code)
}

func TestCSRFMiddleware_AllowsMatchingToken(t *testing.T) {
	h := &Handler{}
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	form := url.Values{}
	form.Set("csrf_token", "abc123")
	r := httptest.NewRequest(http.MethodPost, "/books", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.AddCookie(&http.Cookie{Name: csrfCookieName, Value: "abc123"})
	rr := httptest.NewRecorder()

	h.RequireCSRF(next).ServeHTTP(rr, r)
	require.Equal(t, http.StatusNoContent, rr.Code)
}

func TestCSRFMiddleware_AcceptsHeaderToken(t *testing.T) {
	h := &Handler{}
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// The idle beacon sends the token as a header with no form body.
	r := httptest.NewRequest(http.MethodPost, "/session/touch", nil)
	r.Header.Set(csrfHeaderName, "abc123")
	r.AddCookie(&http.Cookie{Name: csrfCookieName, Value: "abc123"})
	rr := httptest.NewRecorder()

	h.RequireCSRF(next).ServeHTTP(rr, r)
	require.Equal(t, http.StatusNoContent, rr.Code)
}

func TestCSRFMiddleware_IgnoresSafeMethods(t *testing.T) {
	h := &Handler{}
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	r := httptest.NewRequest(http.MethodGet, "/books", nil)
	rr := httptest.NewRecorder()
	h.RequireCSRF(next).ServeHTTP(rr, r)
	require.Equal(t, http.StatusNoContent, rr.Code)
}

func TestEnsureCSRFToken_SetsCookieWhenMissing(t *testing.T) {
	h := &Handler{}
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()

	h.EnsureCSRFToken(next).ServeHTTP(rr, r)
	require.Equal(t, http.StatusNoContent, rr.Code)
	setCookie := rr.Header().Get("Set-Cookie")
	require.Contains(t, setCookie, csrfCookieName+"=")
}
