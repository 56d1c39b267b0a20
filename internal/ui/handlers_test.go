package ui

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kotresh021/frontendLMS/internal/backend"
	"github.com/Kotresh021/frontendLMS/internal/idle"
	"github.com/Kotresh021/frontendLMS/internal/middleware"
	"github.com/Kotresh021/frontendLMS/internal/nav"
	"github.com/Kotresh021/frontendLMS/internal/session"
)

// stubBackend fakes the library API: one staff and one student account,
// a tiny catalog, and token verification. Setting reject makes every
// authenticated endpoint return 401, simulating a token revoked server-side.
func stubBackend(t *testing.T) (*httptest.Server, *atomic.Bool) {
	t.Helper()
	var reject atomic.Bool
	unauthorized := func(w http.ResponseWriter) bool {
		if !reject.Load() {
			return false
		}
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Token is not valid"})
		return true
	}
	mux := http.NewServeMux()
	// Method-qualified mux patterns need go1.22; guard methods by hand instead.
	handle := func(method, path string, fn http.HandlerFunc) {
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			if r.Method != method {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			fn(w, r)
		})
	}
	handle(http.MethodPost, "/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		switch body["identifier"] {
		case "staff@example.edu":
			json.NewEncoder(w).Encode(map[string]string{"_id": "u1", "name": "Asha", "role": "staff", "token": "staff-tok"})
		case "REG42":
			json.NewEncoder(w).Encode(map[string]string{"_id": "u2", "name": "Ravi", "role": "student", "token": "student-tok"})
		default:
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
		}
	})
	handle(http.MethodPut, "/users/profile", func(w http.ResponseWriter, r *http.Request) {
		if unauthorized(w) {
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	handle(http.MethodGet, "/books", func(w http.ResponseWriter, r *http.Request) {
		if unauthorized(w) {
			return
		}
		json.NewEncoder(w).Encode([]map[string]any{
			{"_id": "b1", "title": "The Go Programming Language", "isbn": "978-0134190440", "totalCopies": 3, "availableCopies": 1},
		})
	})
	handle(http.MethodGet, "/users/students", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{
			{"_id": "u2", "name": "Ravi", "registerNumber": "REG42", "department": "CSE", "semester": "5", "isActive": true},
		})
	})
	handle(http.MethodGet, "/circulation/dashboard-stats", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"totalBooks": 12, "totalStudents": 40, "issuedCount": 5, "overdueCount": 1})
	})
	handle(http.MethodGet, "/circulation/student-history", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]any{})
	})
	handle(http.MethodGet, "/circulation/history", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{
			{
				"_id":  "t1",
				"book": map[string]string{"_id": "b1", "title": "The Go Programming Language", "isbn": "978"},
				"student": map[string]string{
					"_id": "u2", "name": "Ravi", "registerNumber": "REG42",
				},
				"copyId": "C-1", "issueDate": "2026-08-01T00:00:00.000Z", "dueDate": "2026-08-15T00:00:00.000Z",
			},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &reject
}

type portal struct {
	router        chi.Router
	store         *session.Store
	monitor       *idle.Monitor
	backendReject *atomic.Bool
	cookies       map[string]*http.Cookie
	lastBody      string
}

func newPortal(t *testing.T, idleTimeout time.Duration) *portal {
	t.Helper()
	srv, reject := stubBackend(t)
	client := backend.New(srv.URL, time.Second)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store := session.NewStore([]byte("test-secret"), client, false, logger)
	monitor := idle.NewMonitor(idleTimeout, func(id string) {
		store.Revoke(id, session.EndIdle)
	}, logger)
	store.OnStart = monitor.Arm
	store.OnEnd = monitor.Disarm

	catalog, err := nav.Load()
	require.NoError(t, err)

	h := NewHandler(client, store, monitor, catalog, logger, false)
	r := chi.NewRouter()
	MountRoutes(r, h,
		middleware.RestoreSession(store, monitor),
		middleware.RateLimiter(middleware.RateLimitConfig{RequestsPerSecond: 100, Burst: 100}),
		middleware.RequireRoles,
	)

	return &portal{router: r, store: store, monitor: monitor, backendReject: reject, cookies: map[string]*http.Cookie{}}
}

// do performs a request with the portal's cookie jar and records new cookies.
func (p *portal) do(t *testing.T, method, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	r := httptest.NewRequest(method, target, body)
	if form != nil {
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, c := range p.cookies {
		r.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	p.router.ServeHTTP(rr, r)
	for _, c := range rr.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(p.cookies, c.Name)
			continue
		}
		p.cookies[c.Name] = c
	}
	p.lastBody = rr.Body.String()
	return rr
}

var (
	csrfInputPattern = regexp.MustCompile(`name="csrf_token" value="([^"]*)"`)
	csrfMetaPattern  = regexp.MustCompile(`name="csrf-token" content="([^"]*)"`)
)

// formToken pulls the csrf_token hidden field out of the page rendered last,
// submitting exactly what the markup carries, as a browser would.
func (p *portal) formToken(t *testing.T) string {
	t.Helper()
	m := csrfInputPattern.FindStringSubmatch(p.lastBody)
	require.NotNil(t, m, "rendered page carries no csrf_token field")
	require.NotEmpty(t, m[1])
	return m[1]
}

// metaToken reads the token the idle beacon script would read.
func (p *portal) metaToken(t *testing.T) string {
	t.Helper()
	m := csrfMetaPattern.FindStringSubmatch(p.lastBody)
	require.NotNil(t, m, "rendered page carries no csrf-token meta tag")
	require.NotEmpty(t, m[1])
	return m[1]
}

func (p *portal) login(t *testing.T, identifier, password string) *httptest.ResponseRecorder {
	t.Helper()
	p.do(t, http.MethodGet, "/login", nil)
	form := url.Values{}
	form.Set("identifier", identifier)
	form.Set("password", password)
	form.Set("csrf_token", p.formToken(t))
	return p.do(t, http.MethodPost, "/login", form)
}

func TestLoginFlow_StaffLandsOnStaffDashboard(t *testing.T) {
	p := newPortal(t, time.Minute)

	rr := p.login(t, "staff@example.edu", "pw")
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/staff", rr.Header().Get("Location"))
	require.Contains(t, p.cookies, "lms_session")

	rr = p.do(t, http.MethodGet, "/staff", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, p.lastBody, "Signed in as Asha")
	assert.Contains(t, p.lastBody, "Books in catalog")
}

func TestLoginFlow_BadCredentials(t *testing.T) {
	p := newPortal(t, time.Minute)

	rr := p.login(t, "staff@example.edu", "")
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Contains(t, rr.Header().Get("Location"), "/login?error=")

	rr = p.login(t, "nobody@example.edu", "pw")
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login?error=invalid+credentials", rr.Header().Get("Location"))
	assert.NotContains(t, p.cookies, "lms_session")
}

func TestAccessGuard_AnonymousRedirectsToLogin(t *testing.T) {
	p := newPortal(t, time.Minute)

	for _, target := range []string{"/", "/books", "/circulation", "/audit", "/my-books"} {
		rr := p.do(t, http.MethodGet, target, nil)
		require.Equal(t, http.StatusSeeOther, rr.Code, "GET %s", target)
		assert.Equal(t, "/login", rr.Header().Get("Location"), "GET %s", target)
	}
}

func TestAccessGuard_StudentCannotReachStaffViews(t *testing.T) {
	p := newPortal(t, time.Minute)
	rr := p.login(t, "REG42", "2004-05-01")
	require.Equal(t, http.StatusSeeOther, rr.Code)
	require.Equal(t, "/student", rr.Header().Get("Location"))

	// Wrong role gets the same bare redirect an anonymous user gets.
	for _, target := range []string{"/books", "/circulation", "/audit", "/staff-manage"} {
		rr := p.do(t, http.MethodGet, target, nil)
		require.Equal(t, http.StatusSeeOther, rr.Code, "GET %s", target)
		assert.Equal(t, "/login", rr.Header().Get("Location"), "GET %s", target)
	}

	// Student views still work.
	rr = p.do(t, http.MethodGet, "/library", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, p.lastBody, "The Go Programming Language")
}

func TestStudentMenuShowsOnlyAllowedEntries(t *testing.T) {
	p := newPortal(t, time.Minute)
	p.login(t, "REG42", "2004-05-01")

	rr := p.do(t, http.MethodGet, "/my-books", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	assert.Contains(t, p.lastBody, `href="/my-books"`)
	assert.Contains(t, p.lastBody, `href="/library"`)
	assert.Contains(t, p.lastBody, `href="/rules"`)
	assert.NotContains(t, p.lastBody, `href="/circulation"`)
	assert.NotContains(t, p.lastBody, `href="/audit"`)
	assert.NotContains(t, p.lastBody, `href="/staff-manage"`)
}

func TestLogout_IsIdempotentAndEndsSession(t *testing.T) {
	p := newPortal(t, time.Minute)
	p.login(t, "staff@example.edu", "pw")

	// The sign-out form rendered into the page shell is all a browser has.
	rr := p.do(t, http.MethodGet, "/staff", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	form := url.Values{}
	form.Set("csrf_token", p.formToken(t))
	rr = p.do(t, http.MethodPost, "/logout", form)
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))
	assert.NotContains(t, p.cookies, "lms_session")

	// Repeating logout without a session is harmless.
	rr = p.do(t, http.MethodPost, "/logout", form)
	require.Equal(t, http.StatusSeeOther, rr.Code)

	// The protected views are gone.
	rr = p.do(t, http.MethodGet, "/books", nil)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
}

func TestIdleExpiry_ForcesLogoutWithNotice(t *testing.T) {
	p := newPortal(t, 40*time.Millisecond)
	p.login(t, "staff@example.edu", "pw")

	rr := p.do(t, http.MethodGet, "/books", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	// Go idle past the timeout.
	time.Sleep(120 * time.Millisecond)

	rr = p.do(t, http.MethodGet, "/books", nil)
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login?notice=idle", rr.Header().Get("Location"))

	// The login page explains why the user is back.
	rr = p.do(t, http.MethodGet, "/login?notice=idle", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, p.lastBody, "signed out after a period of inactivity")
}

func TestInteractionKeepsSessionAlive(t *testing.T) {
	p := newPortal(t, 80*time.Millisecond)
	p.login(t, "staff@example.edu", "pw")

	// Each request is an interaction: keep requesting at sub-timeout gaps.
	for i := 0; i < 5; i++ {
		time.Sleep(30 * time.Millisecond)
		rr := p.do(t, http.MethodGet, "/books", nil)
		require.Equal(t, http.StatusOK, rr.Code, "request %d", i)
	}
}

func TestSessionTouchBeaconUsesHeaderToken(t *testing.T) {
	p := newPortal(t, time.Minute)
	p.login(t, "staff@example.edu", "pw")

	// The beacon script sends the meta-tag token as a header, no form body.
	rr := p.do(t, http.MethodGet, "/staff", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	token := p.metaToken(t)

	r := httptest.NewRequest(http.MethodPost, "/session/touch", strings.NewReader(""))
	r.Header.Set("X-CSRF-Token", token)
	for _, c := range p.cookies {
		r.AddCookie(c)
	}
	beat := httptest.NewRecorder()
	p.router.ServeHTTP(beat, r)
	assert.Equal(t, http.StatusNoContent, beat.Code)
}

func TestRenderedFormsCarryCSRFToken(t *testing.T) {
	p := newPortal(t, time.Minute)

	rr := p.do(t, http.MethodGet, "/login", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assertFormsCarryToken(t, p.lastBody)

	p.login(t, "staff@example.edu", "pw")
	for _, target := range []string{"/staff", "/books", "/circulation", "/history", "/students"} {
		rr := p.do(t, http.MethodGet, target, nil)
		require.Equal(t, http.StatusOK, rr.Code, "GET %s", target)
		assertFormsCarryToken(t, p.lastBody)
	}
}

// assertFormsCarryToken checks that every POST form in the markup embeds the
// csrf_token hidden field, so nothing a browser submits can fail validation.
func assertFormsCarryToken(t *testing.T, body string) {
	t.Helper()
	forms := strings.Count(body, `method="post"`)
	tokens := len(csrfInputPattern.FindAllString(body, -1))
	require.Greater(t, forms, 0, "expected at least one POST form")
	assert.Equal(t, forms, tokens, "every POST form needs a csrf_token field")
}

func TestPostWithoutCSRFTokenRejected(t *testing.T) {
	p := newPortal(t, time.Minute)
	p.login(t, "staff@example.edu", "pw")

	form := url.Values{}
	form.Set("register_number", "REG42")
	form.Set("isbn", "978")
	rr := p.do(t, http.MethodPost, "/circulation/issue", form)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestHistoryExportCSV(t *testing.T) {
	p := newPortal(t, time.Minute)
	p.login(t, "staff@example.edu", "pw")

	rr := p.do(t, http.MethodGet, "/history/export", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, p.lastBody, "The Go Programming Language")
	assert.Contains(t, p.lastBody, "REG42")
	assert.Contains(t, p.lastBody, "2026-08-01")
}

func TestBackendRejectionMidSessionForcesLogout(t *testing.T) {
	p := newPortal(t, time.Minute)
	p.login(t, "staff@example.edu", "pw")

	rr := p.do(t, http.MethodGet, "/books", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	// The backend revokes the token out from under the portal.
	p.backendReject.Store(true)

	rr = p.do(t, http.MethodGet, "/books", nil)
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))
	assert.NotContains(t, p.cookies, "lms_session")

	// The session is gone server-side too, not just the cookie.
	rr = p.do(t, http.MethodGet, "/books", nil)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
}

func TestTamperedSessionCookieIsAnonymous(t *testing.T) {
	p := newPortal(t, time.Minute)
	p.login(t, "staff@example.edu", "pw")

	p.cookies["lms_session"] = &http.Cookie{Name: "lms_session", Value: "garbage"}
	rr := p.do(t, http.MethodGet, "/books", nil)
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))
}

func TestLoginPageRedirectsWhenAlreadySignedIn(t *testing.T) {
	p := newPortal(t, time.Minute)
	p.login(t, "staff@example.edu", "pw")

	rr := p.do(t, http.MethodGet, "/login", nil)
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/staff", rr.Header().Get("Location"))
}

func TestRoleRedirects(t *testing.T) {
	p := newPortal(t, time.Minute)
	p.login(t, "staff@example.edu", "pw")

	rr := p.do(t, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/staff", rr.Header().Get("Location"))

	rr = p.do(t, http.MethodGet, "/dashboard", nil)
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/staff", rr.Header().Get("Location"))
}
