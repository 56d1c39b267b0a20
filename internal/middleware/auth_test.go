package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kotresh021/frontendLMS/internal/domain"
	"github.com/Kotresh021/frontendLMS/internal/idle"
	"github.com/Kotresh021/frontendLMS/internal/session"
)

type okVerifier struct{ err error }

func (v okVerifier) VerifyToken(ctx context.Context, token string) error { return v.err }

func newFixture(t *testing.T, verifyErr error) (*session.Store, *idle.Monitor) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := session.NewStore([]byte("secret"), okVerifier{err: verifyErr}, false, logger)
	monitor := idle.NewMonitor(time.Minute, func(id string) {
		store.Revoke(id, session.EndIdle)
	}, logger)
	store.OnStart = monitor.Arm
	store.OnEnd = monitor.Disarm
	return store, monitor
}

func loginRequest(t *testing.T, store *session.Store, rec session.Record) *http.Request {
	t.Helper()
	rr := httptest.NewRecorder()
	require.NoError(t, store.Issue(rr, rec))
	r := httptest.NewRequest(http.MethodGet, "/books", nil)
	for _, c := range rr.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestRestoreSession_VerifiedAttachesPrincipalAndTouches(t *testing.T) {
	store, monitor := newFixture(t, nil)
	rec := session.NewRecord("u1", "Asha", domain.RoleStaff, "tok")
	r := loginRequest(t, store, rec)

	var got domain.Principal
	var ok, restoring bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = domain.PrincipalFromContext(r.Context())
		restoring = domain.RestoringFromContext(r.Context())
	})

	RestoreSession(store, monitor)(next).ServeHTTP(httptest.NewRecorder(), r)

	require.True(t, ok)
	assert.Equal(t, rec.ID, got.SessionID)
	assert.Equal(t, domain.RoleStaff, got.Role)
	assert.False(t, restoring)
	assert.Equal(t, idle.Armed, monitor.StateOf(rec.ID))
}

func TestRestoreSession_PendingMarksRestoringAndRevalidates(t *testing.T) {
	store, _ := newFixture(t, nil)
	rec := session.NewRecord("u1", "Asha", domain.RoleStaff, "tok")
	r := loginRequest(t, store, rec)

	// A fresh store simulates a process restart: the cookie is valid but the
	// server has no state for it.
	fresh, freshMonitor := newFixture(t, nil)

	var restoring bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		restoring = domain.RestoringFromContext(r.Context())
	})
	RestoreSession(fresh, freshMonitor)(next).ServeHTTP(httptest.NewRecorder(), r)

	assert.True(t, restoring)
	require.Eventually(t, func() bool {
		return fresh.Status(rec.ID) == session.StatusVerified
	}, time.Second, 5*time.Millisecond)
}

func TestRestoreSession_RejectedCredentialRevokes(t *testing.T) {
	store, _ := newFixture(t, nil)
	rec := session.NewRecord("u1", "Asha", domain.RoleStaff, "tok")
	r := loginRequest(t, store, rec)

	fresh, freshMonitor := newFixture(t, assertionError{})
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	RestoreSession(fresh, freshMonitor)(next).ServeHTTP(httptest.NewRecorder(), r)

	require.Eventually(t, func() bool {
		return fresh.Status(rec.ID) == session.StatusRevoked
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, session.EndRejected, fresh.EndReasonFor(rec.ID))
}

type assertionError struct{}

func (assertionError) Error() string { return "token rejected" }

func TestRestoreSession_RevokedClearsCookie(t *testing.T) {
	store, monitor := newFixture(t, nil)
	rec := session.NewRecord("u1", "Asha", domain.RoleStaff, "tok")
	r := loginRequest(t, store, rec)
	store.Revoke(rec.ID, session.EndIdle)

	var hadPrincipal bool
	var reason session.EndReason
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hadPrincipal = domain.PrincipalFromContext(r.Context())
		reason = EndReasonFromContext(r.Context())
	})
	rr := httptest.NewRecorder()
	RestoreSession(store, monitor)(next).ServeHTTP(rr, r)

	assert.False(t, hadPrincipal)
	assert.Equal(t, session.EndIdle, reason)
	assert.Contains(t, rr.Header().Get("Set-Cookie"), "Max-Age=0")
}

func TestRequireRoles_RedirectsAnonymous(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	rr := httptest.NewRecorder()
	RequireRoles()(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/books", nil))

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))
}

func TestRequireRoles_IdleExpiryAddsNotice(t *testing.T) {
	store, monitor := newFixture(t, nil)
	rec := session.NewRecord("u1", "Asha", domain.RoleStaff, "tok")
	r := loginRequest(t, store, rec)
	store.Revoke(rec.ID, session.EndIdle)

	chain := RestoreSession(store, monitor)(RequireRoles()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))
	rr := httptest.NewRecorder()
	chain.ServeHTTP(rr, r)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login?notice=idle", rr.Header().Get("Location"))
}

func TestRequireRoles_RoleMismatchRedirectsWithoutDetail(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/audit", nil)
	ctx := domain.WithPrincipal(r.Context(), domain.Principal{SessionID: "s1", Role: domain.RoleStudent})
	r = r.WithContext(ctx)

	rr := httptest.NewRecorder()
	RequireRoles(domain.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})).ServeHTTP(rr, r)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))
}

func TestRequireRoles_AllowsMatchingRole(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/books", nil)
	ctx := domain.WithPrincipal(r.Context(), domain.Principal{SessionID: "s1", Role: domain.RoleStaff})
	r = r.WithContext(ctx)

	rr := httptest.NewRecorder()
	RequireRoles(domain.RoleAdmin, domain.RoleStaff)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})).ServeHTTP(rr, r)

	assert.Equal(t, http.StatusTeapot, rr.Code)
}

func TestRequireRoles_RestoringRendersPlaceholder(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/books", nil)
	ctx := domain.WithPrincipal(r.Context(), domain.Principal{SessionID: "s1", Role: domain.RoleStaff})
	ctx = domain.WithRestoring(ctx, true)
	r = r.WithContext(ctx)

	rr := httptest.NewRecorder()
	RequireRoles(domain.RoleStaff)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})).ServeHTTP(rr, r)

	// Neither the content nor the login page: a neutral retrying view.
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Restoring your session")
	assert.Equal(t, "1", rr.Header().Get("Refresh"))
}
