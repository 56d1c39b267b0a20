// Package session owns the Principal lifecycle for a browser tab. The session
// record travels in a signed cookie with no expiry attribute, so the browser
// discards it when the tab session ends; the server keeps only a small state
// table used to revalidate, revoke, and expire sessions.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Kotresh021/frontendLMS/internal/domain"
)

const cookieName = "lms_session"

// Record is the persisted representation of a Principal: the single
// serialized session record for the current tab.
type Record struct {
	ID          string
	UserID      string
	DisplayName string
	Role        domain.Role
	Token       string
	IssuedAt    time.Time
}

// Principal converts the record to its in-memory Principal form.
func (r *Record) Principal() domain.Principal {
	return domain.Principal{
		SessionID:   r.ID,
		UserID:      r.UserID,
		DisplayName: r.DisplayName,
		Role:        r.Role,
		Token:       r.Token,
	}
}

// Verifier revalidates a stored bearer credential against the backend.
type Verifier interface {
	VerifyToken(ctx context.Context, token string) error
}

// Status is the server-side lifecycle state of a session id.
type Status int

const (
	// StatusUnknown means the store has never seen the session id.
	StatusUnknown Status = iota
	// StatusPending means the record was restored from the cookie and its
	// backend revalidation has not completed yet.
	StatusPending
	// StatusVerified means the backend acknowledged the credential.
	StatusVerified
	// StatusRevoked means the session ended (logout, idle expiry, or a
	// rejected credential) and must never authenticate again.
	StatusRevoked
)

// EndReason records why a session was revoked.
type EndReason string

const (
	EndLogout   EndReason = "logout"
	EndIdle     EndReason = "idle"
	EndRejected EndReason = "rejected"
)

type sessionState struct {
	status   Status
	reason   EndReason
	inFlight bool
	updated  time.Time
}

// Store issues, restores, revalidates, and revokes tab sessions.
// Login and logout are last-writer-wins on the single session record.
type Store struct {
	secret     []byte
	verifier   Verifier
	production bool
	logger     *slog.Logger

	// OnStart and OnEnd, when set, observe session lifecycle transitions.
	// The idle monitor arms and disarms through these hooks.
	OnStart func(sessionID string)
	OnEnd   func(sessionID string)

	mu     sync.Mutex
	states map[string]*sessionState

	done      chan struct{}
	closeOnce sync.Once
}

// NewStore creates a session store signing cookies with the given secret.
// Call Close when discarding the store to stop its cleanup goroutine.
func NewStore(secret []byte, verifier Verifier, production bool, logger *slog.Logger) *Store {
	s := &Store{
		secret:     secret,
		verifier:   verifier,
		production: production,
		logger:     logger,
		states:     make(map[string]*sessionState),
		done:       make(chan struct{}),
	}

	// Background cleanup: drop state for sessions idle for over a day.
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-s.done:
				return
			case <-ticker.C:
			}
			s.mu.Lock()
			for id, st := range s.states {
				if time.Since(st.updated) > 24*time.Hour {
					delete(s.states, id)
				}
			}
			s.mu.Unlock()
		}
	}()

	return s
}

// Close stops the store's cleanup goroutine. Idempotent; the store itself
// stays usable, it just stops expiring stale state.
func (s *Store) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}

// NewRecord builds a session record for a freshly authenticated identity.
func NewRecord(userID, displayName string, role domain.Role, token string) Record {
	return Record{
		ID:          uuid.NewString(),
		UserID:      userID,
		DisplayName: displayName,
		Role:        role,
		Token:       token,
		IssuedAt:    time.Now().UTC(),
	}
}

// Issue makes rec the current session: it signs and sets the session cookie
// and marks the session verified (the login itself is the server
// acknowledgement). Any previously issued cookie is simply overwritten.
func (s *Store) Issue(w http.ResponseWriter, rec Record) error {
	claims := jwt.MapClaims{
		"sid":  rec.ID,
		"sub":  rec.UserID,
		"name": rec.DisplayName,
		"role": string(rec.Role),
		"tok":  rec.Token,
		"iat":  rec.IssuedAt.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return fmt.Errorf("sign session record: %w", err)
	}

	// No Expires/MaxAge: a session cookie, dropped when the tab session ends.
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.production,
		SameSite: http.SameSiteLaxMode,
	})

	s.mu.Lock()
	s.states[rec.ID] = &sessionState{status: StatusVerified, updated: time.Now()}
	s.mu.Unlock()

	if s.OnStart != nil {
		s.OnStart(rec.ID)
	}
	return nil
}

// Read decodes the session record from the request cookie. A missing or
// garbled cookie yields (nil, nil): not authenticated, not an error.
func (s *Store) Read(r *http.Request) (*Record, error) {
	cookie, err := r.Cookie(cookieName)
	if err != nil || cookie.Value == "" {
		return nil, nil
	}

	tok, err := jwt.Parse(cookie.Value, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tok.Valid {
		return nil, nil
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, nil
	}

	rec := Record{}
	rec.ID, _ = claims["sid"].(string)
	rec.UserID, _ = claims["sub"].(string)
	rec.DisplayName, _ = claims["name"].(string)
	rec.Token, _ = claims["tok"].(string)
	if roleStr, ok := claims["role"].(string); ok {
		role, err := domain.ParseRole(roleStr)
		if err != nil {
			return nil, nil
		}
		rec.Role = role
	}
	if iat, ok := claims["iat"].(float64); ok {
		rec.IssuedAt = time.Unix(int64(iat), 0).UTC()
	}
	if rec.ID == "" || rec.Token == "" {
		return nil, nil
	}
	return &rec, nil
}

// Restore reads the session record and reports its server-side status. A
// record the store has never seen (fresh process, restored tab) enters
// StatusPending; the caller is expected to kick off Revalidate.
func (s *Store) Restore(r *http.Request) (*Record, Status) {
	rec, _ := s.Read(r)
	if rec == nil {
		return nil, StatusUnknown
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[rec.ID]
	if !ok {
		s.states[rec.ID] = &sessionState{status: StatusPending, updated: time.Now()}
		return rec, StatusPending
	}
	st.updated = time.Now()
	return rec, st.status
}

// BeginRevalidation claims the single revalidation slot for a pending
// session. It returns true when the caller should run Revalidate.
func (s *Store) BeginRevalidation(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[sessionID]
	if !ok || st.status != StatusPending || st.inFlight {
		return false
	}
	st.inFlight = true
	return true
}

// Revalidate checks the record's credential against the backend. Failure of
// any kind is fail-closed: the session is revoked. A completion that arrives
// after the session was revoked (logout raced the verify call) is discarded
// rather than resurrecting the Principal.
func (s *Store) Revalidate(ctx context.Context, rec Record) {
	err := s.verifier.VerifyToken(ctx, rec.Token)

	s.mu.Lock()
	st, ok := s.states[rec.ID]
	if !ok || st.status != StatusPending {
		if ok {
			st.inFlight = false
		}
		s.mu.Unlock()
		return // session ended while the verify call was in flight
	}
	st.inFlight = false
	st.updated = time.Now()
	if err != nil {
		st.status = StatusRevoked
		st.reason = EndRejected
		s.mu.Unlock()
		s.logger.Warn("session revalidation failed", "session", rec.ID, "error", err)
		if s.OnEnd != nil {
			s.OnEnd(rec.ID)
		}
		return
	}
	st.status = StatusVerified
	s.mu.Unlock()
	if s.OnStart != nil {
		s.OnStart(rec.ID)
	}
}

// Revoke ends a session. Idempotent: once revoked, later calls (with any
// reason) leave the state untouched.
func (s *Store) Revoke(sessionID string, reason EndReason) {
	if sessionID == "" {
		return
	}
	s.mu.Lock()
	st, ok := s.states[sessionID]
	if !ok {
		s.states[sessionID] = &sessionState{status: StatusRevoked, reason: reason, updated: time.Now()}
		s.mu.Unlock()
		if s.OnEnd != nil {
			s.OnEnd(sessionID)
		}
		return
	}
	if st.status == StatusRevoked {
		s.mu.Unlock()
		return
	}
	st.status = StatusRevoked
	st.reason = reason
	st.updated = time.Now()
	s.mu.Unlock()
	if s.OnEnd != nil {
		s.OnEnd(sessionID)
	}
}

// Clear destroys the current session: revokes the id and expires the cookie.
// Safe to call with no active session.
func (s *Store) Clear(w http.ResponseWriter, sessionID string, reason EndReason) {
	s.Revoke(sessionID, reason)
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.production,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// Status returns the server-side status of a session id.
func (s *Store) Status(sessionID string) Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[sessionID]
	if !ok {
		return StatusUnknown
	}
	return st.status
}

// EndReasonFor returns why a revoked session ended.
func (s *Store) EndReasonFor(sessionID string) EndReason {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[sessionID]
	if !ok || st.status != StatusRevoked {
		return ""
	}
	return st.reason
}
