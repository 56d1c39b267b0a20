// Package idle enforces the maximum inactivity window for active sessions.
// Each armed session holds exactly one countdown timer; any interaction
// resets it, and expiry fires the logout callback exactly once.
package idle

import (
	"log/slog"
	"sync"
	"time"
)

// State is the lifecycle state of a session in the monitor.
type State int

const (
	// Inactive: no countdown is running for the session.
	Inactive State = iota
	// Armed: a countdown is running and interactions reset it.
	Armed
	// Expired: the countdown fired; terminal until the session is re-armed
	// by a fresh login.
	Expired
)

type entry struct {
	timer   *time.Timer
	expired bool
}

// Monitor tracks one countdown per active session.
type Monitor struct {
	timeout  time.Duration
	onExpire func(sessionID string)
	logger   *slog.Logger

	mu       sync.Mutex
	sessions map[string]*entry
}

// NewMonitor creates a monitor that calls onExpire after timeout of
// inactivity. onExpire runs on the timer goroutine and must not block.
func NewMonitor(timeout time.Duration, onExpire func(sessionID string), logger *slog.Logger) *Monitor {
	return &Monitor{
		timeout:  timeout,
		onExpire: onExpire,
		logger:   logger,
		sessions: make(map[string]*entry),
	}
}

// Arm starts (or restarts) the countdown for a session. Re-arming cancels
// any previously scheduled expiry first, so at most one timer exists per
// session and duplicate forced logouts cannot occur.
func (m *Monitor) Arm(sessionID string) {
	if sessionID == "" {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.sessions[sessionID]; ok && e.timer != nil {
		e.timer.Stop()
	}
	e := &entry{}
	e.timer = time.AfterFunc(m.timeout, func() { m.expire(sessionID) })
	m.sessions[sessionID] = e
}

// Touch resets the countdown to the full duration. A touch on a session that
// is not armed is ignored — interactions never arm a session by themselves.
func (m *Monitor) Touch(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[sessionID]
	if !ok || e.expired {
		return
	}
	e.timer.Stop()
	e.timer = time.AfterFunc(m.timeout, func() { m.expire(sessionID) })
}

// Disarm cancels the countdown, returning the session to Inactive. Called on
// explicit logout.
func (m *Monitor) Disarm(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[sessionID]
	if !ok {
		return
	}
	if e.timer != nil {
		e.timer.Stop()
	}
	delete(m.sessions, sessionID)
}

// StateOf returns the monitor's view of a session.
func (m *Monitor) StateOf(sessionID string) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[sessionID]
	if !ok {
		return Inactive
	}
	if e.expired {
		return Expired
	}
	return Armed
}

// ArmedCount returns how many countdowns are currently pending.
func (m *Monitor) ArmedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.sessions {
		if !e.expired {
			n++
		}
	}
	return n
}

func (m *Monitor) expire(sessionID string) {
	m.mu.Lock()
	e, ok := m.sessions[sessionID]
	if !ok || e.expired {
		m.mu.Unlock()
		return
	}
	e.expired = true
	e.timer = nil
	m.mu.Unlock()

	if m.logger != nil {
		m.logger.Info("session expired after inactivity", "session", sessionID, "timeout", m.timeout)
	}
	if m.onExpire != nil {
		m.onExpire(sessionID)
	}
}
