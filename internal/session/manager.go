package session

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/rshade/emimeter/internal/emissions"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// ErrNotFound indicates a session ID with no live session behind it,
// either because it never existed or because it was evicted.
var ErrNotFound = constError("session not found")

// Options configure a Manager.
type Options struct {
	// TTL is how long an idle session survives. Zero disables TTL
	// pruning.
	TTL time.Duration
	// MaxSessions caps live sessions; zero means no cap. When the cap
	// is reached the longest-idle session is evicted to make room.
	MaxSessions int
	// Logger receives lifecycle events.
	Logger zerolog.Logger
}

// Manager owns the live sessions behind the HTTP API. Sessions are
// fully isolated from each other; the manager only tracks lifecycle.
// All methods are safe for concurrent use.
type Manager struct {
	factors emissions.Factors
	ttl     time.Duration
	max     int
	logger  zerolog.Logger

	mu       sync.Mutex
	sessions map[string]*Session

	// now is replaceable in tests.
	now func() time.Time
}

// NewManager builds a Manager that creates sessions against the given
// factor table.
func NewManager(factors emissions.Factors, opts Options) *Manager {
	return &Manager{
		factors:  factors,
		ttl:      opts.TTL,
		max:      opts.MaxSessions,
		logger:   opts.Logger,
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// Create starts a new session, optionally pre-filled with the demo
// dataset. Expired sessions are pruned first; if the cap is still hit,
// the longest-idle session is evicted.
func (m *Manager) Create(withSample bool) (*Session, error) {
	var (
		sess *Session
		err  error
	)
	if withSample {
		sess, err = NewWithSample(m.factors)
	} else {
		sess, err = New(m.factors)
	}
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.pruneLocked(now)
	if m.max > 0 && len(m.sessions) >= m.max {
		m.evictOldestLocked()
	}
	m.sessions[sess.ID()] = sess

	m.logger.Info().
		Str("component", "session").
		Str("operation", "create").
		Str("session_id", sess.ID()).
		Bool("with_sample", withSample).
		Int("live_sessions", len(m.sessions)).
		Msg("session created")

	return sess, nil
}

// Get returns the live session with the given ID and refreshes its idle
// timer.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.pruneLocked(now)

	sess, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	sess.touch(now)
	return sess, nil
}

// Delete removes a session. Deleting an unknown ID returns ErrNotFound.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(m.sessions, id)

	m.logger.Info().
		Str("component", "session").
		Str("operation", "delete").
		Str("session_id", id).
		Int("live_sessions", len(m.sessions)).
		Msg("session deleted")

	return nil
}

// Len reports the number of live sessions after pruning.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pruneLocked(m.now())
	return len(m.sessions)
}

// PruneExpired removes idle sessions past the TTL and reports how many
// were dropped. The server calls this on a timer so abandoned sessions
// do not pile up between requests.
func (m *Manager) PruneExpired() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pruneLocked(m.now())
}

// pruneLocked drops sessions idle past the TTL. Callers hold m.mu.
func (m *Manager) pruneLocked(now time.Time) int {
	if m.ttl <= 0 {
		return 0
	}

	pruned := 0
	for id, sess := range m.sessions {
		if now.Sub(sess.LastUpdated()) > m.ttl {
			delete(m.sessions, id)
			pruned++
			m.logger.Debug().
				Str("component", "session").
				Str("operation", "prune").
				Str("session_id", id).
				Msg("expired session pruned")
		}
	}
	return pruned
}

// evictOldestLocked removes the longest-idle session. Callers hold m.mu.
func (m *Manager) evictOldestLocked() {
	var (
		oldestID string
		oldestAt time.Time
	)
	for id, sess := range m.sessions {
		at := sess.LastUpdated()
		if oldestID == "" || at.Before(oldestAt) {
			oldestID = id
			oldestAt = at
		}
	}
	if oldestID == "" {
		return
	}
	delete(m.sessions, oldestID)

	m.logger.Warn().
		Str("component", "session").
		Str("operation", "evict").
		Str("session_id", oldestID).
		Int("max_sessions", m.max).
		Msg("session cap reached, evicted longest-idle session")
}
