package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Manager owns all live sessions. Sessions idle for longer than the TTL are
// dropped on the next lookup.
type Manager struct {
	ttl time.Duration
	now func() time.Time

	mu        sync.Mutex
	sessions  map[uuid.UUID]*Session
	lastSweep time.Time
}

// NewManager creates a Manager. A non-positive ttl keeps sessions forever.
func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[uuid.UUID]*Session),
	}
}

// Get returns the session for id, creating a fresh one when id is unknown,
// invalid or expired. The returned session id may differ from the input.
func (m *Manager) Get(id string) *Session {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sweepLocked(now)

	if parsed, err := uuid.Parse(id); err == nil {
		if s, ok := m.sessions[parsed]; ok {
			if !m.expired(s, now) {
				s.touch(now)
				return s
			}
			delete(m.sessions, parsed)
		}
	}

	s := newSession(uuid.New(), now)
	m.sessions[s.ID] = s
	return s
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *Manager) sweepLocked(now time.Time) {
	if m.ttl <= 0 || now.Sub(m.lastSweep) < m.ttl/10 {
		return
	}
	m.lastSweep = now

	for id, s := range m.sessions {
		if m.expired(s, now) {
			delete(m.sessions, id)
		}
	}
}

func (m *Manager) expired(s *Session, now time.Time) bool {
	return m.ttl > 0 && s.idleSince(now) > m.ttl
}
