package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nguyentantai21042004/study-scribe/internal/model"
)

var (
	// ErrNotFound is returned for an entry id the session does not hold.
	ErrNotFound = errors.New("transcript not found in session")
	// ErrBusy is returned by TryBegin while another request runs in the session.
	ErrBusy = errors.New("another request is already running in this session")
)

// Summary is the generated summary attached to one entry.
type Summary struct {
	Style     string    `json:"style"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Entry is one transcript of a session plus its optional summary. The record
// itself is never modified.
type Entry struct {
	ID      uuid.UUID               `json:"id"`
	Record  *model.TranscriptRecord `json:"record"`
	SavedTo string                  `json:"saved_to,omitempty"`
	Summary *Summary                `json:"summary,omitempty"`
}

// Session is the ordered transcript list of one browser session.
type Session struct {
	ID uuid.UUID

	mu       sync.Mutex
	entries  []*Entry
	index    map[uuid.UUID]*Entry
	busy     bool
	lastSeen time.Time
}

func newSession(id uuid.UUID, now time.Time) *Session {
	return &Session{
		ID:       id,
		index:    make(map[uuid.UUID]*Entry),
		lastSeen: now,
	}
}

// Append adds a persisted record as the newest entry.
func (s *Session) Append(rec *model.TranscriptRecord, savedTo string) Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := &Entry{ID: rec.ID, Record: rec, SavedTo: savedTo}
	s.entries = append(s.entries, e)
	s.index[rec.ID] = e
	return *e
}

// Get returns a copy of the entry with id.
func (s *Session) Get(id uuid.UUID) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.index[id]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return *e, nil
}

// List returns copies of all entries in insertion order.
func (s *Session) List() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, *e)
	}
	return out
}

// SetSummary attaches sum to the entry with id, replacing any earlier one.
func (s *Session) SetSummary(id uuid.UUID, sum Summary) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.index[id]
	if !ok {
		return Entry{}, ErrNotFound
	}
	e.Summary = &sum
	return *e, nil
}

// TryBegin marks the session busy. It fails with ErrBusy if a request is
// already running; a successful call must be paired with End.
func (s *Session) TryBegin() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.busy {
		return ErrBusy
	}
	s.busy = true
	return nil
}

// End clears the busy mark set by TryBegin.
func (s *Session) End() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return 0
	}
	return now.Sub(s.lastSeen)
}
