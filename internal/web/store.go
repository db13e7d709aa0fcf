package web

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/agriscan/internal/scan"
)

const (
	DefaultSessionTTL  = time.Hour
	DefaultMaxSessions = 10000
)

type storeEntry struct {
	sess scan.Session
	seen time.Time
}

// Store keeps one scan session per browser. Updates are serialized so
// two scans in the same session never interleave. Sessions idle for
// longer than the TTL are dropped, and the store never holds more than
// its cap: creating a session past the cap evicts the least recently
// seen one.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*storeEntry
	ttl      time.Duration
	max      int
	now      func() time.Time
}

// NewStore creates an empty store. Non-positive arguments pick the
// defaults.
func NewStore(ttl time.Duration, max int) *Store {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if max <= 0 {
		max = DefaultMaxSessions
	}
	return &Store{
		sessions: make(map[string]*storeEntry),
		ttl:      ttl,
		max:      max,
		now:      time.Now,
	}
}

// Create issues a fresh session under a new random ID.
func (s *Store) Create() scan.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.sessions) >= s.max {
		s.sweepLocked()
	}
	for len(s.sessions) >= s.max {
		s.evictOldestLocked()
	}
	return s.getLocked(uuid.NewString())
}

// Has reports whether id names a live session. Malformed IDs never do.
func (s *Store) Has(id string) bool {
	if _, err := uuid.Parse(id); err != nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return false
	}
	if s.expired(e) {
		delete(s.sessions, id)
		return false
	}
	return true
}

// Get returns the session for id, creating an upload session when it has
// gone away since the request was admitted.
func (s *Store) Get(id string) scan.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getLocked(id)
}

func (s *Store) getLocked(id string) scan.Session {
	e, ok := s.sessions[id]
	if !ok {
		sess := scan.New(scan.MethodUpload)
		sess.ID = id
		e = &storeEntry{sess: sess}
		s.sessions[id] = e
	}
	e.seen = s.now()
	return e.sess
}

// Update applies fn to the session for id and stores the session it
// returns, error or not.
func (s *Store) Update(id string, fn func(scan.Session) (scan.Session, error)) (scan.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(s.getLocked(id))
	next.ID = id
	s.sessions[id] = &storeEntry{sess: next, seen: s.now()}
	return next, err
}

// Sweep drops idle sessions and returns how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked()
}

func (s *Store) sweepLocked() int {
	n := 0
	for id, e := range s.sessions {
		if s.expired(e) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

func (s *Store) evictOldestLocked() {
	var (
		oldest string
		seen   time.Time
	)
	for id, e := range s.sessions {
		if oldest == "" || e.seen.Before(seen) {
			oldest, seen = id, e.seen
		}
	}
	delete(s.sessions, oldest)
}

func (s *Store) expired(e *storeEntry) bool {
	return s.now().Sub(e.seen) > s.ttl
}

// Len returns the number of sessions held.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
