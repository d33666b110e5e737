// Package session keeps one browser per client, addressed by a UUID, so HTTP
// clients can drive the catalog browser with typed commands.
package session

import (
	"errors"
	"log"
	"sync"
	"time"

	"bookbrowser/internal/browser"

	"github.com/google/uuid"
)

// ErrNotFound is returned for an unknown or evicted session id.
var ErrNotFound = errors.New("session not found")

// Session is one browsing client. Its browser is only touched under mu.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu       sync.Mutex
	lastUsed time.Time
	browser  *browser.Browser
}

// Do runs fn with exclusive access to the session's browser.
func (s *Session) Do(fn func(b *browser.Browser) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = time.Now()
	return fn(s.browser)
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}

// Store is the in-memory session table. Sessions idle for longer than ttl are
// evicted by a background sweeper until Close is called.
type Store struct {
	catalog browser.Catalog
	ttl     time.Duration

	mu       sync.RWMutex
	sessions map[string]*Session

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// NewStore starts the sweeper when ttl is positive.
func NewStore(catalog browser.Catalog, ttl time.Duration) *Store {
	s := &Store{
		catalog:  catalog,
		ttl:      ttl,
		sessions: make(map[string]*Session),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	if ttl > 0 {
		go s.sweepLoop(sweepInterval(ttl))
	} else {
		close(s.done)
	}
	return s
}

func sweepInterval(ttl time.Duration) time.Duration {
	return max(ttl/2, time.Second)
}

// Create opens a session on the unfiltered catalog.
func (s *Store) Create(theme browser.Theme) *Session {
	now := time.Now()
	sess := &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		lastUsed:  now,
		browser:   browser.New(s.catalog, theme),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess
}

func (s *Store) Get(id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return sess, nil
}

func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(s.sessions, id)
	return nil
}

// Len is the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep evicts sessions last used before cutoff and reports how many went.
func (s *Store) Sweep(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	evicted := 0
	for id, sess := range s.sessions {
		if sess.idleSince().Before(cutoff) {
			delete(s.sessions, id)
			evicted++
		}
	}
	return evicted
}

func (s *Store) sweepLoop(interval time.Duration) {
	defer close(s.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			if n := s.Sweep(now.Add(-s.ttl)); n > 0 {
				log.Printf("sessions evicted: count=%d live=%d", n, s.Len())
			}
		}
	}
}

// Close stops the sweeper and waits for it to exit.
func (s *Store) Close() {
	s.once.Do(func() { close(s.stop) })
	<-s.done
}
