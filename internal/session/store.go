package session

import (
	"sync"

	"github.com/AlexGrady9/SuperShopBot/internal/model"
)

// Store holds one conversation session per user and is the only component
// allowed to mutate them. Each user id gets its own lock so a burst of
// messages from one user serializes without blocking anyone else; the
// outer lock only guards the map itself.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	sess model.Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{entries: make(map[string]*entry)}
}

func (s *Store) entryFor(userID string) *entry {
	s.mu.RLock()
	e, ok := s.entries[userID]
	s.mu.RUnlock()
	if ok {
		return e
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok = s.entries[userID]; ok {
		return e
	}
	e = &entry{sess: model.NewSession(userID)}
	s.entries[userID] = e
	return e
}

// Get returns the user's current session, creating a fresh idle one on
// first contact. It never fails.
func (s *Store) Get(userID string) model.Session {
	e := s.entryFor(userID)
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sess
}

// Apply runs fn against the user's current session under the per-user lock
// and commits whatever session fn returns. Concurrent Apply calls for the
// same user serialize, so no update is lost; fn must not call back into
// the store for the same user.
func (s *Store) Apply(userID string, fn func(model.Session) model.Session) {
	e := s.entryFor(userID)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sess = fn(e.sess)
}

// Clear resets the user's session to a fresh idle one.
func (s *Store) Clear(userID string) {
	e := s.entryFor(userID)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sess = model.NewSession(userID)
}
