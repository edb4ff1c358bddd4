// Package session owns the single authoritative record of the currently
// signed-in user and derives which navigation affordances are visible from
// it and from the active route.
package session

import (
	"sync"

	"github.com/dmitrijs2005/umsclient/internal/client/models"
)

// Store holds the process-wide session. Lifecycle: sign-in sets it, sign-out
// clears it, a successful profile mutation replaces the record wholesale.
// No other writer exists.
type Store struct {
	mu      sync.RWMutex
	current *models.UserRecord
}

func NewStore() *Store {
	return &Store{}
}

// Current returns a copy of the signed-in user's record and whether a
// session exists.
func (s *Store) Current() (models.UserRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return models.UserRecord{}, false
	}
	return *s.current, true
}

// SignedIn reports session presence.
func (s *Store) SignedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}

// Set replaces the session record. The copy keeps later mutations of the
// caller's value from leaking into the store.
func (s *Store) Set(rec models.UserRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := rec
	s.current = &cp
}

// Clear drops the session.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}
