package programdetails

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/openedx/programs-admin/internal/pkg/logger"
)

// SessionStore keeps the open views. Least recently used views are dropped once the store is
// full and every view expires after ttl; unsaved edits go with them.
type SessionStore struct {
	cache *expirable.LRU[string, *View]
}

// NewSessionStore creates a store holding at most size views.
func NewSessionStore(size int, ttl time.Duration) *SessionStore {
	log := logger.Component("programdetails")
	onEvict := func(id string, v *View) {
		log.Debug().Str("viewID", id).Int64("programID", v.ProgramID()).Msg("Program details view discarded")
	}
	return &SessionStore{cache: expirable.NewLRU[string, *View](size, onEvict, ttl)}
}

// Put registers v under its id.
func (s *SessionStore) Put(v *View) {
	s.cache.Add(v.ID(), v)
}

// Get returns the view with id and refreshes its recency.
func (s *SessionStore) Get(id string) (*View, bool) {
	return s.cache.Get(id)
}

// Remove discards the view with id.
func (s *SessionStore) Remove(id string) {
	s.cache.Remove(id)
}

// Len reports how many views are open.
func (s *SessionStore) Len() int {
	return s.cache.Len()
}
