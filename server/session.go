package server

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/knatarajan-dev/casfolio"
	"github.com/knatarajan-dev/casfolio/agent"
	"github.com/patrickmn/go-cache"
)

// Session holds the artifacts of one uploaded statement. Portfolios are
// re-derived from scratch on every upload; a session only ever swaps its
// portfolio wholesale, never patches it.
type Session struct {
	ID        string
	Portfolio *casfolio.Portfolio

	// mu serializes chat turns: the underlying genai chat is stateful.
	mu      sync.Mutex
	analyst *agent.Agent
}

// sessionStore is a TTL-bounded in-memory session map. Nothing survives the
// process; that is the declared persistence contract.
type sessionStore struct {
	c *cache.Cache
}

func newSessionStore(ttl time.Duration) *sessionStore {
	return &sessionStore{c: cache.New(ttl, ttl/2)}
}

// get returns the session with this id, or nil.
func (s *sessionStore) get(id string) *Session {
	if v, ok := s.c.Get(id); ok {
		return v.(*Session)
	}
	return nil
}

// put stores a session under its id, minting one when empty, and returns it.
func (s *sessionStore) put(id string, session *Session) string {
	if id == "" {
		id = uuid.NewString()
	}
	session.ID = id
	s.c.Set(id, session, cache.DefaultExpiration)
	return id
}
