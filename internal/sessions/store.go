// Package sessions holds the in-memory token store. Tokens are opaque random
// strings handed to clients as cookies; the mapping to session values lives
// only in process memory, so a restart logs everyone out.
package sessions

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"tableside/internal/core/domain/model/session"
)

const tokenBytes = 32

// Store is a concurrency-safe token to session mapping.
type Store struct {
	mu      sync.RWMutex
	byToken map[string]session.Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{
		byToken: make(map[string]session.Session),
	}
}

// Add stores the session under a fresh random token and returns the token.
func (s *Store) Add(sess session.Session) string {
	token := newToken()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.byToken[token] = sess

	return token
}

// Get retrieves the session for a token.
func (s *Store) Get(token string) (session.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.byToken[token]
	return sess, ok
}

// Delete removes a token. Removing an unknown token is a no-op.
func (s *Store) Delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byToken, token)
}

// PurgeExpired removes every session whose expiry has passed and returns how
// many were removed. Expired sessions are also rejected lazily on lookup;
// this sweep just reclaims memory for tokens nobody presents anymore.
func (s *Store) PurgeExpired(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	purged := 0
	for token, sess := range s.byToken {
		if sess.IsExpired(now) {
			delete(s.byToken, token)
			purged++
		}
	}
	return purged
}

// Len returns the number of stored sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byToken)
}

func newToken() string {
	buf := make([]byte, tokenBytes)
	// rand.Read never fails on supported platforms.
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
