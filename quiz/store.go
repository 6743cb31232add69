package quiz

import (
	"hash/fnv"
	"sync"
)

const storeShards = 32

// Store keeps sessions in memory keyed by the opaque user identifier.
//
// All reads and writes for a single identifier are serialized by that key's
// shard lock; independent identifiers spread across shards and do not contend
// on a single lock. Storage lives for the process lifetime.
type Store struct {
	shards [storeShards]storeShard
}

type storeShard struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewStore constructs an empty in-memory session store.
func NewStore() *Store {
	s := &Store{}
	for i := range s.shards {
		s.shards[i].sessions = make(map[string]*Session)
	}
	return s
}

func (s *Store) shard(userID string) *storeShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return &s.shards[h.Sum32()%storeShards]
}

// Get returns a copy of the session for a user, if one exists.
func (s *Store) Get(userID string) (*Session, bool) {
	sh := s.shard(userID)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	sess, ok := sh.sessions[userID]
	if !ok {
		return nil, false
	}
	return sess.clone(), true
}

// Put stores the session for a user, replacing any existing one.
func (s *Store) Put(userID string, sess *Session) {
	sh := s.shard(userID)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	sh.sessions[userID] = sess
}

// Delete removes the session for a user.
func (s *Store) Delete(userID string) {
	sh := s.shard(userID)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	delete(sh.sessions, userID)
}

// Update runs fn under the key's shard lock with the current session (nil when
// absent) and stores whatever fn returns; returning nil deletes the entry.
// The whole read-modify-write is atomic with respect to other events for the
// same user.
func (s *Store) Update(userID string, fn func(*Session) *Session) {
	sh := s.shard(userID)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	next := fn(sh.sessions[userID])
	if next == nil {
		delete(sh.sessions, userID)
		return
	}
	sh.sessions[userID] = next
}
