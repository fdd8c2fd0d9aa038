package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"mapup/internal/cache"
)

// Store persists sessions by id.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Set(ctx context.Context, sess *Session) error
	Clear(ctx context.Context, id string) error
}

// RedisStore keeps sessions in Redis under prefix+id with a TTL.
type RedisStore struct {
	cache  *cache.Client
	prefix string
	ttl    time.Duration
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a Redis-backed store.
func NewRedisStore(c *cache.Client, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{cache: c, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) key(id string) string {
	return s.prefix + id
}

// Get loads a session. A Redis outage reads as ErrNotFound.
func (s *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	var sess Session
	if !s.cache.GetJSON(ctx, s.key(id), &sess) {
		return nil, ErrNotFound
	}
	return &sess, nil
}

// Set writes sess. Unlike cache reads, a failed write is reported so that
// a login never succeeds without a stored session.
func (s *RedisStore) Set(ctx context.Context, sess *Session) error {
	if err := s.cache.SetJSONStrict(ctx, s.key(sess.ID), sess, s.ttl); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context, id string) error {
	if err := s.cache.DeleteStrict(ctx, s.key(id)); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// MemoryStore is an in-process Store used in tests and when Redis is not configured.
type MemoryStore struct {
	mu       sync.RWMutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]memoryEntry
}

type memoryEntry struct {
	sess    Session
	expires time.Time
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store. ttl <= 0 means entries never expire.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]memoryEntry),
	}
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	s.mu.RLock()
	e, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	if s.expired(e, s.now()) {
		s.mu.Lock()
		if cur, ok := s.sessions[id]; ok && s.expired(cur, s.now()) {
			delete(s.sessions, id)
		}
		s.mu.Unlock()
		return nil, ErrNotFound
	}
	sess := e.sess
	return &sess, nil
}

func (s *MemoryStore) Set(_ context.Context, sess *Session) error {
	e := memoryEntry{sess: *sess}
	if s.ttl > 0 {
		e.expires = s.now().Add(s.ttl)
	}
	s.mu.Lock()
	now := s.now()
	for id, old := range s.sessions {
		if s.expired(old, now) {
			delete(s.sessions, id)
		}
	}
	s.sessions[sess.ID] = e
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) expired(e memoryEntry, now time.Time) bool {
	return !e.expires.IsZero() && now.After(e.expires)
}

func (s *MemoryStore) Clear(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}

// Len returns the number of stored sessions. Expired entries are dropped
// when read or on the next Set.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
