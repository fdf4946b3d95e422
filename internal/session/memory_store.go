package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is a process-local Store for single-instance deployments and tests.
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]*memorySession
	pending  map[string]time.Time
}

type memorySession struct {
	fields    map[string][]byte
	expiresAt time.Time // zero means never
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*memorySession),
		pending:  make(map[string]time.Time),
	}
}

// live returns the session if present and unexpired. Caller holds mu.
func (s *MemoryStore) live(id string) *memorySession {
	sess, ok := s.sessions[id]
	if !ok {
		return nil
	}
	if !sess.expiresAt.IsZero() && !s.now().Before(sess.expiresAt) {
		delete(s.sessions, id)
		return nil
	}
	return sess
}

// sweep drops expired sessions and pending markers. Caller holds mu.
func (s *MemoryStore) sweep() {
	now := s.now()
	for id, sess := range s.sessions {
		if !sess.expiresAt.IsZero() && !now.Before(sess.expiresAt) {
			delete(s.sessions, id)
		}
	}
	for key, exp := range s.pending {
		if !now.Before(exp) {
			delete(s.pending, key)
		}
	}
}

func (s *MemoryStore) Load(_ context.Context, id, field string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.live(id)
	if sess == nil {
		return nil, false, nil
	}
	data, ok := sess.fields[field]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), data...), true, nil
}

func (s *MemoryStore) Save(_ context.Context, id, field string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.live(id)
	if sess == nil {
		s.sweep()
		sess = &memorySession{fields: make(map[string][]byte)}
		s.sessions[id] = sess
	}
	sess.fields[field] = append([]byte(nil), data...)
	if s.ttl > 0 {
		sess.expiresAt = s.now().Add(s.ttl)
	}
	return nil
}

func (s *MemoryStore) Remove(_ context.Context, id string, fields ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess := s.live(id); sess != nil {
		for _, f := range fields {
			delete(sess.fields, f)
		}
	}
	return nil
}

func (s *MemoryStore) AcquirePending(_ context.Context, id, action string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := pendingKey(id, action)
	if exp, ok := s.pending[key]; ok && s.now().Before(exp) {
		return false, nil
	}
	s.pending[key] = s.now().Add(ttl)
	return true, nil
}

func (s *MemoryStore) ReleasePending(_ context.Context, id, action string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, pendingKey(id, action))
	return nil
}

func (s *MemoryStore) Ping(context.Context) error {
	return nil
}
