package memory

import (
	"context"
	"sync"
	"time"

	"parcels/internal/core/domain/model/kernel"
)

// SessionStore remembers issued session keys until they expire.
// Expired keys are reclaimed by Cleanup, which Create runs at most once per ttl
// and StartJanitor runs on a ticker.
type SessionStore struct {
	mu        sync.Mutex
	sessions  map[string]time.Time
	ttl       time.Duration
	now       func() time.Time
	nextSweep time.Time
}

// NewSessionStore creates an empty store whose keys live for ttl. A nil now selects time.Now.
func NewSessionStore(ttl time.Duration, now func() time.Time) *SessionStore {
	if now == nil {
		now = time.Now
	}
	return &SessionStore{
		sessions: make(map[string]time.Time),
		ttl:      ttl,
		now:      now,
	}
}

func (s *SessionStore) Create(_ context.Context) (kernel.SessionKey, error) {
	key := kernel.NewSessionKey()
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	if !now.Before(s.nextSweep) {
		s.removeExpired(now)
		s.nextSweep = now.Add(s.ttl)
	}
	s.sessions[key.String()] = now.Add(s.ttl)
	return key, nil
}

func (s *SessionStore) Exists(_ context.Context, key kernel.SessionKey) (bool, error) {
	if key.IsEmpty() {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	expiresAt, ok := s.sessions[key.String()]
	if !ok {
		return false, nil
	}
	if !s.now().Before(expiresAt) {
		delete(s.sessions, key.String())
		return false, nil
	}
	return true, nil
}

// Cleanup drops every expired key.
func (s *SessionStore) Cleanup() {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeExpired(now)
}

// Len reports how many keys the store currently holds, expired or not.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// StartJanitor runs Cleanup every interval until ctx is cancelled.
func (s *SessionStore) StartJanitor(ctx context.Context, every time.Duration) {
	if every <= 0 {
		return
	}

	t := time.NewTicker(every)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				s.Cleanup()
			}
		}
	}()
}

func (s *SessionStore) removeExpired(now time.Time) {
	for k, expiresAt := range s.sessions {
		if !now.Before(expiresAt) {
			delete(s.sessions, k)
		}
	}
}
