// Package memory holds process-local implementations of the rate and session stores,
// used when no Redis address is configured and in tests.
package memory

import (
	"context"
	"sync"
	"time"
)

type rateEntry struct {
	rate      float64
	expiresAt time.Time
}

// RateStore keeps rates in a map guarded by a mutex. Expiry is evaluated against now.
type RateStore struct {
	mu      sync.Mutex
	entries map[string]rateEntry
	now     func() time.Time
}

// NewRateStore creates an empty store. A nil now selects time.Now.
func NewRateStore(now func() time.Time) *RateStore {
	if now == nil {
		now = time.Now
	}
	return &RateStore{
		entries: make(map[string]rateEntry),
		now:     now,
	}
}

func (s *RateStore) Get(_ context.Context, key string) (float64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return 0, false, nil
	}
	if !s.now().Before(entry.expiresAt) {
		delete(s.entries, key)
		return 0, false, nil
	}
	return entry.rate, true, nil
}

func (s *RateStore) Set(_ context.Context, key string, rate float64, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = rateEntry{rate: rate, expiresAt: s.now().Add(ttl)}
	return nil
}
