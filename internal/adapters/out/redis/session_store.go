package redis

import (
	"context"
	"time"

	"parcels/internal/core/domain/model/kernel"

	goredis "github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "parcels:session:"

// SessionStore records issued session keys with a TTL.
type SessionStore struct {
	client goredis.UniversalClient
	ttl    time.Duration
}

func NewSessionStore(client goredis.UniversalClient, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) Create(ctx context.Context) (kernel.SessionKey, error) {
	key := kernel.NewSessionKey()
	if err := s.client.Set(ctx, sessionKeyPrefix+key.String(), "1", s.ttl).Err(); err != nil {
		return kernel.SessionKey{}, err
	}
	return key, nil
}

func (s *SessionStore) Exists(ctx context.Context, key kernel.SessionKey) (bool, error) {
	if key.IsEmpty() {
		return false, nil
	}
	n, err := s.client.Exists(ctx, sessionKeyPrefix+key.String()).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
