package redis

import (
	"context"
	"errors"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const rateKeyPrefix = "parcels:rate:"

// RateStore keeps exchange rates as plain strings with a Redis TTL.
type RateStore struct {
	client goredis.UniversalClient
}

func NewRateStore(client goredis.UniversalClient) *RateStore {
	return &RateStore{client: client}
}

// Get returns found=false for a missing or expired key.
func (s *RateStore) Get(ctx context.Context, key string) (float64, bool, error) {
	raw, err := s.client.Get(ctx, rateKeyPrefix+key).Result()
	if errors.Is(err, goredis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	rate, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, err
	}
	return rate, true, nil
}

// Set stores rate under key with SET ... EX.
func (s *RateStore) Set(ctx context.Context, key string, rate float64, ttl time.Duration) error {
	return s.client.Set(ctx, rateKeyPrefix+key, strconv.FormatFloat(rate, 'g', -1, 64), ttl).Err()
}
