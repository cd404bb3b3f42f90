package ports

import (
	"context"
	"time"
)

// RateProvider fetches the current USD exchange rate from an external source.
type RateProvider interface {
	// FetchUSDRate makes a single attempt and returns the local-currency price of one USD.
	FetchUSDRate(ctx context.Context) (float64, error)

	// Name identifies the source in errors and logs.
	Name() string
}

// RateStore keeps exchange rates for a limited time. Get and Set are atomic per key.
type RateStore interface {
	// Get returns the stored rate and whether an unexpired value exists.
	Get(ctx context.Context, key string) (rate float64, found bool, err error)

	// Set stores rate under key for ttl.
	Set(ctx context.Context, key string, rate float64, ttl time.Duration) error
}
