// Package rates provides the cached USD exchange rate used to price parcels.
package rates

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"time"

	"parcels/internal/core/ports"
	"parcels/internal/pkg/errs"
)

const (
	// USDRateKey is the store key of the cached USD rate.
	USDRateKey = "usd_to_rub"
	// DefaultTTL is how long a fetched rate stays valid.
	DefaultTTL = 5 * time.Minute
)

var ErrRateCacheIsNotConfigured = errors.New("RateCache requires a store and a provider")

// RateCache returns the current USD rate, consulting the store first and the provider
// only when the store holds no unexpired value.
//
// Example:
//
//	cache, err := rates.NewRateCache(store, provider, rates.DefaultTTL, logger)
//	if err != nil {
//	    return err
//	}
//	rate, err := cache.GetRate(ctx)
//	if errors.Is(err, errs.ErrRateUnavailable) {
//	    // the sweep is skipped until the source recovers
//	}
type RateCache struct {
	store    ports.RateStore
	provider ports.RateProvider
	ttl      time.Duration
	logger   *slog.Logger
}

// NewRateCache wires a cache over store and provider. A non-positive ttl selects DefaultTTL.
func NewRateCache(
	store ports.RateStore,
	provider ports.RateProvider,
	ttl time.Duration,
	logger *slog.Logger,
) (*RateCache, error) {
	if store == nil || provider == nil {
		return nil, ErrRateCacheIsNotConfigured
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RateCache{
		store:    store,
		provider: provider,
		ttl:      ttl,
		logger:   logger.With("component", "RateCache"),
	}, nil
}

// GetRate returns the cached rate or fetches it exactly once on a miss.
// A cached value that is not a positive finite number counts as a miss.
// Any provider failure, or a fetched rate that is not a positive finite number,
// is reported as an *errs.RateUnavailableError.
func (c *RateCache) GetRate(ctx context.Context) (float64, error) {
	rate, found, err := c.store.Get(ctx, USDRateKey)
	if err != nil {
		return 0, err
	}
	if found && isUsable(rate) {
		return rate, nil
	}
	if found {
		c.logger.WarnContext(ctx, "Discarding unusable cached exchange rate",
			"key", USDRateKey,
			"rate", rate)
	}

	rate, err = c.provider.FetchUSDRate(ctx)
	if err != nil {
		return 0, errs.NewRateUnavailableErrorWithCause(c.provider.Name(), err)
	}
	if !isUsable(rate) {
		return 0, errs.NewRateUnavailableErrorWithCause(
			c.provider.Name(),
			errs.NewValueIsInvalidError("rate"),
		)
	}

	if err = c.store.Set(ctx, USDRateKey, rate, c.ttl); err != nil {
		c.logger.WarnContext(ctx, "Failed to cache exchange rate",
			"key", USDRateKey,
			"error", errs.Sanitize(err.Error()))
	}

	return rate, nil
}

func isUsable(rate float64) bool {
	return rate > 0 && !math.IsNaN(rate) && !math.IsInf(rate, 0)
}
