// Package cbr fetches the USD exchange rate from the Central Bank of Russia daily feed.
package cbr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultURL is the public daily rates feed.
	DefaultURL = "https://www.cbr-xml-daily.ru/daily_json.js"
	// DefaultTimeout bounds one fetch.
	DefaultTimeout = 10 * time.Second

	maxBodySize = 1 << 20
)

var ErrUSDRateMissing = errors.New("USD rate is missing from the feed")

// dailyRates is the subset of the feed document the provider reads.
type dailyRates struct {
	Valute map[string]struct {
		Nominal float64 `json:"Nominal"`
		Value   float64 `json:"Value"`
	} `json:"Valute"`
}

// Provider implements ports.RateProvider over HTTP. It makes exactly one request per
// call and never retries. Safe for concurrent use.
type Provider struct {
	client *http.Client
	url    string
}

// NewProvider creates a provider for url. Empty url and non-positive timeout select the defaults.
func NewProvider(url string, timeout time.Duration) *Provider {
	if url == "" {
		url = DefaultURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Provider{
		client: &http.Client{Timeout: timeout},
		url:    url,
	}
}

func (p *Provider) Name() string {
	return p.url
}

// FetchUSDRate returns the rubles paid for one US dollar.
func (p *Provider) FetchUSDRate(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return 0, fmt.Errorf("build rate request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetch rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("fetch rates: unexpected status %d", resp.StatusCode)
	}

	var doc dailyRates
	if err = json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&doc); err != nil {
		return 0, fmt.Errorf("decode rates: %w", err)
	}

	usd, ok := doc.Valute["USD"]
	if !ok || usd.Value == 0 {
		return 0, ErrUSDRateMissing
	}
	if usd.Nominal > 1 {
		return usd.Value / usd.Nominal, nil
	}
	return usd.Value, nil
}
