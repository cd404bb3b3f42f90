package cbr_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"parcels/internal/adapters/out/cbr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestProvider_FetchUSDRate(t *testing.T) {
	server := serve(t, http.StatusOK, `{
		"Date": "2024-05-01T11:30:00+03:00",
		"Valute": {
			"EUR": {"CharCode": "EUR", "Nominal": 1, "Value": 99.7},
			"USD": {"CharCode": "USD", "Nominal": 1, "Value": 91.7791}
		}
	}`)

	rate, err := cbr.NewProvider(server.URL, time.Second).FetchUSDRate(t.Context())
	require.NoError(t, err)
	assert.InDelta(t, 91.7791, rate, 0)
}

func TestProvider_FetchUSDRate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{}`},
		{"malformed json", http.StatusOK, `{"Valute":`},
		{"usd missing", http.StatusOK, `{"Valute": {"EUR": {"Nominal": 1, "Value": 99.7}}}`},
		{"usd wrong type", http.StatusOK, `{"Valute": {"USD": {"Nominal": 1, "Value": "ninety"}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := serve(t, tt.status, tt.body)

			_, err := cbr.NewProvider(server.URL, time.Second).FetchUSDRate(t.Context())
			require.Error(t, err)
		})
	}
}

func TestProvider_FetchUSDRate_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		server.Close()
	})

	_, err := cbr.NewProvider(server.URL, 50*time.Millisecond).FetchUSDRate(context.Background())
	require.Error(t, err)
}

func TestProvider_Defaults(t *testing.T) {
	assert.Equal(t, cbr.DefaultURL, cbr.NewProvider("", 0).Name())
}
