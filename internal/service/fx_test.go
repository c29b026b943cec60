package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DonkeyXBT/ticketplatform-sub000/internal/config"
)

func newFxTestServer(t *testing.T, calls *atomic.Int32, handler http.HandlerFunc) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	return srv
}

func serveRates(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"result":"success","base_code":"EUR","rates":{"EUR":1,"USD":1.1,"GBP":0.85}}`))
}

func TestFxService_Convert_SameCurrencyIsExact(t *testing.T) {
	var calls atomic.Int32
	srv := newFxTestServer(t, &calls, serveRates)

	svc := NewFxService(&config.FxConfig{APIURL: srv.URL, CacheTTL: time.Hour})

	amount := decimal.RequireFromString("123.456789")
	got, err := svc.Convert(context.Background(), amount, "usd", "USD")
	require.NoError(t, err)

	assert.True(t, got.Equal(amount))
	assert.Equal(t, int32(0), calls.Load(), "same-currency conversion must not hit the rate API")
}

func TestFxService_Convert(t *testing.T) {
	var calls atomic.Int32
	srv := newFxTestServer(t, &calls, serveRates)

	svc := NewFxService(&config.FxConfig{APIURL: srv.URL, CacheTTL: time.Hour})

	got, err := svc.Convert(context.Background(), decimal.NewFromInt(100), "EUR", "USD")
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.RequireFromString("110")), "got %v", got)

	// Second conversion off the same base is served from cache.
	_, err = svc.Convert(context.Background(), decimal.NewFromInt(50), "EUR", "GBP")
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFxService_Convert_UnknownCurrency(t *testing.T) {
	var calls atomic.Int32
	srv := newFxTestServer(t, &calls, serveRates)

	svc := NewFxService(&config.FxConfig{APIURL: srv.URL, CacheTTL: time.Hour})

	_, err := svc.Convert(context.Background(), decimal.NewFromInt(1), "EUR", "XXX")
	assert.ErrorIs(t, err, ErrUnknownCurrency)
}

func TestFxService_Convert_ServesStaleOnRefreshFailure(t *testing.T) {
	var calls atomic.Int32
	srv := newFxTestServer(t, &calls, func(w http.ResponseWriter, r *http.Request) {
		if calls.Load() > 1 {
			w.WriteHeader(http.StatusBadGateway)

			return
		}
		serveRates(w, r)
	})

	svc := NewFxService(&config.FxConfig{APIURL: srv.URL, CacheTTL: time.Nanosecond})

	got, err := svc.Convert(context.Background(), decimal.NewFromInt(100), "EUR", "USD")
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.RequireFromString("110")))

	// The TTL has long expired and the refresh now fails, so the stale table
	// keeps answering.
	got, err = svc.Convert(context.Background(), decimal.NewFromInt(200), "EUR", "USD")
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.RequireFromString("220")))
	assert.GreaterOrEqual(t, calls.Load(), int32(2))
}

func TestFxService_Convert_NoCacheNoRate(t *testing.T) {
	var calls atomic.Int32
	srv := newFxTestServer(t, &calls, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	svc := NewFxService(&config.FxConfig{APIURL: srv.URL, CacheTTL: time.Hour})

	_, err := svc.Convert(context.Background(), decimal.NewFromInt(1), "EUR", "USD")
	assert.ErrorIs(t, err, ErrRateUnavailable)
}
