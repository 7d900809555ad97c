package currency

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProvider(t *testing.T, handler http.HandlerFunc) (*Client, *int64) {
	t.Helper()
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return New(srv.URL, 2*time.Second), &calls
}

func TestConvert(t *testing.T) {
	client, calls := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/USD", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"date":"2025-06-18","rates":{"EUR":0.9,"GBP":0.8}}`))
	})

	conv, err := client.Convert(context.Background(), 100, "USD", "EUR")
	require.NoError(t, err)

	assert.Equal(t, 100.0, conv.OriginalAmount)
	assert.Equal(t, "USD", conv.OriginalCurrency)
	assert.Equal(t, 90.0, conv.ConvertedAmount)
	assert.Equal(t, "EUR", conv.TargetCurrency)
	assert.Equal(t, 0.9, conv.Rate)
	assert.Equal(t, "2025-06-18", conv.LastUpdated)
	assert.EqualValues(t, 1, *calls)
}

func TestConvert_SameCurrencySkipsNetwork(t *testing.T) {
	client, calls := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("provider must not be called for same-currency conversion")
	})

	conv, err := client.Convert(context.Background(), 100, "USD", "usd")
	require.NoError(t, err)

	assert.Equal(t, 100.0, conv.ConvertedAmount)
	assert.Equal(t, 1.0, conv.Rate)
	assert.EqualValues(t, 0, *calls)
}

func TestConvert_InvalidInput(t *testing.T) {
	client, _ := newProvider(t, func(w http.ResponseWriter, r *http.Request) {})

	_, err := client.Convert(context.Background(), 0, "USD", "EUR")
	assert.Error(t, err)

	_, err = client.Convert(context.Background(), -5, "USD", "EUR")
	assert.Error(t, err)

	_, err = client.Convert(context.Background(), 100, "US", "EUR")
	assert.Error(t, err)

	_, err = client.Convert(context.Background(), 100, "USD", "EURO")
	assert.Error(t, err)
}

func TestConvert_UnsupportedCurrency(t *testing.T) {
	client, _ := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"date":"2025-06-18","rates":{"EUR":0.9}}`))
	})

	_, err := client.Convert(context.Background(), 100, "USD", "XXX")
	assert.ErrorIs(t, err, ErrUnsupportedCurrency)
}

func TestConvert_ProviderErrorStatus(t *testing.T) {
	client, _ := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.Convert(context.Background(), 100, "USD", "EUR")
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestConvert_MalformedBody(t *testing.T) {
	client, _ := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	})

	_, err := client.Convert(context.Background(), 100, "USD", "EUR")
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestConvert_EmptyRateTable(t *testing.T) {
	client, _ := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"date":"2025-06-18"}`))
	})

	_, err := client.Convert(context.Background(), 100, "USD", "EUR")
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestConvert_ProviderDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := New(url, time.Second)
	_, err := client.Convert(context.Background(), 100, "USD", "EUR")
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestConvert_RoundsToTwoDecimals(t *testing.T) {
	client, _ := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"date":"2025-06-18","rates":{"EUR":0.333333}}`))
	})

	conv, err := client.Convert(context.Background(), 100, "USD", "EUR")
	require.NoError(t, err)
	assert.Equal(t, 33.33, conv.ConvertedAmount)
}
