package binance

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rustyeddy/candlescope/market"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoKlines = `[
  [1704067200000, "42000.10", "42100.00", "41900.50", "42050.00", "12.5", 1704070799999, "525000.0", 100, "6.0", "250000.0", "0"],
  [1704070800000, "42050.00", "42200.00", "42000.00", "42150.25", "8.25", 1704074399999, "347000.0", 80, "4.0", "170000.0", "0"]
]`

func newServer(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL})
}

func btc(limit int) market.Request {
	return market.Request{Symbol: "BTC/USDT", Timeframe: "1h", Limit: limit}
}

func TestFetch_DecodesKlines(t *testing.T) {
	t.Parallel()

	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v3/klines", r.URL.Path)
		require.Equal(t, "BTCUSDT", r.URL.Query().Get("symbol"))
		require.Equal(t, "1h", r.URL.Query().Get("interval"))
		require.Equal(t, "100", r.URL.Query().Get("limit"))
		require.Empty(t, r.Header.Get("X-MBX-APIKEY"))
		_, _ = w.Write([]byte(twoKlines))
	})

	s, err := c.Fetch(context.Background(), btc(100))
	require.NoError(t, err)
	assert.Equal(t, "BTC/USDT", s.Symbol)
	assert.Equal(t, "1h", s.Timeframe)
	require.Len(t, s.Bars, 2)

	b := s.Bars[0]
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), b.Time)
	assert.Equal(t, 42000.10, b.Open)
	assert.Equal(t, 42100.00, b.High)
	assert.Equal(t, 41900.50, b.Low)
	assert.Equal(t, 42050.00, b.Close)
	assert.Equal(t, 12.5, b.Volume)
	assert.Equal(t, 42150.25, s.Bars[1].Close)
	assert.NoError(t, s.Validate())
}

func TestFetch_SendsAPIKey(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "key", r.Header.Get("X-MBX-APIKEY"))
		_, _ = w.Write([]byte(twoKlines))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL + "/", APIKey: "  key \n", APISecret: " secret "})
	assert.True(t, c.HasCredentials())

	_, err := c.Fetch(context.Background(), btc(10))
	require.NoError(t, err)
}

func TestFetch_NormalizesOrderAndLimit(t *testing.T) {
	t.Parallel()

	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
		  [1704074400000, "3", "4", "2", "3.5", "1"],
		  [1704067200000, "1", "2", "0.5", "1.5", "1"],
		  [1704070800000, "2", "3", "1", "2.5", "1"],
		  [1704070800000, "2", "3", "1", "2.75", "1"]
		]`))
	})

	s, err := c.Fetch(context.Background(), btc(2))
	require.NoError(t, err)
	require.Len(t, s.Bars, 2)
	assert.Equal(t, []float64{2.75, 3.5}, s.Closes())
	assert.NoError(t, s.Validate())
}

func TestFetch_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
		want   error
		msg    string
	}{
		{name: "invalid symbol", status: 400, body: `{"code":-1121,"msg":"Invalid symbol."}`, want: market.ErrDataUnavailable, msg: "Invalid symbol."},
		{name: "unauthorized", status: 401, body: `{"code":-2015,"msg":"Invalid API-key"}`, want: market.ErrConnection, msg: "Invalid API-key"},
		{name: "rate limited", status: 429, body: `{}`, want: market.ErrConnection, msg: "http 429"},
		{name: "server error", status: 502, body: `bad gateway`, want: market.ErrConnection, msg: "bad gateway"},
		{name: "not json", status: 200, body: `<html>`, want: market.ErrDataUnavailable, msg: "decode klines"},
		{name: "empty", status: 200, body: `[]`, want: market.ErrDataUnavailable, msg: "no candles"},
		{name: "short row", status: 200, body: `[[1704067200000, "1", "2"]]`, want: market.ErrDataUnavailable, msg: "at least 6 fields"},
		{name: "bad price", status: 200, body: `[[1704067200000, "x", "2", "1", "1", "1"]]`, want: market.ErrDataUnavailable, msg: "field 1"},
		{name: "null prices", status: 200, body: `[[1704067200000, null, null, null, null, null, 1704070799999]]`, want: market.ErrDataUnavailable, msg: "field 1: null"},
		{name: "null volume", status: 200, body: `[[1704067200000, "1", "1", "1", "1", null, 1704070799999]]`, want: market.ErrDataUnavailable, msg: "field 5: null"},
		{name: "null open time", status: 200, body: `[[null, "1", "1", "1", "1", "1"]]`, want: market.ErrDataUnavailable, msg: "open time: null"},
		{name: "bool price", status: 200, body: `[[1704067200000, true, "1", "1", "1", "1"]]`, want: market.ErrDataUnavailable, msg: "not a number"},
		{name: "broken invariant", status: 200, body: `[[1704067200000, "5", "2", "1", "1", "1"]]`, want: market.ErrDataUnavailable, msg: "open 5 outside"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := c.Fetch(context.Background(), btc(10))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestFetch_Unreachable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(Config{BaseURL: url})
	_, err := c.Fetch(context.Background(), btc(10))
	require.Error(t, err)
	assert.ErrorIs(t, err, market.ErrConnection)
}

func TestFetch_OneCallPerFetch(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(twoKlines))
	})

	for i := 0; i < 3; i++ {
		_, err := c.Fetch(context.Background(), btc(10))
		require.NoError(t, err)
	}
	assert.Equal(t, int32(3), calls.Load())
}
