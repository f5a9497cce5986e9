package binance

import (
	"bytes"
	"context"
	"errors"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/rustyeddy/candlescope/market"
	"github.com/shopspring/decimal"
)

var _ market.Source = (*Client)(nil)

// Fetch reads the most recent req.Limit klines for req.Symbol at
// req.Timeframe with a single GET /api/v3/klines.
//
// The request is expected to be validated by the caller. The result is
// normalized: ascending, no duplicate timestamps, at most req.Limit bars.
func (c *Client) Fetch(ctx context.Context, req market.Request) (market.Series, error) {
	series := market.Series{Symbol: req.Symbol, Timeframe: req.Timeframe}

	q := url.Values{}
	q.Set("symbol", market.PairCode(req.Symbol))
	q.Set("interval", req.Timeframe)
	if req.Limit > 0 {
		q.Set("limit", strconv.Itoa(req.Limit))
	}

	body, err := c.get(ctx, "/api/v3/klines", q.Encode())
	if err != nil {
		return series, fmt.Errorf("klines %s %s: %w", req.Symbol, req.Timeframe, err)
	}

	bars, err := decodeKlines(body)
	if err != nil {
		return series, fmt.Errorf("klines %s %s: %w: %v", req.Symbol, req.Timeframe, market.ErrDataUnavailable, err)
	}
	if len(bars) == 0 {
		return series, fmt.Errorf("klines %s %s: %w: no candles returned", req.Symbol, req.Timeframe, market.ErrDataUnavailable)
	}

	bars, stats, err := market.Normalize(bars, req.Limit)
	if err != nil {
		return series, fmt.Errorf("klines %s %s: %w: %v", req.Symbol, req.Timeframe, market.ErrDataUnavailable, err)
	}
	if stats.Duplicates > 0 || stats.Trimmed > 0 {
		slog.Debug("klines normalized",
			slog.String("symbol", req.Symbol),
			slog.Int("duplicates", stats.Duplicates),
			slog.Int("trimmed", stats.Trimmed))
	}

	series.Bars = bars
	return series, nil
}

// decodeKlines parses the kline array:
//
//	[[openTime, "open", "high", "low", "close", "volume", closeTime, ...], ...]
func decodeKlines(body []byte) ([]market.Bar, error) {
	var rows [][]json.RawMessage
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode klines: %w", err)
	}

	bars := make([]market.Bar, 0, len(rows))
	for i, row := range rows {
		if len(row) < 6 {
			return nil, fmt.Errorf("kline %d: want at least 6 fields, got %d", i, len(row))
		}

		var openMs int64
		if err := checkNumber(row[0]); err != nil {
			return nil, fmt.Errorf("kline %d: open time: %w", i, err)
		}
		if err := json.Unmarshal(row[0], &openMs); err != nil {
			return nil, fmt.Errorf("kline %d: open time: %w", i, err)
		}

		var px [5]decimal.Decimal
		for j := range px {
			if err := checkNumber(row[j+1]); err != nil {
				return nil, fmt.Errorf("kline %d: field %d: %w", i, j+1, err)
			}
			if err := px[j].UnmarshalJSON(row[j+1]); err != nil {
				return nil, fmt.Errorf("kline %d: field %d: %w", i, j+1, err)
			}
		}

		bars = append(bars, market.Bar{
			Time:   time.UnixMilli(openMs).UTC(),
			Open:   px[0].InexactFloat64(),
			High:   px[1].InexactFloat64(),
			Low:    px[2].InexactFloat64(),
			Close:  px[3].InexactFloat64(),
			Volume: px[4].InexactFloat64(),
		})
	}
	return bars, nil
}

// checkNumber accepts a quoted or bare numeric literal. decimal treats a
// JSON null as a no-op, which would leave a zero price behind.
func checkNumber(raw json.RawMessage) error {
	v := bytes.TrimSpace(raw)
	switch {
	case len(v) == 0:
		return errors.New("empty")
	case bytes.Equal(v, []byte("null")):
		return errors.New("null")
	case v[0] == '"', v[0] == '-', v[0] >= '0' && v[0] <= '9':
		return nil
	}
	return fmt.Errorf("not a number: %s", v)
}
