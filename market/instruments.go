package market

import (
	"fmt"
	"slices"
	"strings"
)

// DefaultLimit is the number of bars requested when none is given.
const DefaultLimit = 100

// MaxLimit is the largest page the exchange serves in one call.
const MaxLimit = 1000

// Symbols is the allow-list of trading pairs.
var Symbols = []string{"BTC/USDT", "ETH/USDT", "BNB/USDT", "XRP/USDT", "LTC/USDT"}

// Timeframes is the allow-list of candle intervals.
var Timeframes = []string{"1m", "5m", "15m", "1h", "4h", "1d"}

// Request selects what a Source should fetch.
type Request struct {
	Symbol    string
	Timeframe string
	Limit     int
}

// WithDefaults fills a zero Limit with DefaultLimit and trims whitespace.
func (r Request) WithDefaults() Request {
	r.Symbol = strings.ToUpper(strings.TrimSpace(r.Symbol))
	r.Timeframe = strings.TrimSpace(r.Timeframe)
	if r.Limit == 0 {
		r.Limit = DefaultLimit
	}
	return r
}

// Validate checks the request against the allow-lists.
func (r Request) Validate() error {
	if !slices.Contains(Symbols, r.Symbol) {
		return fmt.Errorf("%w: unknown symbol %q", ErrInvalidRequest, r.Symbol)
	}
	if !slices.Contains(Timeframes, r.Timeframe) {
		return fmt.Errorf("%w: unknown timeframe %q", ErrInvalidRequest, r.Timeframe)
	}
	if r.Limit <= 0 || r.Limit > MaxLimit {
		return fmt.Errorf("%w: limit must be between 1 and %d, got %d", ErrInvalidRequest, MaxLimit, r.Limit)
	}
	return nil
}

// PairCode turns "BTC/USDT" into the exchange's "BTCUSDT".
func PairCode(symbol string) string {
	return strings.ReplaceAll(strings.ToUpper(symbol), "/", "")
}
