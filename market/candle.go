package market

import (
	"fmt"
	"math"
	"time"
)

// Bar is one OHLCV candle. Time is the candle open time in UTC.
type Bar struct {
	Time   time.Time `json:"timestamp"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// Validate checks the bar invariant: every field finite and non-negative,
// and low <= open, close <= high.
func (b Bar) Validate() error {
	if b.Time.IsZero() {
		return fmt.Errorf("bar has no timestamp")
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"open", b.Open},
		{"high", b.High},
		{"low", b.Low},
		{"close", b.Close},
		{"volume", b.Volume},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("bar %s: %s is not finite", b.Time.Format(time.RFC3339), f.name)
		}
		if f.v < 0 {
			return fmt.Errorf("bar %s: %s is negative (%g)", b.Time.Format(time.RFC3339), f.name, f.v)
		}
	}
	if b.Low > b.High {
		return fmt.Errorf("bar %s: low %g above high %g", b.Time.Format(time.RFC3339), b.Low, b.High)
	}
	if b.Open < b.Low || b.Open > b.High {
		return fmt.Errorf("bar %s: open %g outside [%g, %g]", b.Time.Format(time.RFC3339), b.Open, b.Low, b.High)
	}
	if b.Close < b.Low || b.Close > b.High {
		return fmt.Errorf("bar %s: close %g outside [%g, %g]", b.Time.Format(time.RFC3339), b.Close, b.Low, b.High)
	}
	return nil
}
