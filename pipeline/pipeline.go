// Package pipeline turns a bar series into indicator frames.
package pipeline

import (
	"fmt"

	"github.com/guregu/null/v6"
	"github.com/rustyeddy/candlescope/indicators"
	"github.com/rustyeddy/candlescope/market"
)

// Params holds the indicator periods. The dashboard always uses Default().
type Params struct {
	RSIPeriod  int
	MACDFast   int
	MACDSlow   int
	MACDSignal int
	SMAPeriod  int
}

// Default returns RSI(14), MACD(12,26,9) and SMA(50).
func Default() Params {
	return Params{
		RSIPeriod:  14,
		MACDFast:   12,
		MACDSlow:   26,
		MACDSignal: 9,
		SMAPeriod:  50,
	}
}

func (p Params) validate() error {
	if p.RSIPeriod <= 0 || p.MACDFast <= 0 || p.MACDSlow <= 0 || p.MACDSignal <= 0 || p.SMAPeriod <= 0 {
		return fmt.Errorf("indicator periods must be positive: %+v", p)
	}
	return nil
}

// Compute runs Default() indicators over the series.
func Compute(s market.Series) ([]Frame, error) {
	return Default().Compute(s)
}

// Compute returns one frame per bar, in the same order. Every indicator is
// fed the closes one bar at a time, so frame i only reflects bars 0..i.
// An empty series fails with market.ErrInsufficientHistory.
func (p Params) Compute(s market.Series) ([]Frame, error) {
	if len(s.Bars) == 0 {
		return nil, fmt.Errorf("compute %s %s: %w: empty series", s.Symbol, s.Timeframe, market.ErrInsufficientHistory)
	}
	if err := p.validate(); err != nil {
		return nil, err
	}

	rsi := indicators.NewRSI(p.RSIPeriod)
	macd := indicators.NewMACD(p.MACDFast, p.MACDSlow, p.MACDSignal)
	sma := indicators.NewSMA(p.SMAPeriod)

	frames := make([]Frame, len(s.Bars))
	for i, b := range s.Bars {
		rsi.Update(b.Close)
		macd.Update(b.Close)
		sma.Update(b.Close)

		f := Frame{Bar: b}
		if rsi.Defined() {
			f.RSI = null.FloatFrom(rsi.Value())
		}
		if macd.Ready() {
			f.MACD = null.FloatFrom(macd.Value())
		}
		if macd.SignalReady() {
			f.MACDSignal = null.FloatFrom(macd.Signal())
			f.MACDHist = null.FloatFrom(macd.Hist())
		}
		if sma.Ready() {
			f.SMA50 = null.FloatFrom(sma.Value())
		}
		frames[i] = f
	}
	return frames, nil
}
