// Package chart turns indicator frames into the payload a renderer draws:
// candles with SMA50, RSI with 70/30 guides, and MACD with its histogram.
package chart

import (
	"time"

	"github.com/guregu/null/v6"
	"github.com/rustyeddy/candlescope/pipeline"
)

type TraceKind string

const (
	KindCandlestick TraceKind = "candlestick"
	KindLine        TraceKind = "line"
	KindBar         TraceKind = "bar"
)

// Colours used by the dashboard.
const (
	ColorGreen  = "green"
	ColorRed    = "red"
	ColorOrange = "orange"
	ColorBlue   = "blue"
	ColorGray   = "gray"
)

const (
	RSIOverbought = 70.0
	RSIOversold   = 30.0
)

// Trace is one series drawn in a panel. Candlestick traces use the OHLC
// slices; line and bar traces use Y, where null marks a warm-up gap.
type Trace struct {
	Name  string       `json:"name"`
	Kind  TraceKind    `json:"kind"`
	Color string       `json:"color,omitempty"`
	X     []time.Time  `json:"x"`
	Y     []null.Float `json:"y,omitempty"`

	Open  []float64 `json:"open,omitempty"`
	High  []float64 `json:"high,omitempty"`
	Low   []float64 `json:"low,omitempty"`
	Close []float64 `json:"close,omitempty"`

	IncreasingColor string `json:"increasing_color,omitempty"`
	DecreasingColor string `json:"decreasing_color,omitempty"`
}

// HLine is a horizontal reference line.
type HLine struct {
	Y     float64 `json:"y"`
	Color string  `json:"color"`
	Dash  bool    `json:"dash"`
}

type Panel struct {
	Title  string  `json:"title"`
	Height float64 `json:"height"`
	Traces []Trace `json:"traces"`
	HLines []HLine `json:"hlines,omitempty"`
}

// Figure is the three stacked panels sharing one time axis.
type Figure struct {
	Symbol    string  `json:"symbol"`
	Timeframe string  `json:"timeframe"`
	Panels    []Panel `json:"panels"`
}

// NewFigure lays out frames as Candlestick (0.5), RSI (0.2) and MACD (0.3).
func NewFigure(symbol, timeframe string, frames []pipeline.Frame) *Figure {
	n := len(frames)
	x := make([]time.Time, n)
	open := make([]float64, n)
	high := make([]float64, n)
	low := make([]float64, n)
	closes := make([]float64, n)
	sma := make([]null.Float, n)
	rsi := make([]null.Float, n)
	macd := make([]null.Float, n)
	signal := make([]null.Float, n)
	hist := make([]null.Float, n)

	for i, f := range frames {
		x[i] = f.Time
		open[i] = f.Open
		high[i] = f.High
		low[i] = f.Low
		closes[i] = f.Close
		sma[i] = f.SMA50
		rsi[i] = f.RSI
		macd[i] = f.MACD
		signal[i] = f.MACDSignal
		hist[i] = f.MACDHist
	}

	candles := Panel{
		Title:  "Candlestick",
		Height: 0.5,
		Traces: []Trace{
			{
				Name:            "Candlestick",
				Kind:            KindCandlestick,
				X:               x,
				Open:            open,
				High:            high,
				Low:             low,
				Close:           closes,
				IncreasingColor: ColorGreen,
				DecreasingColor: ColorRed,
			},
			{Name: "SMA50", Kind: KindLine, Color: ColorOrange, X: x, Y: sma},
		},
	}

	rsiPanel := Panel{
		Title:  "RSI",
		Height: 0.2,
		Traces: []Trace{
			{Name: "RSI", Kind: KindLine, Color: ColorBlue, X: x, Y: rsi},
		},
		HLines: []HLine{
			{Y: RSIOverbought, Color: ColorRed, Dash: true},
			{Y: RSIOversold, Color: ColorGreen, Dash: true},
		},
	}

	macdPanel := Panel{
		Title:  "MACD",
		Height: 0.3,
		Traces: []Trace{
			{Name: "MACD", Kind: KindLine, Color: ColorBlue, X: x, Y: macd},
			{Name: "Signal", Kind: KindLine, Color: ColorOrange, X: x, Y: signal},
			{Name: "Histogram", Kind: KindBar, Color: ColorGray, X: x, Y: hist},
		},
	}

	return &Figure{
		Symbol:    symbol,
		Timeframe: timeframe,
		Panels:    []Panel{candles, rsiPanel, macdPanel},
	}
}

func (f *Figure) panel(title string) (Panel, bool) {
	for _, p := range f.Panels {
		if p.Title == title {
			return p, true
		}
	}
	return Panel{}, false
}
