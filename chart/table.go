package chart

import (
	"strconv"
	"time"

	"github.com/guregu/null/v6"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rustyeddy/candlescope/pipeline"
)

// LatestTable renders the most recent frame as a two-column table.
// It returns "" when there are no frames.
func LatestTable(symbol, timeframe string, frames []pipeline.Frame) string {
	if len(frames) == 0 {
		return ""
	}
	f := frames[len(frames)-1]

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.SetTitle(symbol + " " + timeframe)
	t.AppendHeader(table.Row{"Field", "Value"})
	t.AppendRows([]table.Row{
		{"Time", f.Time.UTC().Format(time.RFC3339)},
		{"Open", num(f.Open)},
		{"High", num(f.High)},
		{"Low", num(f.Low)},
		{"Close", num(f.Close)},
		{"Volume", num(f.Volume)},
	})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"SMA50", opt(f.SMA50)},
		{"RSI", opt(f.RSI)},
		{"MACD", opt(f.MACD)},
		{"Signal", opt(f.MACDSignal)},
		{"Histogram", opt(f.MACDHist)},
	})
	return t.Render()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func opt(v null.Float) string {
	if !v.Valid {
		return "-"
	}
	return strconv.FormatFloat(v.Float64, 'f', 4, 64)
}
