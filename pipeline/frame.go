package pipeline

import (
	"github.com/guregu/null/v6"
	"github.com/rustyeddy/candlescope/market"
)

// Frame is one bar extended with the indicator values known at its close.
// Indicator fields are invalid (JSON null) during their warm-up period.
type Frame struct {
	market.Bar

	RSI        null.Float `json:"rsi"`
	MACD       null.Float `json:"macd"`
	MACDSignal null.Float `json:"macd_signal"`
	MACDHist   null.Float `json:"macd_hist"`
	SMA50      null.Float `json:"sma50"`
}
