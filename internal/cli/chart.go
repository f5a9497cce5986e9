package cli

import (
	"context"
	"encoding/json"

	"github.com/rustyeddy/candlescope/chart"
	"github.com/rustyeddy/candlescope/market"
	"github.com/spf13/cobra"
)

func newChartCmd(rc *RootConfig) *cobra.Command {
	var (
		symbol    string
		timeframe string
		limit     int
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Fetch candles and print the latest indicator values",
		Example: `  candlescope chart --symbol BTC/USDT --timeframe 1h
  candlescope chart --symbol ETH/USDT --timeframe 4h --limit 200 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := rc.Config.Request()
			if cmd.Flags().Changed("symbol") {
				req.Symbol = symbol
			}
			if cmd.Flags().Changed("timeframe") {
				req.Timeframe = timeframe
			}
			if cmd.Flags().Changed("limit") {
				req.Limit = limit
			}

			svc, closeFn, err := rc.service(nil)
			if err != nil {
				return err
			}
			defer closeFn()

			res, err := svc.Run(context.Background(), req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(chart.NewFigure(res.Series.Symbol, res.Series.Timeframe, res.Frames))
			}

			printf(out, "%s\n", chart.LatestTable(res.Series.Symbol, res.Series.Timeframe, res.Frames))
			printf(out, "%d bars, run %s\n", len(res.Frames), res.RunID)
			return nil
		},
	}

	cmd.Flags().StringVar(&symbol, "symbol", "", "Trading pair, e.g. BTC/USDT (default from config)")
	cmd.Flags().StringVar(&timeframe, "timeframe", "", "Candle interval: 1m|5m|15m|1h|4h|1d (default from config)")
	cmd.Flags().IntVar(&limit, "limit", market.DefaultLimit, "Number of candles to fetch")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the chart figure as JSON")

	return cmd
}
