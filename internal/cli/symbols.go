package cli

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rustyeddy/candlescope/market"
	"github.com/spf13/cobra"
)

func newSymbolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "symbols",
		Short: "List supported symbols and timeframes",
		RunE: func(cmd *cobra.Command, args []string) error {
			t := table.NewWriter()
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Symbols", "Timeframes"})
			t.AppendRow(table.Row{
				strings.Join(market.Symbols, "\n"),
				strings.Join(market.Timeframes, "\n"),
			})
			printf(cmd.OutOrStdout(), "%s\n", t.Render())
			return nil
		},
	}
}
