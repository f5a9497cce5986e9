package cli

import (
	"github.com/spf13/cobra"
)

const version = "0.1.0"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			printf(cmd.OutOrStdout(), "candlescope version %s\n", version)
		},
	}
}
