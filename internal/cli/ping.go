package cli

import (
	"context"

	"github.com/spf13/cobra"
)

func newPingCmd(rc *RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check the exchange connection and credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			c := rc.client()
			out := cmd.OutOrStdout()

			if err := c.Ping(ctx); err != nil {
				return err
			}
			printf(out, "✓ Connected to %s\n", rc.Config.Exchange.BaseURL)

			if !c.HasCredentials() {
				printf(out, "  No API credentials configured; public data only\n")
				return nil
			}
			if err := c.VerifyCredentials(ctx); err != nil {
				return err
			}
			printf(out, "✓ API credentials accepted\n")
			return nil
		},
	}
}
