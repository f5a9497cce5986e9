package cli

import (
	"fmt"

	"github.com/rustyeddy/candlescope/config"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Generate or validate configuration files",
		Long: `Manage configuration files.

Subcommands:
  init     - Generate a default configuration file
  validate - Validate an existing configuration file`,
	}

	var output string
	initCmd := &cobra.Command{
		Use:     "init",
		Short:   "Generate a default configuration file",
		Example: "  candlescope config init --output candlescope.yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Default().SaveToFile(output); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			printf(cmd.OutOrStdout(), "✓ Created default configuration: %s\n", output)
			return nil
		},
	}
	initCmd.Flags().StringVarP(&output, "output", "o", "candlescope.yaml", "output config file path")

	var path string
	validateCmd := &cobra.Command{
		Use:     "validate",
		Short:   "Validate a configuration file",
		Example: "  candlescope config validate --file candlescope.yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFromFile(path)
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			out := cmd.OutOrStdout()
			printf(out, "✓ Configuration valid: %s\n", path)
			printf(out, "  Exchange: %s (credentials: %t)\n", cfg.Exchange.BaseURL, cfg.Exchange.APIKey != "")
			printf(out, "  Chart: %s %s x%d\n", cfg.Chart.Symbol, cfg.Chart.Timeframe, cfg.Chart.Limit)
			printf(out, "  Journal: %t\n", cfg.Journal.Enabled)
			return nil
		},
	}
	validateCmd.Flags().StringVarP(&path, "file", "f", "", "path to config file (required)")
	_ = validateCmd.MarkFlagRequired("file")

	cmd.AddCommand(initCmd, validateCmd)
	return cmd
}
