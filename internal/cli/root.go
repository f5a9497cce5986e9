package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rustyeddy/candlescope/analysis"
	"github.com/rustyeddy/candlescope/binance"
	"github.com/rustyeddy/candlescope/config"
	"github.com/rustyeddy/candlescope/internal/logger"
	"github.com/rustyeddy/candlescope/journal"
	"github.com/rustyeddy/candlescope/metrics"
	"github.com/spf13/cobra"
)

// RootConfig carries the persistent flags and the loaded configuration to
// every subcommand.
type RootConfig struct {
	ConfigPath string
	LogLevel   string
	APIKey     string
	APISecret  string

	Config *config.Config
}

func NewRootCmd() *cobra.Command {
	rc := &RootConfig{}

	cmd := &cobra.Command{
		Use:   "candlescope",
		Short: "Candles with RSI, MACD and SMA50 from a Binance-compatible exchange",
		Long: `candlescope fetches recent OHLCV candles from a Binance-compatible exchange
and computes RSI(14), MACD(12,26,9) and SMA(50) for a three-panel chart.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&rc.ConfigPath, "config", "", "Path to config file (optional)")
	cmd.PersistentFlags().StringVar(&rc.LogLevel, "log-level", "", "Log level: debug|info|warn|error")
	cmd.PersistentFlags().StringVar(&rc.APIKey, "api-key", "", "Exchange API key (overrides config and env)")
	cmd.PersistentFlags().StringVar(&rc.APISecret, "api-secret", "", "Exchange API secret (overrides config and env)")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return rc.load(cmd)
	}

	cmd.AddCommand(
		newChartCmd(rc),
		newPingCmd(rc),
		newSymbolsCmd(),
		newServeCmd(rc),
		newConfigCmd(),
		newJournalCmd(rc),
		newVersionCmd(),
	)

	return cmd
}

func (rc *RootConfig) load(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load(rc.ConfigPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("api-key") {
		cfg.Exchange.APIKey = strings.TrimSpace(rc.APIKey)
	}
	if flags.Changed("api-secret") {
		cfg.Exchange.APISecret = strings.TrimSpace(rc.APISecret)
	}
	if rc.LogLevel != "" {
		cfg.Log.Level = rc.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logger.InitWriter(cmd.ErrOrStderr(), "candlescope", level)

	rc.Config = cfg
	return nil
}

func (rc *RootConfig) client() *binance.Client {
	return binance.NewClient(rc.Config.Binance())
}

// service builds an analysis.Service. The returned close func releases the
// journal when one is configured.
func (rc *RootConfig) service(m *metrics.Metrics) (*analysis.Service, func() error, error) {
	var j journal.Journal = journal.Nop{}
	if rc.Config.Journal.Enabled {
		sj, err := journal.NewSQLite(rc.Config.Journal.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open journal: %w", err)
		}
		j = sj
	}
	return analysis.NewService(rc.client(), m, j), j.Close, nil
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func printf(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format, args...)
}
