package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rustyeddy/candlescope/journal"
	"github.com/spf13/cobra"
)

func newJournalCmd(rc *RootConfig) *cobra.Command {
	var (
		dbPath string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "List recent requests from the SQLite journal",
		Long: `List the most recent chart requests recorded in the request journal,
newest first. The journal is written only when journal.enabled is set.

Examples:
  candlescope journal
  candlescope journal --limit 50 --db ./candlescope.sqlite`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("db") {
				dbPath = rc.Config.Journal.DBPath
			}
			if limit <= 0 {
				return fmt.Errorf("--limit must be positive (got %d)", limit)
			}
			if _, err := os.Stat(dbPath); err != nil {
				return fmt.Errorf("open journal: %w", err)
			}

			j, err := journal.NewSQLite(dbPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer j.Close()

			runs, err := j.ListRuns(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("query runs: %w", err)
			}

			printf(cmd.OutOrStdout(), "%s\n", runsTable(runs))
			return nil
		},
	}

	cmd.Flags().StringVarP(&dbPath, "db", "d", "", "path to SQLite journal DB (default from config)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of runs to show")

	return cmd
}

func runsTable(runs []journal.RunRecord) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Run", "Started", "Symbol", "TF", "Limit", "Bars", "Status", "Duration", "Error"})
	for _, r := range runs {
		t.AppendRow(table.Row{
			r.RunID,
			r.StartedAt.UTC().Format(time.RFC3339),
			r.Symbol,
			r.Timeframe,
			r.Limit,
			r.Bars,
			r.Status,
			r.Duration.Round(time.Millisecond).String(),
			r.Error,
		})
	}
	t.AppendFooter(table.Row{"", "", "", "", "", "", "", "runs", len(runs)})
	return t.Render()
}
