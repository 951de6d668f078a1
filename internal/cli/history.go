package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"TradeFolder/internal/recorder"
)

func (a *App) historyCommand() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent exports from the run ledger",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(a.configPath)
			if err != nil {
				return err
			}
			if cfg.Database.SQLitePath == "" {
				return fmt.Errorf("run ledger disabled: set database.sqlite_path or SQLITE_PATH")
			}
			rec, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
			if err != nil {
				return err
			}
			defer rec.Close()

			runs, err := rec.RecentRuns(limit)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tWHEN\tTICKER\tSTART\tPROVIDER\tOK\tEMPTY\tFAILED\tFOLDER")
			for _, r := range runs {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
					r.ID, r.Timestamp.Format("2006-01-02 15:04"), r.Ticker, r.StartDate, r.Provider,
					r.OK, r.Empty, r.Failed, r.OutputDir)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of runs to show")
	return cmd
}
