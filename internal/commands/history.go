package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) newHistoryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show recorded runs as date,host,total,matched",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.History == nil {
				return errors.New("HISTORY_DB must be set")
			}
			runs, err := a.History.Runs(context.Background())
			if err != nil {
				return fmt.Errorf("reading history: %w", err)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Recorded runs: %d\n", len(runs))
			for _, run := range runs {
				fmt.Fprintf(w, "%s,%s,%d,%d\n", run.Date, run.Host, run.Total, run.Matched)
			}
			return nil
		},
	}
}
