package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the build's Git SHA",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sha := a.GitSHA
			if sha == "" {
				sha = "unknown"
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "pds-didweb %s\n", sha)
			if a.GitDirty != "" {
				fmt.Fprintln(w, "Git Dirty: true")
			}
			return nil
		},
	}
}
