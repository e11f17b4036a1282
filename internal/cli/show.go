package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vfg2006/budget-guard-api/internal/usecases/auditing"
)

func (a *app) showCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <audit_json>",
		Short: "Print the summary of a saved audit file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, err := auditing.LoadFromFile(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "  Snapshot:  %s\n", snapshot.ID)
			fmt.Fprintf(out, "  Generated: %s (version %s)\n", snapshot.Timestamp.Format("2006-01-02 15:04:05"), snapshot.Version)

			printSummary(out, snapshot)
			printCriticalAlerts(out, snapshot)
			return nil
		},
	}
}
