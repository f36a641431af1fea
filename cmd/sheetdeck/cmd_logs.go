package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sheetdeck/sheetdeck/internal/format"
)

func newLogsCommand(flags *rootFlags) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show recent AI interactions recorded by the service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, client, err := flags.load()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("limit") {
				limit = cfg.LogLimit
			}

			entries, err := client.RecentLogs(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No interactions logged yet.") //nolint:errcheck
				return nil
			}

			for _, e := range entries {
				marker := ""
				if e.HasRequest {
					marker += " req"
				}
				if e.HasResponse {
					marker += " resp"
				}
				fmt.Fprintf(out, "%s  %s%s\n", //nolint:errcheck
					format.Timestamp(e.Timestamp),
					format.PadRight(format.Truncate(e.Context, 60), 60),
					marker)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of entries to show")
	return cmd
}
