package commands

import (
	"context"

	"github.com/codesense/codesense/cmd/cmdsfx"
	"github.com/codesense/codesense/internal/config/configfx"
	"github.com/spf13/cobra"
)

func NewStatsCommand() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show semantic index statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(cmd.Context(), dbPath, "", "",
				func(ctx context.Context, runner *cmdsfx.CommandRunner) error {
					return runner.RunStats(ctx)
				})
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", configfx.DefaultDBPath(), "SQLite DB path")

	return cmd
}
