package commands

import (
	"context"
	"fmt"

	"github.com/codesense/codesense/cmd/cmdsfx"
	"github.com/codesense/codesense/internal/config/configfx"
	"github.com/spf13/cobra"
)

func NewWatchCommand() *cobra.Command {
	var (
		project string
		dbPath  string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch a project and analyze files as they change",
		RunE: func(cmd *cobra.Command, args []string) error {
			if project == "" {
				return fmt.Errorf("--project is required")
			}
			return runWithApp(cmd.Context(), dbPath, "", "",
				func(ctx context.Context, runner *cmdsfx.CommandRunner) error {
					return runner.RunWatch(ctx, project)
				})
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Path to project root")
	cmd.Flags().StringVar(&dbPath, "db", configfx.DefaultDBPath(), "SQLite DB path")

	return cmd
}
