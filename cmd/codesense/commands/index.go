package commands

import (
	"context"
	"fmt"

	"github.com/codesense/codesense/cmd/cmdsfx"
	"github.com/codesense/codesense/internal/config/configfx"
	"github.com/spf13/cobra"
)

func NewIndexCommand() *cobra.Command {
	var (
		project     string
		dbPath      string
		resetCorpus bool
	)

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Index a JavaScript/TypeScript project",
		RunE: func(cmd *cobra.Command, args []string) error {
			if project == "" {
				return fmt.Errorf("--project is required")
			}
			return runWithApp(cmd.Context(), dbPath, "", "",
				func(ctx context.Context, runner *cmdsfx.CommandRunner) error {
					return runner.RunIndex(ctx, project, resetCorpus)
				})
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Path to project root")
	cmd.Flags().StringVar(&dbPath, "db", configfx.DefaultDBPath(), "SQLite DB path")
	cmd.Flags().BoolVar(&resetCorpus, "reset-corpus", false,
		"Discard accumulated corpus statistics before indexing")

	return cmd
}
