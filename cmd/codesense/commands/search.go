package commands

import (
	"context"

	"github.com/codesense/codesense/cmd/cmdsfx"
	"github.com/codesense/codesense/internal/config/configfx"
	"github.com/codesense/codesense/internal/constants"
	"github.com/spf13/cobra"
)

func NewSearchCommand() *cobra.Command {
	var (
		dbPath string
		topK   int
		scope  string
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Semantic code search over the index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := args[0]
			return runWithApp(cmd.Context(), dbPath, "", "",
				func(ctx context.Context, runner *cmdsfx.CommandRunner) error {
					return runner.RunSearch(ctx, query, topK, scope)
				})
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", configfx.DefaultDBPath(), "SQLite DB path")
	cmd.Flags().IntVar(&topK, "top-k", constants.DefaultTopK, "Top K results")
	cmd.Flags().StringVar(&scope, "scope", "", "Restrict results to a project root")

	return cmd
}
