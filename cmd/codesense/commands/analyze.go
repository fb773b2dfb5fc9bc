package commands

import (
	"context"

	"github.com/codesense/codesense/cmd/cmdsfx"
	"github.com/codesense/codesense/internal/config/configfx"
	"github.com/spf13/cobra"
)

func NewAnalyzeCommand() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Analyze a source file for security, quality and duplication findings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := args[0]
			return runWithApp(cmd.Context(), dbPath, "", "",
				func(ctx context.Context, runner *cmdsfx.CommandRunner) error {
					return runner.RunAnalyze(ctx, file)
				})
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", configfx.DefaultDBPath(), "SQLite DB path")

	return cmd
}
