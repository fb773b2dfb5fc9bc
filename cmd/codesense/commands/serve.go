package commands

import (
	"context"

	"github.com/codesense/codesense/cmd/cmdsfx"
	"github.com/codesense/codesense/internal/config/configfx"
	"github.com/codesense/codesense/internal/constants"
	"github.com/spf13/cobra"
)

func NewServeCommand() *cobra.Command {
	var (
		dbPath  string
		addr    string
		project string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(cmd.Context(), dbPath, project, addr,
				func(ctx context.Context, runner *cmdsfx.CommandRunner) error {
					return runner.RunServe(ctx, addr)
				})
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", configfx.DefaultDBPath(), "SQLite DB path")
	cmd.Flags().StringVar(&addr, "address", constants.DefaultHTTPAddr, "Listen address")
	cmd.Flags().StringVar(&project, "project", "", "Optional project to index on startup")

	return cmd
}
