package commands

import (
	"context"

	"github.com/codesense/codesense/cmd/cmdsfx"
	"github.com/codesense/codesense/internal/config/configfx"
	"github.com/spf13/cobra"
)

// NewMCPCommand starts an MCP server exposing search, analysis and
// indexing tools.
func NewMCPCommand() *cobra.Command {
	var (
		project   string
		dbPath    string
		transport string
		address   string
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run MCP server",
		Long:  "Run MCP server, provide code search and analysis tools.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(cmd.Context(), dbPath, project, "",
				func(ctx context.Context, runner *cmdsfx.CommandRunner) error {
					return runner.RunMCPServer(transport, address)
				})
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "project path to pre-index")
	cmd.Flags().StringVarP(&dbPath, "db", "d", configfx.DefaultDBPath(), "SQLite database path")
	cmd.Flags().
		StringVarP(&transport, "transport", "t", "stdio", "transport (stdio, http, sse)")
	cmd.Flags().StringVarP(&address, "address", "a", "", "server address (http modes), e.g. :8080")

	return cmd
}
