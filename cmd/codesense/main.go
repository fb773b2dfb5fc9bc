package main

import (
	"log"

	"github.com/codesense/codesense/cmd/codesense/commands"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "codesense",
		Short: "Semantic code indexing and analysis",
	}

	rootCmd.AddCommand(
		commands.NewIndexCommand(),
		commands.NewSearchCommand(),
		commands.NewAnalyzeCommand(),
		commands.NewStatsCommand(),
		commands.NewWatchCommand(),
		commands.NewServeCommand(),
		commands.NewMCPCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
