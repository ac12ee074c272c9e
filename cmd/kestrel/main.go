package main

import (
	"os"

	"github.com/simonhull/firebird-suite/kestrel/internal/commands"
)

func main() {
	rootCmd := commands.RootCmd()

	rootCmd.AddCommand(commands.ProjectCmd())
	rootCmd.AddCommand(commands.TargetsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
