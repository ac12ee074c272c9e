package commands

import (
	"github.com/simonhull/firebird-suite/fledge/output"
	"github.com/simonhull/firebird-suite/kestrel"
	"github.com/spf13/cobra"
)

// RootCmd creates and returns the root command for the Kestrel CLI
func RootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "kestrel",
		Short: "IDE project generation from declared build targets",
		Long: `Kestrel derives IDE projects from the BUILD.yml targets in your repository.

Point it at config targets (or let it discover them) and it resolves the
target graph, pulls in covering tests, and generates project files:
• IntelliJ module descriptions from project_config targets
• Xcode workspaces and projects from xcode_*_config targets

Learn more: https://github.com/simonhull/firebird-suite`,
		Version: kestrel.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.SetVerbose(verbose)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")

	return cmd
}
