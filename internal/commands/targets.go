package commands

import (
	"fmt"
	"os"

	"github.com/simonhull/firebird-suite/fledge/output"
	"github.com/simonhull/firebird-suite/kestrel/internal/config"
	"github.com/simonhull/firebird-suite/kestrel/internal/universe"
	"github.com/spf13/cobra"
)

// TargetsCmd creates and returns the 'targets' command for listing build targets
func TargetsCmd() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "targets [target...]",
		Short: "List build targets declared in BUILD.yml files",
		Long: `List the targets declared in BUILD.yml files.

Without arguments, lists every target in the repository. With arguments,
lists the named targets and their transitive dependencies.`,
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load(".")
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			store := universe.NewStore(universe.NewParser(".", cfg.Ignore))

			g, err := store.FullGraph()
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}
			if len(args) > 0 {
				roots, err := parseTargets(args)
				if err != nil {
					output.Error(err.Error())
					os.Exit(1)
				}
				g, err = store.GraphForRoots(roots)
				if err != nil {
					output.Error(err.Error())
					os.Exit(1)
				}
			}

			writer := cmd.OutOrStdout()
			count := 0
			for _, node := range g.Nodes() {
				if kind != "" && node.Kind != kind {
					continue
				}
				fmt.Fprintf(writer, "%s (%s)\n", node.ID, node.Kind)
				count++
			}
			output.Verbose(fmt.Sprintf("%d targets", count))
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Only list targets of this kind")

	return cmd
}
