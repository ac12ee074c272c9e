package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/simonhull/firebird-suite/fledge/output"
	"github.com/simonhull/firebird-suite/kestrel/internal/config"
	"github.com/simonhull/firebird-suite/kestrel/internal/project"
	"github.com/simonhull/firebird-suite/kestrel/internal/resolve"
	"github.com/simonhull/firebird-suite/kestrel/internal/universe"
	"github.com/spf13/cobra"
)

// ProjectCmd creates and returns the 'project' command for IDE project generation
func ProjectCmd() *cobra.Command {
	var ide string
	var withTests, combined, workspaces bool
	var dryRun, force bool

	cmd := &cobra.Command{
		Use:   "project [target...]",
		Short: "Generate IDE project files from build targets",
		Long: `Generate IDE project files from the targets declared in BUILD.yml files.

Without arguments, every config target of the selected IDE becomes a
generation root. With arguments, only the named targets (and whatever they
pull in) are used — explicit targets also override excluded_paths from
kestrel.yml.

Examples:
  # Generate for every project_config in the repository
  kestrel project

  # Generate for one module and its dependencies, with covering tests
  kestrel project //lib/parser:project --with-tests

  # Xcode: one workspace per xcode_workspace_config target
  kestrel project --ide xcode --workspaces

  # Xcode: a single combined project for the named targets
  kestrel project --ide xcode --combined-project //app:app`,
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()

			if combined && workspaces {
				output.Error("Conflicting flags: --combined-project and --workspaces are mutually exclusive")
				os.Exit(1)
			}

			cfg, err := config.Load(".")
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			if ide == "" {
				ide = cfg.IDE
			}
			mode, err := project.ParseIDE(ide)
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			strategy := project.SeparatedProjects
			if combined {
				strategy = project.CombinedProject
			} else if workspaces {
				strategy = project.WorkspaceAndProjects
			}
			if mode != project.Xcode && (combined || workspaces) {
				output.Error("--combined-project and --workspaces require --ide xcode")
				os.Exit(1)
			}

			explicit, err := parseTargets(args)
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			store := universe.NewStore(universe.NewParser(".", cfg.Ignore))
			set := project.Predicates(mode, strategy, cfg.ExcludedPaths, explicit)

			output.Verbose(fmt.Sprintf("Assembling graphs (ide=%s, %d explicit targets)", mode, len(explicit)))
			graphs, err := resolve.NewAssembler(store, set).Assemble(resolve.Options{
				ExplicitRoots: explicit,
				WithTests:     withTests,
			})
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			if !project.EnsureIDEClosed(mode, cfg.IDEPrompt) {
				output.Info("Aborted")
				return
			}

			dispatcher := &project.Dispatcher{
				Store:    store,
				IDE:      mode,
				Strategy: strategy,
				OutDir:   cfg.OutDir,
				ReadOnly: cfg.ReadOnly,
				DryRun:   dryRun,
				Force:    force,
				Writer:   cmd.OutOrStdout(),
			}
			if err := dispatcher.Generate(ctx, graphs, explicit); err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			if dryRun {
				fmt.Fprintln(cmd.OutOrStdout(), "\n✓ Dry-run complete. Run without --dry-run to create files.")
			} else {
				output.Success(fmt.Sprintf("Generated %s project files (%d targets)", mode, graphs.Project.Size()))
			}
		},
	}

	cmd.Flags().StringVar(&ide, "ide", "", "Target IDE: intellij or xcode (default from kestrel.yml)")
	cmd.Flags().BoolVar(&withTests, "with-tests", false, "Include tests covering the resolved targets")
	cmd.Flags().BoolVar(&combined, "combined-project", false, "Generate a single combined Xcode project")
	cmd.Flags().BoolVar(&workspaces, "workspaces", false, "Generate Xcode workspaces from xcode_workspace_config targets")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be generated without creating files")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files without asking")

	return cmd
}
