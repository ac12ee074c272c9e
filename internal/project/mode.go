package project

import (
	"fmt"

	"github.com/simonhull/firebird-suite/kestrel/internal/graph"
	"github.com/simonhull/firebird-suite/kestrel/internal/resolve"
)

// IDE selects one of the two supported generation workflows. The set is
// closed; each IDE carries its own predicate set and backend.
type IDE string

const (
	// IntelliJ generates one project from project_config targets.
	IntelliJ IDE = "intellij"

	// Xcode generates workspaces and projects from xcode_*_config targets.
	Xcode IDE = "xcode"
)

// ParseIDE validates an --ide flag or config value.
func ParseIDE(s string) (IDE, error) {
	switch IDE(s) {
	case IntelliJ, Xcode:
		return IDE(s), nil
	default:
		return "", fmt.Errorf("unknown ide %q (valid: intellij, xcode)", s)
	}
}

// Strategy selects how Xcode projects are laid out. The three strategies
// are mutually exclusive.
type Strategy int

const (
	// SeparatedProjects generates one project per matched project-config
	// root, each independent of the others.
	SeparatedProjects Strategy = iota

	// CombinedProject generates a single project for the explicit targets
	// and their dependencies and tests.
	CombinedProject

	// WorkspaceAndProjects generates one workspace plus its projects per
	// matched workspace-config root, sharing project generation across
	// workspaces.
	WorkspaceAndProjects
)

// Predicates builds the per-mode predicate set. Xcode root discovery skips
// targets under excludedPaths unless they were requested explicitly.
func Predicates(ide IDE, strategy Strategy, excludedPaths []string, explicit []graph.Identifier) resolve.PredicateSet {
	switch ide {
	case Xcode:
		rootKind := graph.KindXcodeProjectConfig
		if strategy == WorkspaceAndProjects {
			rootKind = graph.KindXcodeWorkspaceConfig
		}
		return resolve.PredicateSet{
			Roots:             resolve.NewExcludedPathsPredicate(rootKind, excludedPaths, explicit),
			ProjectMembership: resolve.KindPredicate{Kind: graph.KindXcodeProjectConfig},
			AssociatedProject: resolve.XcodeProjectAssociation{},
		}
	default: // IntelliJ
		return resolve.PredicateSet{
			Roots:             resolve.KindPredicate{Kind: graph.KindProjectConfig},
			ProjectMembership: resolve.KindPredicate{Kind: graph.KindProjectConfig},
			AssociatedProject: resolve.ProjectConfigAssociation{},
		}
	}
}

// InvalidRootError reports an explicitly requested target that lacks the
// capability the current mode requires.
type InvalidRootError struct {
	Target graph.Identifier
	Want   string
}

func (e *InvalidRootError) Error() string {
	return fmt.Sprintf("%s must be a %s", e.Target, e.Want)
}
