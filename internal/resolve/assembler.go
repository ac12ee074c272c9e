package resolve

import (
	"fmt"

	"github.com/simonhull/firebird-suite/fledge/output"
	"github.com/simonhull/firebird-suite/kestrel/internal/graph"
)

// PredicateSet is the per-mode predicate triple driving graph assembly.
type PredicateSet struct {
	// Roots selects valid generation roots among declared targets.
	Roots NodePredicate

	// ProjectMembership selects project-config candidates across the full
	// universe.
	ProjectMembership NodePredicate

	// AssociatedProject decides whether a candidate project config relates
	// to the reference graph.
	AssociatedProject RulePredicate
}

// Options control one graph assembly invocation.
type Options struct {
	// ExplicitRoots are user-supplied targets. When non-empty they are used
	// exactly as given, without root-predicate filtering.
	ExplicitRoots []graph.Identifier

	// WithTests requests the test-coverage graph.
	WithTests bool
}

// Graphs is the assembled output of one invocation: main ⊆ (test ?? main) ⊆
// project by construction. Graphs live for a single generation invocation.
type Graphs struct {
	Main *graph.TargetGraph

	// Test is nil unless Options.WithTests was set.
	Test *graph.TargetGraph

	Project *graph.TargetGraph
}

// Reference returns the graph the project stage associated against: the test
// graph when present, else the main graph.
func (g *Graphs) Reference() *graph.TargetGraph {
	if g.Test != nil {
		return g.Test
	}
	return g.Main
}

// Assembler orchestrates the three resolver stages over one store.
type Assembler struct {
	store Store
	set   PredicateSet
}

// NewAssembler creates an assembler for one mode's predicate set.
func NewAssembler(store Store, set PredicateSet) *Assembler {
	return &Assembler{store: store, set: set}
}

// Assemble derives the main, optional test, and project graphs in strict
// order. Each stage blocks on the store and must complete before the next:
// later stages take the prior stage's closed graph as their reference. Any
// store failure aborts the whole assembly.
func (a *Assembler) Assemble(opts Options) (*Graphs, error) {
	full, err := a.store.FullGraph()
	if err != nil {
		return nil, err
	}

	// Main graph: the closure of the selected roots, no association step.
	mainRoots := opts.ExplicitRoots
	if len(mainRoots) == 0 {
		mainRoots = FilterTargets(full, a.set.Roots)
	}
	mainGraph, err := a.store.GraphForRoots(mainRoots)
	if err != nil {
		return nil, err
	}
	output.Verbose(fmt.Sprintf("Main graph: %d roots, %d targets", len(mainRoots), mainGraph.Size()))

	// Test graph: tests covering the main graph, plus the main graph
	// itself. Passing the reference's targets as additional roots keeps the
	// reference verbatim in the result.
	var testGraph *graph.TargetGraph
	if opts.WithTests {
		testGraph, err = AssociatedTargetGraph(
			a.store,
			mainGraph,
			mainGraph.Identifiers(),
			full,
			TestKindPredicate{},
			TestAssociation{},
		)
		if err != nil {
			return nil, err
		}
		output.Verbose(fmt.Sprintf("Test graph: %d targets", testGraph.Size()))
	}

	// Project graph: project configs referencing the test-or-main graph,
	// plus that reference graph itself.
	reference := mainGraph
	if testGraph != nil {
		reference = testGraph
	}
	projectGraph, err := AssociatedTargetGraph(
		a.store,
		reference,
		reference.Identifiers(),
		full,
		a.set.ProjectMembership,
		a.set.AssociatedProject,
	)
	if err != nil {
		return nil, err
	}
	output.Verbose(fmt.Sprintf("Project graph: %d targets", projectGraph.Size()))

	return &Graphs{Main: mainGraph, Test: testGraph, Project: projectGraph}, nil
}
