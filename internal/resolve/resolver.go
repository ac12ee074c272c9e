package resolve

import (
	"github.com/simonhull/firebird-suite/kestrel/internal/graph"
)

// Store is the slice of the target universe store the resolver needs. It is
// assumed deterministic: the same inputs yield graphs with the same target
// sets. Implementations may cache or parallelize internally; the resolver
// re-requests overlapping closures freely.
type Store interface {
	// FullGraph returns every target in the project.
	FullGraph() (*graph.TargetGraph, error)

	// GraphForRoots returns the transitive closure of the given roots,
	// failing with a graph construction error on unresolvable identifiers.
	GraphForRoots(roots []graph.Identifier) (*graph.TargetGraph, error)

	// Realize returns the rule graph for a target graph, memoizable per
	// graph identity.
	Realize(g *graph.TargetGraph) (*graph.RuleGraph, error)

	// FindRule looks up a realized rule; absence is not an error.
	FindRule(rg *graph.RuleGraph, id graph.Identifier) (graph.Rule, bool)
}

// AssociatedTargetGraph computes the target graph related to a reference
// graph: the closure of additionalRoots plus every universe-wide target that
// passes the membership predicate and whose realization the association
// predicate accepts against the realized reference graph.
//
// The candidate graph built here is only used to test association; the
// returned graph is independently re-closed from the accepted roots, which
// guarantees the closure invariant regardless of how candidates were
// filtered. A candidate missing from its own realized graph counts as "not
// associated" rather than failing the resolution.
func AssociatedTargetGraph(
	store Store,
	reference *graph.TargetGraph,
	additionalRoots []graph.Identifier,
	full *graph.TargetGraph,
	membership NodePredicate,
	associated RulePredicate,
) (*graph.TargetGraph, error) {
	candidates := FilterTargets(full, membership)

	candidateGraph, err := store.GraphForRoots(candidates)
	if err != nil {
		return nil, err
	}
	candidateRules, err := store.Realize(candidateGraph)
	if err != nil {
		return nil, err
	}
	referenceRules, err := store.Realize(reference)
	if err != nil {
		return nil, err
	}

	roots := make([]graph.Identifier, 0, len(additionalRoots))
	seen := make(map[graph.Identifier]bool, len(additionalRoots))
	for _, id := range additionalRoots {
		if !seen[id] {
			roots = append(roots, id)
			seen[id] = true
		}
	}
	for _, id := range candidates {
		rule, ok := store.FindRule(candidateRules, id)
		if !ok {
			// Filtered out during realization; not associated.
			continue
		}
		if associated.Match(rule, referenceRules) && !seen[id] {
			roots = append(roots, id)
			seen[id] = true
		}
	}

	return store.GraphForRoots(roots)
}
