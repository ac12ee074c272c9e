package universe

import (
	"fmt"
	"sync"

	"github.com/simonhull/firebird-suite/kestrel/internal/graph"
)

// Store serves target graphs and rule graphs over one parsed universe.
//
// The universe is parsed at most once per store and reused by every closure
// request, so overlapping closures within one generation invocation are
// cheap. Realization is memoized per TargetGraph identity. All methods are
// safe for concurrent use; the graphs they return are immutable.
type Store struct {
	parser *Parser

	mu       sync.Mutex
	universe map[graph.Identifier]*graph.TargetNode
	full     *graph.TargetGraph
	realized map[*graph.TargetGraph]*graph.RuleGraph
}

// NewStore creates a store backed by a BUILD file parser.
func NewStore(parser *Parser) *Store {
	return &Store{
		parser:   parser,
		realized: make(map[*graph.TargetGraph]*graph.RuleGraph),
	}
}

// NewStoreFromNodes creates a store over an already-declared universe.
// Used by tests and tools that construct targets programmatically.
func NewStoreFromNodes(nodes []*graph.TargetNode) (*Store, error) {
	s := &Store{realized: make(map[*graph.TargetGraph]*graph.RuleGraph)}
	if err := s.populate(nodes); err != nil {
		return nil, err
	}
	return s, nil
}

// FullGraph returns the graph of every target in the project.
func (s *Store) FullGraph() (*graph.TargetGraph, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureUniverse(); err != nil {
		return nil, err
	}
	return s.full, nil
}

// GraphForRoots returns the transitive closure of the given roots. An
// identifier that does not resolve to a declared target is a construction
// error.
func (s *Store) GraphForRoots(roots []graph.Identifier) (*graph.TargetGraph, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureUniverse(); err != nil {
		return nil, err
	}

	var closure []*graph.TargetNode
	seen := make(map[graph.Identifier]bool)
	var visit func(id graph.Identifier) error
	visit = func(id graph.Identifier) error {
		if seen[id] {
			return nil
		}
		seen[id] = true
		node, ok := s.universe[id]
		if !ok {
			return &graph.ConstructionError{Target: id, Reason: "no such target"}
		}
		for _, dep := range node.Deps {
			if err := visit(dep); err != nil {
				return err
			}
		}
		closure = append(closure, node)
		return nil
	}
	for _, root := range roots {
		if err := visit(root); err != nil {
			return nil, err
		}
	}

	return graph.NewTargetGraph(closure)
}

// Realize returns the rule graph for a target graph, memoized per graph
// identity: realizing the same graph twice yields the same RuleGraph.
func (s *Store) Realize(g *graph.TargetGraph) (*graph.RuleGraph, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rg, ok := s.realized[g]; ok {
		return rg, nil
	}
	rg, err := graph.Realize(g)
	if err != nil {
		return nil, err
	}
	s.realized[g] = rg
	return rg, nil
}

// FindRule looks up a realized rule by identifier. Absence is a first-class
// outcome, not an error.
func (s *Store) FindRule(rg *graph.RuleGraph, id graph.Identifier) (graph.Rule, bool) {
	return rg.Rule(id)
}

// ensureUniverse parses and validates the universe once. Callers hold s.mu.
func (s *Store) ensureUniverse() error {
	if s.universe != nil {
		return nil
	}
	if s.parser == nil {
		return &graph.ConstructionError{Reason: "store has no parser and no declared universe"}
	}
	nodes, err := s.parser.ParseAll()
	if err != nil {
		return err
	}
	return s.populate(nodes)
}

// populate indexes the universe, builds the full graph, and rejects
// duplicate targets, dangling dependencies, and declaration cycles.
func (s *Store) populate(nodes []*graph.TargetNode) error {
	byID := make(map[graph.Identifier]*graph.TargetNode, len(nodes))
	for _, n := range nodes {
		if _, dup := byID[n.ID]; dup {
			return &graph.ConstructionError{Target: n.ID, Reason: "declared more than once"}
		}
		byID[n.ID] = n
	}

	full, err := graph.NewTargetGraph(nodes)
	if err != nil {
		return err
	}
	if err := checkAcyclic(full); err != nil {
		return err
	}

	s.universe = byID
	s.full = full
	return nil
}

// checkAcyclic rejects dependency cycles with a DFS over the whole graph.
func checkAcyclic(g *graph.TargetGraph) error {
	visited := make(map[graph.Identifier]bool)
	visiting := make(map[graph.Identifier]bool)

	var visit func(id graph.Identifier) error
	visit = func(id graph.Identifier) error {
		if visiting[id] {
			return &graph.ConstructionError{
				Target: id,
				Reason: fmt.Sprintf("dependency cycle involving %s", id),
			}
		}
		if visited[id] {
			return nil
		}
		visiting[id] = true
		node, _ := g.Node(id)
		for _, dep := range node.Deps {
			if err := visit(dep); err != nil {
				return err
			}
		}
		visiting[id] = false
		visited[id] = true
		return nil
	}

	for _, id := range g.Identifiers() {
		if !visited[id] {
			if err := visit(id); err != nil {
				return err
			}
		}
	}
	return nil
}
