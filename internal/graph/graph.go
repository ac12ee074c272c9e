package graph

import (
	"fmt"
	"sort"
)

// TargetGraph is an immutable set of TargetNodes closed under "depends on":
// every dependency declared by a contained node is itself contained. A graph
// never holds a dangling edge.
type TargetGraph struct {
	nodes map[Identifier]*TargetNode
	order []Identifier // sorted, for deterministic iteration
}

// NewTargetGraph builds a graph from nodes, verifying the closure invariant.
func NewTargetGraph(nodes []*TargetNode) (*TargetGraph, error) {
	byID := make(map[Identifier]*TargetNode, len(nodes))
	for _, n := range nodes {
		if _, dup := byID[n.ID]; dup {
			return nil, &ConstructionError{Target: n.ID, Reason: "duplicate target"}
		}
		byID[n.ID] = n
	}
	for _, n := range nodes {
		for _, dep := range n.Deps {
			if _, ok := byID[dep]; !ok {
				return nil, &ConstructionError{
					Target: n.ID,
					Reason: fmt.Sprintf("dangling dependency on %s", dep),
				}
			}
		}
	}

	order := make([]Identifier, 0, len(byID))
	for id := range byID {
		order = append(order, id)
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	return &TargetGraph{nodes: byID, order: order}, nil
}

// Node returns the node with the given identifier.
func (g *TargetGraph) Node(id Identifier) (*TargetNode, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Contains reports whether the graph holds a node with the given identifier.
func (g *TargetGraph) Contains(id Identifier) bool {
	_, ok := g.nodes[id]
	return ok
}

// Nodes returns all nodes in deterministic (identifier) order.
func (g *TargetGraph) Nodes() []*TargetNode {
	out := make([]*TargetNode, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id])
	}
	return out
}

// Identifiers returns all target identifiers in deterministic order.
func (g *TargetGraph) Identifiers() []Identifier {
	out := make([]Identifier, len(g.order))
	copy(out, g.order)
	return out
}

// Size returns the number of targets in the graph.
func (g *TargetGraph) Size() int { return len(g.nodes) }

// IsSubsetOf reports whether every target in g is also in other.
func (g *TargetGraph) IsSubsetOf(other *TargetGraph) bool {
	for id := range g.nodes {
		if !other.Contains(id) {
			return false
		}
	}
	return true
}
