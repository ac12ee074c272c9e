package resolve

import (
	"fmt"
	"strings"

	"github.com/simonhull/firebird-suite/fledge/output"
	"github.com/simonhull/firebird-suite/kestrel/internal/graph"
)

// NodePredicate selects declared targets. Implementations are pure and total
// over any well-formed node; evaluating one has no side effects beyond
// verbose logging.
type NodePredicate interface {
	Match(node *graph.TargetNode) bool
}

// RulePredicate decides whether a realized candidate rule is associated with
// a reference rule graph — related to something reachable in it.
type RulePredicate interface {
	Match(rule graph.Rule, reference *graph.RuleGraph) bool
}

// KindPredicate matches nodes of a single declared kind.
type KindPredicate struct {
	Kind string
}

func (p KindPredicate) Match(node *graph.TargetNode) bool {
	return node.Kind == p.Kind
}

// TestKindPredicate matches nodes whose kind realizes to a test rule.
type TestKindPredicate struct{}

func (TestKindPredicate) Match(node *graph.TargetNode) bool {
	info, ok := graph.LookupKind(node.Kind)
	return ok && info.IsTest
}

// MatchNone matches no node. Running the resolver with it degenerates to a
// plain closure of the additional roots.
type MatchNone struct{}

func (MatchNone) Match(*graph.TargetNode) bool { return false }

// ExcludedPathsPredicate matches nodes of one kind unless their identifier
// falls under an excluded path prefix. Targets the user requested explicitly
// always pass: explicit intent overrides exclusion.
type ExcludedPathsPredicate struct {
	Kind             string
	ExcludedPrefixes []string
	Explicit         map[graph.Identifier]bool
}

// NewExcludedPathsPredicate builds the predicate from configuration and the
// explicitly requested target set.
func NewExcludedPathsPredicate(kind string, prefixes []string, explicit []graph.Identifier) ExcludedPathsPredicate {
	set := make(map[graph.Identifier]bool, len(explicit))
	for _, id := range explicit {
		set[id] = true
	}
	return ExcludedPathsPredicate{Kind: kind, ExcludedPrefixes: prefixes, Explicit: set}
}

func (p ExcludedPathsPredicate) Match(node *graph.TargetNode) bool {
	if node.Kind != p.Kind {
		return false
	}
	for _, prefix := range p.ExcludedPrefixes {
		if strings.HasPrefix(string(node.ID), "//"+prefix) && !p.Explicit[node.ID] {
			output.Verbose(fmt.Sprintf("Ignoring target %s (excluded path %s)", node.ID, prefix))
			return false
		}
	}
	return true
}

// TestAssociation matches test rules whose source under test intersects the
// reference graph.
type TestAssociation struct{}

func (TestAssociation) Match(rule graph.Rule, reference *graph.RuleGraph) bool {
	test, ok := rule.(graph.TestRule)
	if !ok {
		return false
	}
	for _, under := range test.SourceUnderTest() {
		if _, ok := reference.Rule(under.ID()); ok {
			return true
		}
	}
	return false
}

// ProjectConfigAssociation matches project-config rules whose named project
// rule is present in the reference graph.
type ProjectConfigAssociation struct{}

func (ProjectConfigAssociation) Match(rule graph.Rule, reference *graph.RuleGraph) bool {
	config, ok := rule.(graph.ProjectConfigRule)
	if !ok {
		return false
	}
	project := config.ProjectRule()
	if project == nil {
		return false
	}
	_, ok = reference.Rule(project.ID())
	return ok
}

// XcodeProjectAssociation matches xcode project-config rules referencing at
// least one rule present in the reference graph.
type XcodeProjectAssociation struct{}

func (XcodeProjectAssociation) Match(rule graph.Rule, reference *graph.RuleGraph) bool {
	config, ok := rule.(graph.XcodeProjectConfigRule)
	if !ok {
		return false
	}
	for _, included := range config.ConfiguredRules() {
		if _, ok := reference.Rule(included.ID()); ok {
			return true
		}
	}
	return false
}

// FilterTargets returns the identifiers of all nodes in g matched by pred,
// in deterministic order.
func FilterTargets(g *graph.TargetGraph, pred NodePredicate) []graph.Identifier {
	var ids []graph.Identifier
	for _, node := range g.Nodes() {
		if pred.Match(node) {
			ids = append(ids, node.ID)
		}
	}
	return ids
}
