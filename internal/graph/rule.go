package graph

import "sort"

// Rule is the realized, capability-bearing form of a TargetNode. Its
// dependencies are resolved references to other Rules in the same RuleGraph.
// Kind-specific behavior is exposed through capability interfaces checked
// with type assertions (TestRule, ProjectConfigRule, ...).
type Rule interface {
	ID() Identifier
	Kind() string
	Deps() []Rule
}

// TestRule is implemented by realized test targets.
type TestRule interface {
	Rule

	// SourceUnderTest returns the rules this test exercises.
	SourceUnderTest() []Rule
}

// ProjectConfigRule is implemented by IntelliJ project-config targets.
type ProjectConfigRule interface {
	Rule

	// ProjectRule returns the rule this project config describes, or nil
	// when the declaration named none.
	ProjectRule() Rule
}

// XcodeProjectConfigRule is implemented by xcode_project_config targets.
type XcodeProjectConfigRule interface {
	Rule

	// ConfiguredRules returns the rules included in the generated project.
	ConfiguredRules() []Rule
}

// XcodeWorkspaceConfigRule is implemented by xcode_workspace_config targets.
type XcodeWorkspaceConfigRule interface {
	Rule

	// WorkspaceName returns the display name for the generated workspace.
	WorkspaceName() string

	// SourceTarget returns the rule the workspace's main scheme builds.
	SourceTarget() Rule

	// ExtraTests returns tests included beyond those covering SourceTarget.
	ExtraTests() []Rule
}

// RuleGraph is the realized form of a TargetGraph: a 1:1 realization where
// every rule's dependencies resolve to rules in the same graph. RuleGraphs
// are owned by the store that realized them and memoized per source graph.
type RuleGraph struct {
	rules map[Identifier]Rule
	order []Identifier
}

func newRuleGraph(rules map[Identifier]Rule) *RuleGraph {
	order := make([]Identifier, 0, len(rules))
	for id := range rules {
		order = append(order, id)
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })
	return &RuleGraph{rules: rules, order: order}
}

// Rule looks up a realized rule by identifier. The second result is false
// when the identifier is not part of this graph; callers must treat that as
// a first-class outcome, not an error.
func (g *RuleGraph) Rule(id Identifier) (Rule, bool) {
	r, ok := g.rules[id]
	return r, ok
}

// Rules returns all rules in deterministic (identifier) order.
func (g *RuleGraph) Rules() []Rule {
	out := make([]Rule, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.rules[id])
	}
	return out
}

// Size returns the number of rules in the graph.
func (g *RuleGraph) Size() int { return len(g.rules) }
