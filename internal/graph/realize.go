package graph

// Realize produces the RuleGraph for a TargetGraph. Realization is
// deterministic: the same graph always realizes to rules with the same
// identifiers, kinds, and resolved references. Callers should go through a
// store that memoizes per graph identity rather than calling this directly
// in a loop.
//
// Realization happens in two passes: the first allocates a rule for every
// node, the second links dependency and attribute references in place. The
// links always resolve because attribute references are folded into declared
// deps at parse time and the graph is closed.
func Realize(g *TargetGraph) (*RuleGraph, error) {
	allocated := make(map[Identifier]linkable, g.Size())
	rules := make(map[Identifier]Rule, g.Size())
	for _, node := range g.Nodes() {
		info, ok := LookupKind(node.Kind)
		if !ok {
			return nil, &ConstructionError{Target: node.ID, Reason: "unknown target kind " + node.Kind}
		}
		r := info.allocate(node)
		allocated[node.ID] = r
		rules[node.ID] = r
	}

	lookup := func(id Identifier) (Rule, bool) {
		r, ok := rules[id]
		return r, ok
	}
	for _, node := range g.Nodes() {
		if err := allocated[node.ID].link(node, lookup); err != nil {
			return nil, err
		}
	}

	return newRuleGraph(rules), nil
}

// linkable is the realization-internal face of a rule: allocated first,
// linked once all rules of the graph exist.
type linkable interface {
	Rule
	link(node *TargetNode, lookup func(Identifier) (Rule, bool)) error
}

type baseRule struct {
	id   Identifier
	kind string
	deps []Rule
}

func (r *baseRule) ID() Identifier { return r.id }
func (r *baseRule) Kind() string   { return r.kind }
func (r *baseRule) Deps() []Rule   { return r.deps }

func (r *baseRule) link(node *TargetNode, lookup func(Identifier) (Rule, bool)) error {
	r.deps = make([]Rule, 0, len(node.Deps))
	for _, dep := range node.Deps {
		resolved, ok := lookup(dep)
		if !ok {
			// Unreachable for a closed graph; treat as malformed.
			return &ConstructionError{
				Target: node.ID,
				Reason: "dependency " + string(dep) + " missing during realization",
			}
		}
		r.deps = append(r.deps, resolved)
	}
	return nil
}

func allocatePlain(node *TargetNode) linkable {
	return &baseRule{id: node.ID, kind: node.Kind}
}

type testRule struct {
	baseRule
	sourceUnderTest []Rule
}

func (r *testRule) SourceUnderTest() []Rule { return r.sourceUnderTest }

func (r *testRule) link(node *TargetNode, lookup func(Identifier) (Rule, bool)) error {
	if err := r.baseRule.link(node, lookup); err != nil {
		return err
	}
	for _, id := range node.AttrIdentifiers(AttrTests) {
		if under, ok := lookup(id); ok {
			r.sourceUnderTest = append(r.sourceUnderTest, under)
		}
	}
	return nil
}

func allocateTest(node *TargetNode) linkable {
	return &testRule{baseRule: baseRule{id: node.ID, kind: node.Kind}}
}

type projectConfigRule struct {
	baseRule
	projectRule Rule
}

func (r *projectConfigRule) ProjectRule() Rule { return r.projectRule }

func (r *projectConfigRule) link(node *TargetNode, lookup func(Identifier) (Rule, bool)) error {
	if err := r.baseRule.link(node, lookup); err != nil {
		return err
	}
	if id := node.AttrString(AttrProjectRule); id != "" {
		if pr, ok := lookup(Identifier(id)); ok {
			r.projectRule = pr
		}
	}
	return nil
}

func allocateProjectConfig(node *TargetNode) linkable {
	return &projectConfigRule{baseRule: baseRule{id: node.ID, kind: node.Kind}}
}

type xcodeProjectConfigRule struct {
	baseRule
	configured []Rule
}

func (r *xcodeProjectConfigRule) ConfiguredRules() []Rule { return r.configured }

func (r *xcodeProjectConfigRule) link(node *TargetNode, lookup func(Identifier) (Rule, bool)) error {
	if err := r.baseRule.link(node, lookup); err != nil {
		return err
	}
	for _, id := range node.AttrIdentifiers(AttrRules) {
		if cr, ok := lookup(id); ok {
			r.configured = append(r.configured, cr)
		}
	}
	return nil
}

func allocateXcodeProjectConfig(node *TargetNode) linkable {
	return &xcodeProjectConfigRule{baseRule: baseRule{id: node.ID, kind: node.Kind}}
}

type xcodeWorkspaceConfigRule struct {
	baseRule
	name       string
	srcTarget  Rule
	extraTests []Rule
}

func (r *xcodeWorkspaceConfigRule) WorkspaceName() string { return r.name }
func (r *xcodeWorkspaceConfigRule) SourceTarget() Rule    { return r.srcTarget }
func (r *xcodeWorkspaceConfigRule) ExtraTests() []Rule    { return r.extraTests }

func (r *xcodeWorkspaceConfigRule) link(node *TargetNode, lookup func(Identifier) (Rule, bool)) error {
	if err := r.baseRule.link(node, lookup); err != nil {
		return err
	}
	if id := node.AttrString(AttrSrcTarget); id != "" {
		if src, ok := lookup(Identifier(id)); ok {
			r.srcTarget = src
		}
	}
	for _, id := range node.AttrIdentifiers(AttrExtraTests) {
		if et, ok := lookup(id); ok {
			r.extraTests = append(r.extraTests, et)
		}
	}
	return nil
}

func allocateXcodeWorkspaceConfig(node *TargetNode) linkable {
	r := &xcodeWorkspaceConfigRule{
		baseRule: baseRule{id: node.ID, kind: node.Kind},
		name:     node.AttrString(AttrWorkspaceName),
	}
	if r.name == "" {
		r.name = node.ID.Name()
	}
	return r
}
