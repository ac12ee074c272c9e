package graph

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustGraph(t *testing.T, nodes []*TargetNode) *TargetGraph {
	t.Helper()
	g, err := NewTargetGraph(nodes)
	require.NoError(t, err)
	return g
}

func TestRealize_ResolvesDeps(t *testing.T) {
	g := mustGraph(t, []*TargetNode{
		{ID: "//lib:core", Kind: KindLibrary},
		{ID: "//app:app", Kind: KindBinary, Deps: []Identifier{"//lib:core"}},
	})

	rg, err := Realize(g)
	require.NoError(t, err)
	assert.Equal(t, 2, rg.Size())

	app, ok := rg.Rule("//app:app")
	require.True(t, ok)
	require.Len(t, app.Deps(), 1)

	// Dependency references resolve to the rules in the same graph.
	core, _ := rg.Rule("//lib:core")
	assert.Same(t, core, app.Deps()[0])
}

func TestRealize_TestCapability(t *testing.T) {
	g := mustGraph(t, []*TargetNode{
		{ID: "//lib:core", Kind: KindLibrary},
		{
			ID:    "//lib:core_test",
			Kind:  KindTest,
			Deps:  []Identifier{"//lib:core"},
			Attrs: map[string]any{AttrTests: []Identifier{"//lib:core"}},
		},
	})

	rg, err := Realize(g)
	require.NoError(t, err)

	rule, ok := rg.Rule("//lib:core_test")
	require.True(t, ok)
	test, ok := rule.(TestRule)
	require.True(t, ok, "test targets must realize to TestRule")
	require.Len(t, test.SourceUnderTest(), 1)
	assert.Equal(t, Identifier("//lib:core"), test.SourceUnderTest()[0].ID())

	// Plain targets must not carry the capability.
	core, _ := rg.Rule("//lib:core")
	_, isTest := core.(TestRule)
	assert.False(t, isTest)
}

func TestRealize_ProjectConfigCapability(t *testing.T) {
	g := mustGraph(t, []*TargetNode{
		{ID: "//lib:core", Kind: KindLibrary},
		{
			ID:    "//lib:project",
			Kind:  KindProjectConfig,
			Deps:  []Identifier{"//lib:core"},
			Attrs: map[string]any{AttrProjectRule: "//lib:core"},
		},
		{ID: "//lib:empty_project", Kind: KindProjectConfig},
	})

	rg, err := Realize(g)
	require.NoError(t, err)

	rule, _ := rg.Rule("//lib:project")
	config, ok := rule.(ProjectConfigRule)
	require.True(t, ok)
	require.NotNil(t, config.ProjectRule())
	assert.Equal(t, Identifier("//lib:core"), config.ProjectRule().ID())

	// A config declaring no project rule realizes with a nil reference.
	rule, _ = rg.Rule("//lib:empty_project")
	empty := rule.(ProjectConfigRule)
	assert.Nil(t, empty.ProjectRule())
}

func TestRealize_XcodeCapabilities(t *testing.T) {
	g := mustGraph(t, []*TargetNode{
		{ID: "//app:lib", Kind: KindLibrary},
		{
			ID:    "//app:lib_test",
			Kind:  KindTest,
			Deps:  []Identifier{"//app:lib"},
			Attrs: map[string]any{AttrTests: []Identifier{"//app:lib"}},
		},
		{
			ID:    "//app:project",
			Kind:  KindXcodeProjectConfig,
			Deps:  []Identifier{"//app:lib"},
			Attrs: map[string]any{AttrRules: []Identifier{"//app:lib"}},
		},
		{
			ID:   "//app:workspace",
			Kind: KindXcodeWorkspaceConfig,
			Deps: []Identifier{"//app:lib", "//app:lib_test"},
			Attrs: map[string]any{
				AttrSrcTarget:  "//app:lib",
				AttrExtraTests: []Identifier{"//app:lib_test"},
			},
		},
	})

	rg, err := Realize(g)
	require.NoError(t, err)

	rule, _ := rg.Rule("//app:project")
	project, ok := rule.(XcodeProjectConfigRule)
	require.True(t, ok)
	require.Len(t, project.ConfiguredRules(), 1)
	assert.Equal(t, Identifier("//app:lib"), project.ConfiguredRules()[0].ID())

	rule, _ = rg.Rule("//app:workspace")
	workspace, ok := rule.(XcodeWorkspaceConfigRule)
	require.True(t, ok)
	require.NotNil(t, workspace.SourceTarget())
	assert.Equal(t, Identifier("//app:lib"), workspace.SourceTarget().ID())
	require.Len(t, workspace.ExtraTests(), 1)

	// Workspace name falls back to the target's short name.
	assert.Equal(t, "workspace", workspace.WorkspaceName())
}

func TestRealize_WorkspaceNameAttr(t *testing.T) {
	g := mustGraph(t, []*TargetNode{
		{
			ID:    "//app:workspace",
			Kind:  KindXcodeWorkspaceConfig,
			Attrs: map[string]any{AttrWorkspaceName: "MyApp"},
		},
	})

	rg, err := Realize(g)
	require.NoError(t, err)
	rule, _ := rg.Rule("//app:workspace")
	assert.Equal(t, "MyApp", rule.(XcodeWorkspaceConfigRule).WorkspaceName())
}

func TestRealize_UnknownKind(t *testing.T) {
	g := mustGraph(t, []*TargetNode{
		{ID: "//lib:weird", Kind: "mystery"},
	})

	_, err := Realize(g)
	require.Error(t, err)
	var cerr *ConstructionError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, Identifier("//lib:weird"), cerr.Target)
}
