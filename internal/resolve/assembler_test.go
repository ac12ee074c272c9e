package resolve

import (
	"testing"

	"github.com/simonhull/firebird-suite/kestrel/internal/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intellijSet() PredicateSet {
	return PredicateSet{
		Roots:             KindPredicate{Kind: graph.KindProjectConfig},
		ProjectMembership: KindPredicate{Kind: graph.KindProjectConfig},
		AssociatedProject: ProjectConfigAssociation{},
	}
}

func TestAssemble_MonotonicInclusion(t *testing.T) {
	store := newTestStore(t, universeNodes())
	assembler := NewAssembler(store, intellijSet())

	graphs, err := assembler.Assemble(Options{
		ExplicitRoots: []graph.Identifier{"//lib:core"},
		WithTests:     true,
	})
	require.NoError(t, err)
	require.NotNil(t, graphs.Test)

	// main ⊆ test ⊆ project, by construction.
	assert.True(t, graphs.Main.IsSubsetOf(graphs.Test))
	assert.True(t, graphs.Test.IsSubsetOf(graphs.Project))

	assert.True(t, graphs.Test.Contains("//lib:core_test"))
	assert.True(t, graphs.Project.Contains("//lib:project"))
	assert.False(t, graphs.Project.Contains("//lib:other_project"))
}

func TestAssemble_WithoutTests(t *testing.T) {
	store := newTestStore(t, universeNodes())
	assembler := NewAssembler(store, intellijSet())

	graphs, err := assembler.Assemble(Options{
		ExplicitRoots: []graph.Identifier{"//lib:core"},
	})
	require.NoError(t, err)

	assert.Nil(t, graphs.Test)
	assert.Same(t, graphs.Main, graphs.Reference())
	assert.True(t, graphs.Main.IsSubsetOf(graphs.Project))

	// Without the test stage, no test targets leak into the project graph.
	assert.False(t, graphs.Project.Contains("//lib:core_test"))
}

func TestAssemble_RootDiscovery(t *testing.T) {
	store := newTestStore(t, universeNodes())
	assembler := NewAssembler(store, intellijSet())

	// No explicit roots: every project_config becomes a root.
	graphs, err := assembler.Assemble(Options{})
	require.NoError(t, err)

	assert.True(t, graphs.Main.Contains("//lib:project"))
	assert.True(t, graphs.Main.Contains("//lib:other_project"))
	assert.True(t, graphs.Main.Contains("//lib:core"))
}

func TestAssemble_Idempotent(t *testing.T) {
	store := newTestStore(t, universeNodes())
	assembler := NewAssembler(store, intellijSet())
	opts := Options{ExplicitRoots: []graph.Identifier{"//lib:core"}, WithTests: true}

	first, err := assembler.Assemble(opts)
	require.NoError(t, err)
	second, err := assembler.Assemble(opts)
	require.NoError(t, err)

	assert.Equal(t, first.Main.Identifiers(), second.Main.Identifiers())
	assert.Equal(t, first.Test.Identifiers(), second.Test.Identifiers())
	assert.Equal(t, first.Project.Identifiers(), second.Project.Identifiers())
}

func TestAssemble_EmptyExplicitRootsEmptyUniverse(t *testing.T) {
	store := newTestStore(t, []*graph.TargetNode{
		{ID: "//lib:core", Kind: graph.KindLibrary},
	})
	assembler := NewAssembler(store, intellijSet())

	// No config targets anywhere: all three graphs come out empty.
	graphs, err := assembler.Assemble(Options{WithTests: true})
	require.NoError(t, err)
	assert.Equal(t, 0, graphs.Main.Size())
	assert.Equal(t, 0, graphs.Test.Size())
	assert.Equal(t, 0, graphs.Project.Size())
}

func TestAssemble_UnknownExplicitRoot(t *testing.T) {
	store := newTestStore(t, universeNodes())
	assembler := NewAssembler(store, intellijSet())

	_, err := assembler.Assemble(Options{
		ExplicitRoots: []graph.Identifier{"//nowhere:nothing"},
	})
	require.Error(t, err)
	var cerr *graph.ConstructionError
	assert.ErrorAs(t, err, &cerr)
}
