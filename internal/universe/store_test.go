package universe

import (
	"testing"

	"github.com/simonhull/firebird-suite/kestrel/internal/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testNodes() []*graph.TargetNode {
	return []*graph.TargetNode{
		{ID: "//lib:core", Kind: graph.KindLibrary},
		{ID: "//lib:util", Kind: graph.KindLibrary, Deps: []graph.Identifier{"//lib:core"}},
		{ID: "//app:app", Kind: graph.KindBinary, Deps: []graph.Identifier{"//lib:util"}},
		{ID: "//other:other", Kind: graph.KindLibrary},
	}
}

func TestStore_FullGraph(t *testing.T) {
	store, err := NewStoreFromNodes(testNodes())
	require.NoError(t, err)

	full, err := store.FullGraph()
	require.NoError(t, err)
	assert.Equal(t, 4, full.Size())
}

func TestStore_GraphForRoots_Closure(t *testing.T) {
	store, err := NewStoreFromNodes(testNodes())
	require.NoError(t, err)

	g, err := store.GraphForRoots([]graph.Identifier{"//app:app"})
	require.NoError(t, err)

	// The closure pulls in transitive deps and nothing else.
	assert.Equal(t, 3, g.Size())
	assert.True(t, g.Contains("//lib:core"))
	assert.False(t, g.Contains("//other:other"))
}

func TestStore_GraphForRoots_EmptyRoots(t *testing.T) {
	store, err := NewStoreFromNodes(testNodes())
	require.NoError(t, err)

	g, err := store.GraphForRoots(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, g.Size())
}

func TestStore_GraphForRoots_UnknownTarget(t *testing.T) {
	store, err := NewStoreFromNodes(testNodes())
	require.NoError(t, err)

	_, err = store.GraphForRoots([]graph.Identifier{"//nowhere:nothing"})
	require.Error(t, err)
	var cerr *graph.ConstructionError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, graph.Identifier("//nowhere:nothing"), cerr.Target)
}

func TestStore_Realize_Memoized(t *testing.T) {
	store, err := NewStoreFromNodes(testNodes())
	require.NoError(t, err)

	g, err := store.GraphForRoots([]graph.Identifier{"//app:app"})
	require.NoError(t, err)

	first, err := store.Realize(g)
	require.NoError(t, err)
	second, err := store.Realize(g)
	require.NoError(t, err)

	// Same graph identity yields the same rule graph.
	assert.Same(t, first, second)

	// A different graph with the same roots realizes independently.
	other, err := store.GraphForRoots([]graph.Identifier{"//app:app"})
	require.NoError(t, err)
	third, err := store.Realize(other)
	require.NoError(t, err)
	assert.NotSame(t, first, third)
}

func TestStore_FindRule(t *testing.T) {
	store, err := NewStoreFromNodes(testNodes())
	require.NoError(t, err)

	g, err := store.GraphForRoots([]graph.Identifier{"//app:app"})
	require.NoError(t, err)
	rg, err := store.Realize(g)
	require.NoError(t, err)

	rule, ok := store.FindRule(rg, "//lib:core")
	require.True(t, ok)
	assert.Equal(t, graph.Identifier("//lib:core"), rule.ID())

	// Absence is not an error.
	_, ok = store.FindRule(rg, "//other:other")
	assert.False(t, ok)
}

func TestStore_RejectsCycles(t *testing.T) {
	_, err := NewStoreFromNodes([]*graph.TargetNode{
		{ID: "//a:a", Kind: graph.KindLibrary, Deps: []graph.Identifier{"//b:b"}},
		{ID: "//b:b", Kind: graph.KindLibrary, Deps: []graph.Identifier{"//a:a"}},
	})
	require.Error(t, err)
	var cerr *graph.ConstructionError
	assert.ErrorAs(t, err, &cerr)
}

func TestStore_RejectsDuplicates(t *testing.T) {
	_, err := NewStoreFromNodes([]*graph.TargetNode{
		{ID: "//a:a", Kind: graph.KindLibrary},
		{ID: "//a:a", Kind: graph.KindBinary},
	})
	require.Error(t, err)
}

func TestStore_ParsesFromDisk(t *testing.T) {
	root := t.TempDir()
	writeBuildFile(t, root, "lib", `targets:
  - name: core
    type: library
  - name: core_test
    type: test
    tests:
      - ":core"
`)

	store := NewStore(NewParser(root, nil))
	full, err := store.FullGraph()
	require.NoError(t, err)
	assert.Equal(t, 2, full.Size())

	rg, err := store.Realize(full)
	require.NoError(t, err)
	rule, ok := rg.Rule("//lib:core_test")
	require.True(t, ok)
	test, ok := rule.(graph.TestRule)
	require.True(t, ok)
	require.Len(t, test.SourceUnderTest(), 1)
}
