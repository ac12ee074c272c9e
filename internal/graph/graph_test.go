package graph

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "full identifier", input: "//app/ios:App"},
		{name: "root package", input: "//:all"},
		{name: "missing leading slashes", input: "app/ios:App", wantErr: true},
		{name: "missing name", input: "//app/ios", wantErr: true},
		{name: "trailing colon", input: "//app/ios:", wantErr: true},
		{name: "multiple colons", input: "//app:ios:App", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ParseIdentifier(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, Identifier(tt.input), id)
		})
	}
}

func TestIdentifierParts(t *testing.T) {
	id := Identifier("//app/ios:App")
	assert.Equal(t, "app/ios", id.Package())
	assert.Equal(t, "App", id.Name())

	root := Identifier("//:all")
	assert.Equal(t, "", root.Package())
	assert.Equal(t, "all", root.Name())
}

func TestNewTargetGraph_Closure(t *testing.T) {
	lib := &TargetNode{ID: "//lib:core", Kind: KindLibrary}
	app := &TargetNode{ID: "//app:app", Kind: KindBinary, Deps: []Identifier{"//lib:core"}}

	g, err := NewTargetGraph([]*TargetNode{lib, app})
	require.NoError(t, err)
	assert.Equal(t, 2, g.Size())
	assert.True(t, g.Contains("//lib:core"))

	// Deterministic order
	assert.Equal(t, []Identifier{"//app:app", "//lib:core"}, g.Identifiers())
}

func TestNewTargetGraph_DanglingDependency(t *testing.T) {
	app := &TargetNode{ID: "//app:app", Kind: KindBinary, Deps: []Identifier{"//lib:missing"}}

	_, err := NewTargetGraph([]*TargetNode{app})
	require.Error(t, err)

	var cerr *ConstructionError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, Identifier("//app:app"), cerr.Target)
}

func TestNewTargetGraph_DuplicateTarget(t *testing.T) {
	a := &TargetNode{ID: "//lib:core", Kind: KindLibrary}
	b := &TargetNode{ID: "//lib:core", Kind: KindBinary}

	_, err := NewTargetGraph([]*TargetNode{a, b})
	var cerr *ConstructionError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, Identifier("//lib:core"), cerr.Target)
}

func TestIsSubsetOf(t *testing.T) {
	lib := &TargetNode{ID: "//lib:core", Kind: KindLibrary}
	app := &TargetNode{ID: "//app:app", Kind: KindBinary, Deps: []Identifier{"//lib:core"}}

	small, err := NewTargetGraph([]*TargetNode{lib})
	require.NoError(t, err)
	big, err := NewTargetGraph([]*TargetNode{lib, app})
	require.NoError(t, err)

	assert.True(t, small.IsSubsetOf(big))
	assert.False(t, big.IsSubsetOf(small))
	assert.True(t, big.IsSubsetOf(big))
}
