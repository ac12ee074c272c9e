package universe

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/simonhull/firebird-suite/kestrel/internal/graph"
	"gopkg.in/yaml.v3"
)

// BuildFileName is the file each package directory declares its targets in.
const BuildFileName = "BUILD.yml"

// buildFile is the on-disk shape of one BUILD.yml.
type buildFile struct {
	Targets []targetDecl `yaml:"targets"`
}

// targetDecl is one declared target. Kind-specific attributes are optional
// and validated against the declared type.
type targetDecl struct {
	Name string   `yaml:"name"`
	Type string   `yaml:"type"`
	Deps []string `yaml:"deps,omitempty"`

	// test
	Tests []string `yaml:"tests,omitempty"`

	// project_config
	ProjectRule string `yaml:"project_rule,omitempty"`

	// xcode_project_config
	Rules []string `yaml:"rules,omitempty"`

	// xcode_workspace_config
	SrcTarget     string   `yaml:"src_target,omitempty"`
	ExtraTests    []string `yaml:"extra_tests,omitempty"`
	WorkspaceName string   `yaml:"workspace_name,omitempty"`
}

// parseBuildFile decodes one BUILD.yml into target nodes. The package path
// ("app/ios") scopes relative identifiers like ":App". Attribute references
// are folded into each node's dependency set so graph closure covers them.
func parseBuildFile(data []byte, pkg string) ([]*graph.TargetNode, error) {
	var bf buildFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // catch unknown/misspelled fields
	if err := decoder.Decode(&bf); err != nil {
		return nil, &graph.ConstructionError{
			Reason: fmt.Sprintf("malformed BUILD file in //%s", pkg),
			Err:    err,
		}
	}

	nodes := make([]*graph.TargetNode, 0, len(bf.Targets))
	for _, decl := range bf.Targets {
		node, err := decl.toNode(pkg)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

func (d targetDecl) toNode(pkg string) (*graph.TargetNode, error) {
	if d.Name == "" {
		return nil, &graph.ConstructionError{
			Reason: fmt.Sprintf("target without a name in //%s", pkg),
		}
	}
	id := graph.Identifier(fmt.Sprintf("//%s:%s", pkg, d.Name))
	if _, ok := graph.LookupKind(d.Type); !ok {
		return nil, &graph.ConstructionError{
			Target: id,
			Reason: fmt.Sprintf("unknown target type %q (valid: %s)", d.Type, strings.Join(graph.Kinds(), ", ")),
		}
	}

	deps, err := resolveIdentifiers(id, pkg, d.Deps)
	if err != nil {
		return nil, err
	}

	attrs := make(map[string]any)
	addList := func(key string, raw []string) error {
		if len(raw) == 0 {
			return nil
		}
		ids, err := resolveIdentifiers(id, pkg, raw)
		if err != nil {
			return err
		}
		attrs[key] = ids
		deps = appendMissing(deps, ids)
		return nil
	}
	addOne := func(key, raw string) error {
		if raw == "" {
			return nil
		}
		resolved, err := resolveIdentifier(id, pkg, raw)
		if err != nil {
			return err
		}
		attrs[key] = string(resolved)
		deps = appendMissing(deps, []graph.Identifier{resolved})
		return nil
	}

	if err := addList(graph.AttrTests, d.Tests); err != nil {
		return nil, err
	}
	if err := addOne(graph.AttrProjectRule, d.ProjectRule); err != nil {
		return nil, err
	}
	if err := addList(graph.AttrRules, d.Rules); err != nil {
		return nil, err
	}
	if err := addOne(graph.AttrSrcTarget, d.SrcTarget); err != nil {
		return nil, err
	}
	if err := addList(graph.AttrExtraTests, d.ExtraTests); err != nil {
		return nil, err
	}
	if d.WorkspaceName != "" {
		attrs[graph.AttrWorkspaceName] = d.WorkspaceName
	}

	return &graph.TargetNode{ID: id, Kind: d.Type, Deps: deps, Attrs: attrs}, nil
}

// resolveIdentifier expands a declared reference to a fully-qualified
// identifier. ":name" is relative to the declaring package.
func resolveIdentifier(from graph.Identifier, pkg, ref string) (graph.Identifier, error) {
	if strings.HasPrefix(ref, ":") {
		ref = fmt.Sprintf("//%s%s", pkg, ref)
	}
	id, err := graph.ParseIdentifier(ref)
	if err != nil {
		return "", &graph.ConstructionError{Target: from, Err: err}
	}
	return id, nil
}

func resolveIdentifiers(from graph.Identifier, pkg string, refs []string) ([]graph.Identifier, error) {
	ids := make([]graph.Identifier, 0, len(refs))
	for _, ref := range refs {
		id, err := resolveIdentifier(from, pkg, ref)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func appendMissing(deps []graph.Identifier, ids []graph.Identifier) []graph.Identifier {
	seen := make(map[graph.Identifier]bool, len(deps))
	for _, d := range deps {
		seen[d] = true
	}
	for _, id := range ids {
		if !seen[id] {
			deps = append(deps, id)
			seen[id] = true
		}
	}
	return deps
}
