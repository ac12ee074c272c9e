// Package intellij is the IntelliJ backend: it renders the project-config
// rules of a realized project graph into a project.json module description.
package intellij

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/simonhull/firebird-suite/fledge/generator"
	"github.com/simonhull/firebird-suite/kestrel/internal/graph"
)

// Generator generates the IntelliJ project description.
type Generator struct {
	outDir string
	rules  *graph.RuleGraph
	mode   fs.FileMode
}

// New creates an IntelliJ generator over a realized project graph.
func New(outDir string, rules *graph.RuleGraph, readOnly bool) *Generator {
	mode := fs.FileMode(0644)
	if readOnly {
		mode = 0444
	}
	return &Generator{outDir: outDir, rules: rules, mode: mode}
}

// module is one entry in project.json.
type module struct {
	Target string   `json:"target"`
	Module string   `json:"module,omitempty"`
	Deps   []string `json:"deps,omitempty"`
}

// Generate emits one project.json covering every project-config rule in the
// project graph.
func (g *Generator) Generate() ([]generator.Operation, error) {
	var modules []module
	for _, rule := range g.rules.Rules() {
		config, ok := rule.(graph.ProjectConfigRule)
		if !ok {
			continue
		}
		m := module{Target: string(config.ID())}
		if pr := config.ProjectRule(); pr != nil {
			m.Module = string(pr.ID())
			for _, dep := range pr.Deps() {
				m.Deps = append(m.Deps, string(dep.ID()))
			}
		}
		modules = append(modules, m)
	}

	content, err := json.MarshalIndent(struct {
		Modules []module `json:"modules"`
	}{Modules: modules}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding project.json: %w", err)
	}

	return []generator.Operation{
		&generator.WriteFileOp{
			Path:    filepath.Join(g.outDir, "project.json"),
			Content: append(content, '\n'),
			Mode:    g.mode,
		},
	}, nil
}
