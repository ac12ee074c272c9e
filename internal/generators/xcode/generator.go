// Package xcode is the Xcode backend: it renders realized project graphs
// into workspace and project description files, one generation strategy per
// generator type.
package xcode

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/simonhull/firebird-suite/fledge/generator"
	"github.com/simonhull/firebird-suite/kestrel/internal/graph"
	"gopkg.in/yaml.v3"
)

// ProjectRef records a generated project file so workspaces sharing a
// project config reuse it instead of generating it again.
type ProjectRef struct {
	Config graph.XcodeProjectConfigRule
	Path   string
}

// fileMode returns the mode generated files are written with.
func fileMode(readOnly bool) fs.FileMode {
	if readOnly {
		return 0444
	}
	return 0644
}

// projectDoc is the on-disk shape of one generated project description.
type projectDoc struct {
	Name    string   `yaml:"name"`
	Config  string   `yaml:"config"`
	Targets []string `yaml:"targets"`
}

// projectOp renders the project description for one project-config rule,
// placed next to the config's BUILD file.
func projectOp(config graph.XcodeProjectConfigRule, mode fs.FileMode) (generator.Operation, string, error) {
	doc := projectDoc{
		Name:   config.ID().Name(),
		Config: string(config.ID()),
	}
	for _, included := range config.ConfiguredRules() {
		doc.Targets = append(doc.Targets, string(included.ID()))
	}
	sort.Strings(doc.Targets)

	content, err := yaml.Marshal(doc)
	if err != nil {
		return nil, "", fmt.Errorf("encoding project for %s: %w", config.ID(), err)
	}
	path := filepath.Join(filepath.FromSlash(config.ID().Package()), config.ID().Name()+".xcodeproj.yml")
	return &generator.WriteFileOp{Path: path, Content: content, Mode: mode}, path, nil
}

// CombinedGenerator generates a single project containing the explicit
// targets, their transitive dependencies, and their tests.
type CombinedGenerator struct {
	outDir string
	rules  *graph.RuleGraph
	roots  []graph.Identifier
	tests  []graph.TestRule
	mode   fs.FileMode
}

// NewCombined creates a combined-project generator.
func NewCombined(outDir string, rules *graph.RuleGraph, roots []graph.Identifier, tests []graph.TestRule, readOnly bool) *CombinedGenerator {
	return &CombinedGenerator{outDir: outDir, rules: rules, roots: roots, tests: tests, mode: fileMode(readOnly)}
}

// Generate emits one GeneratedProject description.
func (g *CombinedGenerator) Generate() ([]generator.Operation, error) {
	included := make(map[graph.Identifier]bool)
	for _, root := range g.roots {
		rule, ok := g.rules.Rule(root)
		if !ok {
			return nil, fmt.Errorf("target %s is not in the project graph", root)
		}
		collectReachable(rule, included)
	}
	for _, test := range g.tests {
		for _, under := range test.SourceUnderTest() {
			if included[under.ID()] {
				collectReachable(test, included)
				break
			}
		}
	}

	doc := projectDoc{Name: "GeneratedProject"}
	for id := range included {
		doc.Targets = append(doc.Targets, string(id))
	}
	sort.Strings(doc.Targets)

	content, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding combined project: %w", err)
	}
	return []generator.Operation{
		&generator.WriteFileOp{
			Path:    filepath.Join(g.outDir, "GeneratedProject.xcodeproj.yml"),
			Content: content,
			Mode:    g.mode,
		},
	}, nil
}

// SeparatedGenerator generates one independent project per project-config
// root, placed in the same directory as its BUILD file.
type SeparatedGenerator struct {
	rules *graph.RuleGraph
	roots []graph.Identifier
	mode  fs.FileMode
}

// NewSeparated creates a separated-projects generator.
func NewSeparated(rules *graph.RuleGraph, roots []graph.Identifier, readOnly bool) *SeparatedGenerator {
	return &SeparatedGenerator{rules: rules, roots: roots, mode: fileMode(readOnly)}
}

// Generate emits one project description per root.
func (g *SeparatedGenerator) Generate() ([]generator.Operation, error) {
	var ops []generator.Operation
	for _, root := range g.roots {
		rule, ok := g.rules.Rule(root)
		if !ok {
			return nil, fmt.Errorf("target %s is not in the project graph", root)
		}
		config, ok := rule.(graph.XcodeProjectConfigRule)
		if !ok {
			return nil, fmt.Errorf("target %s is not an %s", root, graph.KindXcodeProjectConfig)
		}
		op, _, err := projectOp(config, g.mode)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// WorkspaceGenerator generates one workspace plus the projects it contains
// for a single workspace-config rule. The cache is shared across the
// workspace roots of one invocation: a project config referenced by several
// workspaces is generated once and re-referenced afterwards.
type WorkspaceGenerator struct {
	rules     *graph.RuleGraph
	workspace graph.XcodeWorkspaceConfigRule
	tests     []graph.TestRule
	cache     map[graph.Identifier]*ProjectRef
	mode      fs.FileMode
}

// NewWorkspace creates a workspace generator sharing cache with its peers.
func NewWorkspace(rules *graph.RuleGraph, workspace graph.XcodeWorkspaceConfigRule, tests []graph.TestRule, cache map[graph.Identifier]*ProjectRef, readOnly bool) *WorkspaceGenerator {
	return &WorkspaceGenerator{rules: rules, workspace: workspace, tests: tests, cache: cache, mode: fileMode(readOnly)}
}

// workspaceDoc is the on-disk shape of one generated workspace description.
type workspaceDoc struct {
	Name      string   `yaml:"name"`
	Config    string   `yaml:"config"`
	SrcTarget string   `yaml:"src_target,omitempty"`
	Projects  []string `yaml:"projects"`
	Tests     []string `yaml:"tests,omitempty"`
}

// Generate emits the workspace description plus any project descriptions
// not already generated by an earlier workspace.
func (g *WorkspaceGenerator) Generate() ([]generator.Operation, error) {
	var ops []generator.Operation

	doc := workspaceDoc{
		Name:   g.workspace.WorkspaceName(),
		Config: string(g.workspace.ID()),
	}

	reachable := make(map[graph.Identifier]bool)
	if src := g.workspace.SourceTarget(); src != nil {
		doc.SrcTarget = string(src.ID())
		collectReachable(src, reachable)
	}

	for _, rule := range g.rules.Rules() {
		config, ok := rule.(graph.XcodeProjectConfigRule)
		if !ok {
			continue
		}
		ref, cached := g.cache[config.ID()]
		if !cached {
			op, path, err := projectOp(config, g.mode)
			if err != nil {
				return nil, err
			}
			ops = append(ops, op)
			ref = &ProjectRef{Config: config, Path: path}
			g.cache[config.ID()] = ref
		}
		doc.Projects = append(doc.Projects, ref.Path)
	}
	sort.Strings(doc.Projects)

	// Scheme tests: tests covering the workspace's source target, plus the
	// config's extra tests.
	testSet := make(map[graph.Identifier]bool)
	for _, test := range g.tests {
		for _, under := range test.SourceUnderTest() {
			if reachable[under.ID()] {
				testSet[test.ID()] = true
				break
			}
		}
	}
	for _, extra := range g.workspace.ExtraTests() {
		testSet[extra.ID()] = true
	}
	for id := range testSet {
		doc.Tests = append(doc.Tests, string(id))
	}
	sort.Strings(doc.Tests)

	content, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding workspace for %s: %w", g.workspace.ID(), err)
	}
	ops = append(ops, &generator.WriteFileOp{
		Path:    filepath.Join(filepath.FromSlash(g.workspace.ID().Package()), doc.Name+".xcworkspace.yml"),
		Content: content,
		Mode:    g.mode,
	})
	return ops, nil
}

// collectReachable adds rule and everything reachable through its deps.
func collectReachable(rule graph.Rule, into map[graph.Identifier]bool) {
	if into[rule.ID()] {
		return
	}
	into[rule.ID()] = true
	for _, dep := range rule.Deps() {
		collectReachable(dep, into)
	}
}
