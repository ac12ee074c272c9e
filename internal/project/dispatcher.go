package project

import (
	"context"
	"fmt"
	"io"

	"github.com/simonhull/firebird-suite/fledge/generator"
	"github.com/simonhull/firebird-suite/fledge/output"
	"github.com/simonhull/firebird-suite/kestrel/internal/generators/intellij"
	"github.com/simonhull/firebird-suite/kestrel/internal/generators/xcode"
	"github.com/simonhull/firebird-suite/kestrel/internal/graph"
	"github.com/simonhull/firebird-suite/kestrel/internal/resolve"
)

// Dispatcher routes assembled graphs to the backend for the selected IDE and
// strategy, then executes the emitted operations.
type Dispatcher struct {
	Store    resolve.Store
	IDE      IDE
	Strategy Strategy
	OutDir   string
	ReadOnly bool
	DryRun   bool
	Force    bool
	Writer   io.Writer
}

// Generate realizes the project graph and runs the mode's generators.
// explicit carries the user's original targets; Xcode strategies validate
// them against the capability the strategy requires.
func (d *Dispatcher) Generate(ctx context.Context, graphs *resolve.Graphs, explicit []graph.Identifier) error {
	rules, err := d.Store.Realize(graphs.Project)
	if err != nil {
		return err
	}

	var ops []generator.Operation
	switch d.IDE {
	case Xcode:
		ops, err = d.xcodeOps(graphs, rules, explicit)
	default:
		ops, err = intellij.New(d.OutDir, rules, d.ReadOnly).Generate()
	}
	if err != nil {
		return err
	}

	output.Verbose(fmt.Sprintf("Executing %d operations", len(ops)))
	return generator.Execute(ctx, ops, generator.ExecuteOptions{
		DryRun: d.DryRun,
		Force:  d.Force,
		Writer: d.Writer,
	})
}

func (d *Dispatcher) xcodeOps(graphs *resolve.Graphs, rules *graph.RuleGraph, explicit []graph.Identifier) ([]generator.Operation, error) {
	tests := testRules(rules)

	switch d.Strategy {
	case CombinedProject:
		roots := explicit
		if len(roots) == 0 {
			roots = graphs.Main.Identifiers()
		}
		return xcode.NewCombined(d.OutDir, rules, roots, tests, d.ReadOnly).Generate()

	case WorkspaceAndProjects:
		workspaces, err := d.workspaceRoots(rules, explicit)
		if err != nil {
			return nil, err
		}
		var ops []generator.Operation
		cache := make(map[graph.Identifier]*xcode.ProjectRef)
		for _, ws := range workspaces {
			wsOps, err := xcode.NewWorkspace(rules, ws, tests, cache, d.ReadOnly).Generate()
			if err != nil {
				return nil, err
			}
			ops = append(ops, wsOps...)
		}
		return ops, nil

	default: // SeparatedProjects
		roots, err := d.projectRoots(rules, explicit)
		if err != nil {
			return nil, err
		}
		return xcode.NewSeparated(rules, roots, d.ReadOnly).Generate()
	}
}

// workspaceRoots resolves the workspace configs to generate. Explicit targets
// must carry the workspace capability; otherwise every workspace config in
// the project graph is taken.
func (d *Dispatcher) workspaceRoots(rules *graph.RuleGraph, explicit []graph.Identifier) ([]graph.XcodeWorkspaceConfigRule, error) {
	if len(explicit) > 0 {
		out := make([]graph.XcodeWorkspaceConfigRule, 0, len(explicit))
		for _, id := range explicit {
			rule, ok := d.Store.FindRule(rules, id)
			if !ok {
				return nil, &InvalidRootError{Target: id, Want: graph.KindXcodeWorkspaceConfig}
			}
			ws, ok := rule.(graph.XcodeWorkspaceConfigRule)
			if !ok {
				return nil, &InvalidRootError{Target: id, Want: graph.KindXcodeWorkspaceConfig}
			}
			out = append(out, ws)
		}
		return out, nil
	}

	var out []graph.XcodeWorkspaceConfigRule
	for _, rule := range rules.Rules() {
		if ws, ok := rule.(graph.XcodeWorkspaceConfigRule); ok {
			out = append(out, ws)
		}
	}
	return out, nil
}

// projectRoots resolves the project configs for separated generation.
func (d *Dispatcher) projectRoots(rules *graph.RuleGraph, explicit []graph.Identifier) ([]graph.Identifier, error) {
	if len(explicit) > 0 {
		for _, id := range explicit {
			rule, ok := d.Store.FindRule(rules, id)
			if !ok {
				return nil, &InvalidRootError{Target: id, Want: graph.KindXcodeProjectConfig}
			}
			if _, ok := rule.(graph.XcodeProjectConfigRule); !ok {
				return nil, &InvalidRootError{Target: id, Want: graph.KindXcodeProjectConfig}
			}
		}
		return explicit, nil
	}

	var out []graph.Identifier
	for _, rule := range rules.Rules() {
		if _, ok := rule.(graph.XcodeProjectConfigRule); ok {
			out = append(out, rule.ID())
		}
	}
	return out, nil
}

func testRules(rules *graph.RuleGraph) []graph.TestRule {
	var out []graph.TestRule
	for _, rule := range rules.Rules() {
		if test, ok := rule.(graph.TestRule); ok {
			out = append(out, test)
		}
	}
	return out
}
