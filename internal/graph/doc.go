// Package graph defines the target and rule graph model for Kestrel.
//
// Declared build targets parsed from BUILD.yml files become TargetNodes,
// closed sets of which form TargetGraphs. Realizing a TargetGraph produces a
// RuleGraph of capability-bearing Rules, which is what the IDE project
// generators consume.
package graph
