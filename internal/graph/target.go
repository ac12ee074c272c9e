package graph

import (
	"fmt"
	"strings"
)

// Identifier is the fully-qualified name of a build target,
// e.g. "//app/ios:App".
type Identifier string

// ParseIdentifier validates and normalizes a target identifier.
// Identifiers have the form "//package/path:name".
func ParseIdentifier(s string) (Identifier, error) {
	if !strings.HasPrefix(s, "//") {
		return "", fmt.Errorf("invalid target %q: must start with //", s)
	}
	rest := s[2:]
	colon := strings.Index(rest, ":")
	if colon < 0 || colon == len(rest)-1 {
		return "", fmt.Errorf("invalid target %q: missing :name", s)
	}
	if strings.Count(rest, ":") > 1 {
		return "", fmt.Errorf("invalid target %q: multiple colons", s)
	}
	return Identifier(s), nil
}

// Package returns the package path portion of the identifier
// ("app/ios" for "//app/ios:App").
func (id Identifier) Package() string {
	s := strings.TrimPrefix(string(id), "//")
	if i := strings.Index(s, ":"); i >= 0 {
		return s[:i]
	}
	return s
}

// Name returns the short target name ("App" for "//app/ios:App").
func (id Identifier) Name() string {
	if i := strings.Index(string(id), ":"); i >= 0 {
		return string(id)[i+1:]
	}
	return string(id)
}

// TargetNode is a declared, unrealized build target as it exists in a target
// graph: its identifier, declared kind, declared dependencies, and the
// kind-specific attributes carried through to realization. Nodes are never
// mutated after parsing; equality is by identifier.
type TargetNode struct {
	ID    Identifier
	Kind  string
	Deps  []Identifier
	Attrs map[string]any
}

// AttrString returns a string attribute, or "" if absent.
func (n *TargetNode) AttrString(key string) string {
	if s, ok := n.Attrs[key].(string); ok {
		return s
	}
	return ""
}

// AttrIdentifiers returns a list-of-identifiers attribute, or nil if absent.
func (n *TargetNode) AttrIdentifiers(key string) []Identifier {
	ids, _ := n.Attrs[key].([]Identifier)
	return ids
}
