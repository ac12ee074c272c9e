package commands

import (
	"fmt"
	"strings"

	"github.com/simonhull/firebird-suite/kestrel/internal/graph"
)

// parseTargets turns command-line target arguments into identifiers.
// Arguments may use the full //pkg/path:name form or the //pkg/path shorthand,
// which expands to //pkg/path:<last path segment>.
func parseTargets(args []string) ([]graph.Identifier, error) {
	out := make([]graph.Identifier, 0, len(args))
	for _, arg := range args {
		id, err := graph.ParseIdentifier(normalizeTarget(arg))
		if err != nil {
			return nil, fmt.Errorf("invalid target %q: %w", arg, err)
		}
		out = append(out, id)
	}
	return out, nil
}

// normalizeTarget expands the //pkg/path shorthand.
func normalizeTarget(arg string) string {
	if strings.Contains(arg, ":") {
		return arg
	}
	trimmed := strings.TrimSuffix(arg, "/")
	segments := strings.Split(strings.TrimPrefix(trimmed, "//"), "/")
	return trimmed + ":" + segments[len(segments)-1]
}
