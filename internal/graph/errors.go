package graph

import "fmt"

// ConstructionError reports that a target graph could not be parsed or
// closed: a malformed declaration, an unresolvable dependency, or a
// dependency cycle. It is always fatal to the resolution that triggered it.
type ConstructionError struct {
	Target Identifier // the target at fault, if known
	Reason string
	Err    error
}

func (e *ConstructionError) Error() string {
	msg := "graph construction failed"
	if e.Target != "" {
		msg = fmt.Sprintf("graph construction failed for %s", e.Target)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConstructionError) Unwrap() error { return e.Err }
