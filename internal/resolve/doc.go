// Package resolve derives the interrelated target graphs an IDE project
// generation needs: the main dependency graph, an optional test-coverage
// graph, and the project-configuration graph. Each is a different
// closure-and-association over the same target universe, computed in strict
// dependency order (test depends on main, project on test-or-main).
package resolve
