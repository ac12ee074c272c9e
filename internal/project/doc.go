// Package project dispatches assembled target graphs to the per-IDE
// project generators: it resolves the generation mode, selects and validates
// generation roots, and drives the backend for each strategy.
package project
