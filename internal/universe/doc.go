// Package universe provides the target universe store: it discovers and
// parses BUILD.yml files into declared target nodes and serves target-graph
// closures and rule-graph realizations over that universe.
//
// BUILD files are the single source of truth for target declarations. One
// BUILD.yml lives in each package directory; targets declared there are
// addressed as //package/path:name.
package universe
