// Package kestrel holds shared metadata for the Kestrel CLI.
package kestrel

// Version is the current Kestrel release version.
const Version = "0.1.0"
