// Package app wires application dependencies for the CLI.
//
// It loads Config from the home directory and environment, builds the logger,
// the metrics registry, the identity store and the high-level services, and
// exposes them via the App struct for commands to use.
package app
