// Package app wires application dependencies for the CLI.
//
// It loads Config from TOML, then builds the vault, directory client
// (with its optional cache and retry decorators), services and the
// encryption facade, exposing them via the Wire struct for commands to use.
package app
