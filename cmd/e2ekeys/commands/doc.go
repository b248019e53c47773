// Package commands defines the e2ekeys CLI and wires dependencies for subcommands.
//
// Commands
//
//   - init              Write the config file and create a registered key pair
//   - register          Re-register the local public key
//   - regenerate        Replace the key pair locally and in the directory
//   - fingerprint       Print the local key fingerprint
//   - lookup            Print a user's registered public key
//   - encrypt, decrypt  Direct messages in compact form
//   - group ...         Group key distribution and group messages
//   - reset             Delete every local key
//
// # Implementation
//
// The root command loads config.toml from the device home, applies flag
// overrides and builds the dependency graph with app.NewWire before any
// subcommand runs. Long network operations show a spinner on a terminal
// unless --verbose or --debug is set.
package commands
