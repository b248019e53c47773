// Package logging provides levelled, coloured output for e2ekeys.
//
// Verbosity is controlled by two flags:
//
//   - Verbose: shows info and warning messages
//   - Debug: shows everything, including debug details
//
// Errors are always shown. Expected "not available yet" conditions, such as
// a peer without a key or a group without encryption, are reported with
// Debugf so they stay quiet at normal verbosity.
//
//	log := logging.Logger{Verbose: verbose, Debug: debug}
//	log.Infof("registered key %s", keyID)
//
// The zero Logger writes errors to stderr and drops everything else.
package logging
