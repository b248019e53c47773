// Package domain defines core data models, contracts and the error taxonomy
// shared across the module.
//
// It contains plain types (wire/state), interfaces and sentinel errors only.
// Callers branch on failures with errors.Is against the Err* values; soft
// absence is never an error and is reported through ok=false returns.
package domain
