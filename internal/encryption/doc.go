// Package encryption is the public entry point for end-to-end encryption.
//
// Facade composes the key pair lifecycle, the direct message codec, group
// key management and the key directory behind one set of operations. The
// device identity is an explicit value owned by the Facade's caller (via the
// identity service and vault it is built from), never package state.
//
// Capability gaps are soft errors checkable with errors.Is:
//
//   - domain.ErrPeerHasNoKey: the peer never registered a key.
//   - domain.ErrGroupKeyUnavailable: group encryption is not enabled, or
//     this device was not included when it was.
//
// Callers should present these as "not available yet" rather than failures.
package encryption
