// Package store provides file-based persistence for a device's key material.
//
// FileVault implements domain.KeyVault. It keeps two files under the device
// home directory: the device key pair and a map of unwrapped group keys.
// When a passphrase is configured both files are sealed with a scrypt-derived
// ChaCha20-Poly1305 key (keypair.json.enc, group_keys.json.enc); otherwise
// they are plain JSON readable only by the owner (keypair.json,
// group_keys.json).
//
// Every write replaces the whole file through a temp file and rename, and
// an internal mutex serialises callers within the process.
package store
