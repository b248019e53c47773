// Package identity manages the device key pair lifecycle.
//
// The key pair is created lazily on first need, registered with the key
// directory and persisted in the vault together with the directory's key id.
// Generation and registration form one critical section per device:
// concurrent callers share a single in-flight attempt.
//
// Registration is idempotent from the caller's side. When the directory
// reports a conflict, the existing record is fetched and its key id is
// reused, provided it holds the same public key. If it holds a different key
// (the local private key was lost), ErrKeyOutOfSync is returned and nothing
// is persisted; Regenerate is the explicit way out.
package identity
