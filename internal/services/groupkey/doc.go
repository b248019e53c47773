// Package groupkey distributes and resolves per-group symmetric keys.
//
// InitializeGroupEncryption generates a fresh group key, wraps it for every
// member with a registered public key and publishes the wrapped copies to
// the key directory. Wrapping runs on a bounded pool of goroutines; a member
// whose wrap fails is left out and reported, without affecting the others.
// The initializing device always includes itself.
//
// GetGroupKey is the lazy path used by every other member: it returns the
// cached key from the vault, or fetches the caller's wrapped entry, unwraps
// it with the wrapping member's public key and caches the result. A group
// without encryption, or one this member was left out of, yields ok=false.
//
// There is no rotation: once distributed, a group key stays live for the
// group. Members added later are not covered until the group is initialized
// again, which replaces the published bundle.
package groupkey
