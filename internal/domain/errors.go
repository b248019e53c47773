package domain

import "errors"

// Cryptographic errors.
var (
	// ErrCryptoBackend indicates the platform crypto provider (randomness,
	// primitives) is unavailable. Fatal to the operation attempted.
	ErrCryptoBackend = errors.New("crypto backend unavailable")

	// ErrInvalidKey indicates malformed or wrong-length key material.
	ErrInvalidKey = errors.New("invalid key material")

	// ErrDecryptionFailure indicates an AEAD tag or nonce mismatch. Either the
	// keys are out of sync (the peer rotated) or the message was tampered with.
	ErrDecryptionFailure = errors.New("decryption failed")

	// ErrMalformedMessage indicates an encoded message could not be parsed.
	ErrMalformedMessage = errors.New("malformed encrypted message")
)

// Key lifecycle errors.
var (
	// ErrConflict is returned by the directory when this user already has a
	// registered key. It is recovered by fetching the existing record.
	ErrConflict = errors.New("public key already registered")

	// ErrKeyOutOfSync indicates the directory holds a key for this user that
	// does not match the local key pair.
	ErrKeyOutOfSync = errors.New("local key pair does not match the registered key")

	// ErrNoKeyPair indicates the device has no local key pair.
	ErrNoKeyPair = errors.New("no local key pair")

	// ErrVaultLocked indicates the vault passphrase is wrong or the file was
	// modified.
	ErrVaultLocked = errors.New("wrong passphrase or corrupted vault")
)

// ErrMalformedResponse indicates a directory reply could not be decoded.
var ErrMalformedResponse = errors.New("malformed directory response")

// Capability errors. These describe expected steady states and are surfaced
// to users as "not available yet" rather than as faults.
var (
	// ErrPeerHasNoKey indicates the peer never registered a public key.
	ErrPeerHasNoKey = errors.New("peer has no registered public key")

	// ErrGroupKeyUnavailable indicates no group key can be obtained for this
	// device: encryption was never enabled for the group, or this member was
	// not included when it was.
	ErrGroupKeyUnavailable = errors.New("group encryption is not available")
)

// Group distribution errors.
var (
	// ErrNoEncryptionCapableMembers indicates no group member has a key.
	ErrNoEncryptionCapableMembers = errors.New("no encryption-capable group members")

	// ErrGroupKeyDistributionFailed indicates wrapping failed for every member.
	ErrGroupKeyDistributionFailed = errors.New("group key could not be wrapped for any member")
)
