// Package crypto exposes the primitives used by e2ekeys.
//
// Contents
//
//   - X25519 key generation with RFC 7748 clamping (GenerateKeyPair)
//   - Peer public key validation (ParsePublicKey)
//   - Pairwise shared secret derivation, X25519 then HKDF-SHA256 (SharedSecret)
//   - ChaCha20-Poly1305 sealing with a random 12-byte nonce (Seal, Open)
//   - Random symmetric keys for groups (NewSymmetricKey)
//   - Best-effort memory wiping for sensitive byte slices (Wipe)
//   - Short public-key fingerprints for display and logging (Fingerprint)
//
// # Notes
//
// Every failure is reported with one of the domain sentinels so callers can
// branch with errors.Is: ErrCryptoBackend when the random source fails,
// ErrInvalidKey for malformed key material and ErrDecryptionFailure when an
// AEAD open does not authenticate. Open never returns partial plaintext.
package crypto
