// Package message encrypts and decrypts payloads for exactly one peer.
//
// Both directions derive the same pairwise key from the caller's X25519
// private key and the peer's public key, then seal or open it with
// ChaCha20-Poly1305. A message only opens with the key pair it was sealed
// for: if the peer has rotated keys since, DecryptFromUser fails with
// domain.ErrDecryptionFailure and callers should treat the keys as out of
// sync rather than retry.
package message
