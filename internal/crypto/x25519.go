package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"io"

	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/hkdf"

	"e2ekeys/internal/domain"
)

// KeySize is the length of X25519 keys and of every symmetric key.
const KeySize = 32

const pairwiseInfo = "e2ekeys/pairwise/v1"

// GenerateKeyPair returns a fresh Curve25519 key pair.
// The private key is clamped per RFC 7748.
func GenerateKeyPair() (priv domain.X25519Private, pub domain.X25519Public, err error) {
	if _, err = io.ReadFull(rand.Reader, priv[:]); err != nil {
		return priv, pub, fmt.Errorf("%w: %v", domain.ErrCryptoBackend, err)
	}
	clamp(&priv)
	pb, err := curve25519.X25519(priv.Slice(), curve25519.Basepoint)
	if err != nil {
		return priv, pub, fmt.Errorf("%w: %v", domain.ErrCryptoBackend, err)
	}
	copy(pub[:], pb)
	return priv, pub, nil
}

// ParsePublicKey validates raw bytes as an X25519 public key.
func ParsePublicKey(b []byte) (pub domain.X25519Public, err error) {
	if len(b) != KeySize {
		return pub, fmt.Errorf("%w: public key is %d bytes, want %d", domain.ErrInvalidKey, len(b), KeySize)
	}
	copy(pub[:], b)
	return pub, nil
}

// SharedSecret derives the pairwise symmetric key between priv and peer.
//
// The result is identical for (a.priv, b.pub) and (b.priv, a.pub). Low order
// peer points, which yield an all-zero X25519 output, are rejected.
func SharedSecret(priv domain.X25519Private, peer []byte) ([]byte, error) {
	pub, err := ParsePublicKey(peer)
	if err != nil {
		return nil, err
	}
	dh, err := curve25519.X25519(priv.Slice(), pub.Slice())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidKey, err)
	}
	defer Wipe(dh)

	var zero [KeySize]byte
	if subtle.ConstantTimeCompare(dh, zero[:]) == 1 {
		return nil, fmt.Errorf("%w: low order public key", domain.ErrInvalidKey)
	}

	out := make([]byte, KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, dh, nil, []byte(pairwiseInfo)), out); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCryptoBackend, err)
	}
	return out, nil
}

func clamp(k *domain.X25519Private) {
	kb := k[:]
	kb[0] &= 248
	kb[31] &= 127
	kb[31] |= 64
}
