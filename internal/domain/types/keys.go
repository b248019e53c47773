package types

import (
	"encoding/base64"
	"fmt"
)

// X25519Public is a Curve25519 public key.
type X25519Public [32]byte

// Slice returns the key as a []byte.
func (p X25519Public) Slice() []byte { return p[:] }

// MarshalText encodes the key as standard base64.
func (p X25519Public) MarshalText() ([]byte, error) { return marshalKey(p[:]) }

// UnmarshalText decodes a standard base64 key.
func (p *X25519Public) UnmarshalText(b []byte) error { return unmarshalKey(p[:], b) }

// X25519Private is a Curve25519 private key.
type X25519Private [32]byte

// Slice returns the key as a []byte.
func (k X25519Private) Slice() []byte { return k[:] }

// MarshalText encodes the key as standard base64.
func (k X25519Private) MarshalText() ([]byte, error) { return marshalKey(k[:]) }

// UnmarshalText decodes a standard base64 key.
func (k *X25519Private) UnmarshalText(b []byte) error { return unmarshalKey(k[:], b) }

// KeyPair is this device's long-term key-agreement key pair.
//
// Private never leaves the owning device. KeyID is assigned by the key
// directory at registration and is stable for the lifetime of the pair.
type KeyPair struct {
	Public  X25519Public  `json:"public_key"`
	Private X25519Private `json:"private_key"`
	KeyID   KeyID         `json:"key_id"`
}

// PublicKeyRecord is the directory's view of a user's registered key.
//
// PublicKey is kept as raw bytes because the directory is not trusted to
// serve well-formed material; it is validated at the point of use.
type PublicKeyRecord struct {
	UserID    UserID `json:"userId"`
	PublicKey []byte `json:"publicKey"`
	KeyID     KeyID  `json:"keyId"`
}

func marshalKey(k []byte) ([]byte, error) {
	out := make([]byte, base64.StdEncoding.EncodedLen(len(k)))
	base64.StdEncoding.Encode(out, k)
	return out, nil
}

func unmarshalKey(dst, text []byte) error {
	raw := make([]byte, base64.StdEncoding.DecodedLen(len(text)))
	n, err := base64.StdEncoding.Decode(raw, text)
	if err != nil {
		return err
	}
	if n != len(dst) {
		return fmt.Errorf("key: want %d bytes, got %d", len(dst), n)
	}
	copy(dst, raw[:n])
	return nil
}
