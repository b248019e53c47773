package crypto

import (
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"

	"e2ekeys/internal/domain"
)

// NonceSize is the AEAD nonce length.
const NonceSize = chacha20poly1305.NonceSize

// NewSymmetricKey returns KeySize random bytes.
func NewSymmetricKey() ([]byte, error) {
	k := make([]byte, KeySize)
	if _, err := io.ReadFull(rand.Reader, k); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCryptoBackend, err)
	}
	return k, nil
}

// Seal encrypts plaintext under key with a fresh random nonce.
func Seal(key, plaintext []byte) (ciphertext, nonce []byte, err error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrInvalidKey, err)
	}
	nonce = make([]byte, NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrCryptoBackend, err)
	}
	return aead.Seal(nil, nonce, plaintext, nil), nonce, nil
}

// Open authenticates and decrypts ciphertext.
func Open(key, ciphertext, nonce []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidKey, err)
	}
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("%w: nonce is %d bytes", domain.ErrDecryptionFailure, len(nonce))
	}
	pt, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, domain.ErrDecryptionFailure
	}
	return pt, nil
}
