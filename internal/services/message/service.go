package message

import (
	"fmt"

	"e2ekeys/internal/crypto"
	"e2ekeys/internal/domain"
)

// Service is the direct message codec. It holds no state.
type Service struct{}

// New returns a message codec.
func New() *Service { return &Service{} }

// EncryptForUser seals plaintext for the holder of peerPublicKey.
func (s *Service) EncryptForUser(
	own domain.KeyPair,
	peerPublicKey []byte,
	plaintext []byte,
) (domain.EncryptedMessage, error) {
	key, err := crypto.SharedSecret(own.Private, peerPublicKey)
	if err != nil {
		return domain.EncryptedMessage{}, fmt.Errorf("encrypt for peer: %w", err)
	}
	defer crypto.Wipe(key)

	ct, nonce, err := crypto.Seal(key, plaintext)
	if err != nil {
		return domain.EncryptedMessage{}, fmt.Errorf("encrypt for peer: %w", err)
	}
	return domain.EncryptedMessage{Ciphertext: ct, Nonce: nonce}, nil
}

// DecryptFromUser opens msg sent by the holder of peerPublicKey.
func (s *Service) DecryptFromUser(
	own domain.KeyPair,
	peerPublicKey []byte,
	msg domain.EncryptedMessage,
) ([]byte, error) {
	key, err := crypto.SharedSecret(own.Private, peerPublicKey)
	if err != nil {
		return nil, fmt.Errorf("decrypt from peer: %w", err)
	}
	defer crypto.Wipe(key)

	pt, err := crypto.Open(key, msg.Ciphertext, msg.Nonce)
	if err != nil {
		return nil, fmt.Errorf("decrypt from peer: %w", err)
	}
	return pt, nil
}

// Compile-time assertion that Service implements domain.MessageCodec.
var _ domain.MessageCodec = (*Service)(nil)
