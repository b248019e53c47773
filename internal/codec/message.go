package codec

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"e2ekeys/internal/domain"
)

const messageVersion = "v1"

var b64 = base64.RawURLEncoding

// EncodeMessage renders msg in the compact dotted form.
func EncodeMessage(msg domain.EncryptedMessage) string {
	parts := []string{messageVersion, b64.EncodeToString(msg.Nonce), b64.EncodeToString(msg.Ciphertext)}
	if len(msg.SenderEphemeralPublicKey) > 0 {
		parts = append(parts, b64.EncodeToString(msg.SenderEphemeralPublicKey))
	}
	return strings.Join(parts, ".")
}

// DecodeMessage parses the compact form produced by EncodeMessage.
func DecodeMessage(s string) (domain.EncryptedMessage, error) {
	var msg domain.EncryptedMessage
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) < 3 || len(parts) > 4 {
		return msg, fmt.Errorf("%w: want 3 or 4 parts, got %d", domain.ErrMalformedMessage, len(parts))
	}
	if parts[0] != messageVersion {
		return msg, fmt.Errorf("%w: unknown version %q", domain.ErrMalformedMessage, parts[0])
	}
	fields := []*[]byte{&msg.Nonce, &msg.Ciphertext, &msg.SenderEphemeralPublicKey}
	for i, p := range parts[1:] {
		b, err := b64.DecodeString(p)
		if err != nil {
			return domain.EncryptedMessage{}, fmt.Errorf("%w: part %d: %v", domain.ErrMalformedMessage, i+1, err)
		}
		*fields[i] = b
	}
	if len(msg.Nonce) == 0 || len(msg.Ciphertext) == 0 {
		return domain.EncryptedMessage{}, fmt.Errorf("%w: empty nonce or ciphertext", domain.ErrMalformedMessage)
	}
	return msg, nil
}

// MarshalMessage returns the JSON wire form of msg.
func MarshalMessage(msg domain.EncryptedMessage) ([]byte, error) { return json.Marshal(msg) }

// UnmarshalMessage parses the JSON wire form of a message.
func UnmarshalMessage(b []byte) (domain.EncryptedMessage, error) {
	var msg domain.EncryptedMessage
	if err := json.Unmarshal(b, &msg); err != nil {
		return domain.EncryptedMessage{}, fmt.Errorf("%w: %v", domain.ErrMalformedMessage, err)
	}
	if len(msg.Nonce) == 0 || len(msg.Ciphertext) == 0 {
		return domain.EncryptedMessage{}, fmt.Errorf("%w: empty nonce or ciphertext", domain.ErrMalformedMessage)
	}
	return msg, nil
}
