package codec

import (
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"strings"

	"e2ekeys/internal/crypto"
	"e2ekeys/internal/domain"
)

const (
	pemType     = "E2E PUBLIC KEY"
	keyIDHeader = "Key-Id"
)

// EncodeKey returns standard base64 encoding without newlines.
func EncodeKey(b []byte) string { return base64.StdEncoding.EncodeToString(b) }

// DecodeKey reverses EncodeKey and checks the result is an X25519 key.
func DecodeKey(s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidKey, err)
	}
	if _, err := crypto.ParsePublicKey(b); err != nil {
		return nil, err
	}
	return b, nil
}

// ArmorPublicKey renders a public key record as a PEM block.
func ArmorPublicKey(rec domain.PublicKeyRecord) string {
	blk := &pem.Block{Type: pemType, Bytes: rec.PublicKey}
	if rec.KeyID != "" || rec.UserID != "" {
		blk.Headers = map[string]string{}
	}
	if rec.KeyID != "" {
		blk.Headers[keyIDHeader] = rec.KeyID.String()
	}
	if rec.UserID != "" {
		blk.Headers["User-Id"] = rec.UserID.String()
	}
	return string(pem.EncodeToMemory(blk))
}

// ParsePublicKey reads the first armored public key in s.
func ParsePublicKey(s string) (domain.PublicKeyRecord, error) {
	blk, _ := pem.Decode([]byte(s))
	if blk == nil || blk.Type != pemType {
		return domain.PublicKeyRecord{}, fmt.Errorf("%w: no %s block", domain.ErrInvalidKey, pemType)
	}
	if _, err := crypto.ParsePublicKey(blk.Bytes); err != nil {
		return domain.PublicKeyRecord{}, err
	}
	return domain.PublicKeyRecord{
		UserID:    domain.UserID(blk.Headers["User-Id"]),
		PublicKey: blk.Bytes,
		KeyID:     domain.KeyID(blk.Headers[keyIDHeader]),
	}, nil
}
