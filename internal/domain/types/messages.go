package types

// EncryptedMessage is a self-contained AEAD ciphertext.
//
// SenderEphemeralPublicKey is optional. Group key wraps carry the wrapping
// member's public key there so the recipient knows which counterpart key to
// agree with; direct messages leave it empty and the reader resolves the
// peer's current key from the directory.
type EncryptedMessage struct {
	Ciphertext               []byte `json:"ciphertext"`
	Nonce                    []byte `json:"nonce"`
	SenderEphemeralPublicKey []byte `json:"senderEphemeralPublicKey,omitempty"`
}
