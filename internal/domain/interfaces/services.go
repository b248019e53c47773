package interfaces

import (
	"context"

	domaintypes "e2ekeys/internal/domain/types"
)

// IdentityService owns the device key pair lifecycle.
type IdentityService interface {
	EnsureKeyPair(ctx context.Context) (domaintypes.KeyPair, error)
	CurrentKeyPair() (domaintypes.KeyPair, bool, error)
	Register(ctx context.Context) (domaintypes.KeyID, error)
	Regenerate(ctx context.Context) (domaintypes.KeyPair, error)
	Fingerprint() (domaintypes.Fingerprint, error)
	Clear() error
}

// MessageCodec encrypts and decrypts payloads for exactly one peer.
type MessageCodec interface {
	EncryptForUser(
		own domaintypes.KeyPair,
		peerPublicKey []byte,
		plaintext []byte,
	) (domaintypes.EncryptedMessage, error)
	DecryptFromUser(
		own domaintypes.KeyPair,
		peerPublicKey []byte,
		msg domaintypes.EncryptedMessage,
	) ([]byte, error)
}

// GroupKeyService distributes and resolves group keys.
type GroupKeyService interface {
	InitializeGroupEncryption(
		ctx context.Context,
		groupID domaintypes.GroupID,
	) (domaintypes.DistributionReport, error)
	GetGroupKey(ctx context.Context, groupID domaintypes.GroupID) (domaintypes.GroupKey, bool, error)
	EncryptForGroup(
		ctx context.Context,
		groupID domaintypes.GroupID,
		plaintext []byte,
	) (domaintypes.EncryptedMessage, bool, error)
	DecryptFromGroup(
		ctx context.Context,
		groupID domaintypes.GroupID,
		msg domaintypes.EncryptedMessage,
	) ([]byte, bool, error)
	Status(ctx context.Context, groupID domaintypes.GroupID) (domaintypes.GroupStatus, error)
	Forget(groupID domaintypes.GroupID) error
}
