package interfaces

import (
	"context"

	domaintypes "e2ekeys/internal/domain/types"
)

// KeyDirectory is how we talk to the remote key directory, all with context.
//
// Absence (no key registered, no wrapped entry) is reported with ok=false
// and a nil error.
type KeyDirectory interface {
	// RegisterPublicKey registers the caller's public key and returns its key
	// id. An existing registration yields domain.ErrConflict.
	RegisterPublicKey(ctx context.Context, publicKey []byte) (domaintypes.KeyID, error)
	// RotatePublicKey replaces the caller's registered key and returns the
	// new key id.
	RotatePublicKey(ctx context.Context, publicKey []byte) (domaintypes.KeyID, error)
	FetchPublicKey(
		ctx context.Context,
		userID domaintypes.UserID,
	) (domaintypes.PublicKeyRecord, bool, error)

	FetchGroupMembers(
		ctx context.Context,
		groupID domaintypes.GroupID,
	) ([]domaintypes.GroupMember, error)
	FetchWrappedGroupKey(
		ctx context.Context,
		groupID domaintypes.GroupID,
	) (domaintypes.WrappedGroupKey, bool, error)
	PushWrappedGroupKeys(
		ctx context.Context,
		groupID domaintypes.GroupID,
		entries []domaintypes.WrappedGroupKeyEntry,
	) error

	// Self returns the user id the client acts as.
	Self() domaintypes.UserID
}
