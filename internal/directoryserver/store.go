package directoryserver

import (
	"context"
	"errors"

	"e2ekeys/internal/domain"
)

// ErrExists is returned by Store.RegisterKey when the user already has a key.
var ErrExists = errors.New("key already registered")

// Bundle is one published set of wrapped group keys.
type Bundle struct {
	Publisher    domain.UserID
	PublisherKey []byte
	Entries      []domain.WrappedGroupKeyEntry
}

// Store is the directory's persistence layer.
type Store interface {
	RegisterKey(ctx context.Context, rec domain.PublicKeyRecord) error
	ReplaceKey(ctx context.Context, rec domain.PublicKeyRecord) error
	Key(ctx context.Context, userID domain.UserID) (domain.PublicKeyRecord, bool, error)

	AddMember(ctx context.Context, groupID domain.GroupID, userID domain.UserID, userName string) error
	Members(ctx context.Context, groupID domain.GroupID) ([]domain.GroupMember, error)

	PublishBundle(ctx context.Context, groupID domain.GroupID, b Bundle) error
	WrappedKey(ctx context.Context, groupID domain.GroupID, userID domain.UserID) (domain.WrappedGroupKey, bool, error)

	Close() error
}

// wrappedFor picks userID's entry out of b.
//
// The wrapping key is the one carried in the entry when present, else the
// publisher's key at publish time.
func wrappedFor(b Bundle, userID domain.UserID) (domain.WrappedGroupKey, bool) {
	for _, e := range b.Entries {
		if e.UserID != userID {
			continue
		}
		wk := domain.WrappedGroupKey{EncryptedGroupKey: e.EncryptedGroupKey, UserPublicKey: b.PublisherKey, KeyID: e.KeyID}
		if len(e.EncryptedGroupKey.SenderEphemeralPublicKey) > 0 {
			wk.UserPublicKey = e.EncryptedGroupKey.SenderEphemeralPublicKey
		}
		return wk, true
	}
	return domain.WrappedGroupKey{}, false
}
