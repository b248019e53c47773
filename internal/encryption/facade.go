package encryption

import (
	"context"
	"fmt"

	"e2ekeys/internal/domain"
	"e2ekeys/internal/logging"
)

// Facade exposes key management and encryption for one device.
type Facade struct {
	identity domain.IdentityService
	groups   domain.GroupKeyService
	codec    domain.MessageCodec
	dir      domain.KeyDirectory
	vault    domain.KeyVault
	log      logging.Logger
}

// invalidator is implemented by directory caches such as directory.Cached.
type invalidator interface {
	Invalidate(userID domain.UserID)
}

// New returns a Facade over the given components.
func New(
	identity domain.IdentityService,
	groups domain.GroupKeyService,
	codec domain.MessageCodec,
	dir domain.KeyDirectory,
	vault domain.KeyVault,
	log logging.Logger,
) *Facade {
	return &Facade{identity: identity, groups: groups, codec: codec, dir: dir, vault: vault, log: log}
}

// Self returns the user this device acts as.
func (f *Facade) Self() domain.UserID { return f.dir.Self() }

// EnsureKeyPair returns the device key pair, creating and registering it on
// first use.
func (f *Facade) EnsureKeyPair(ctx context.Context) (domain.KeyPair, error) {
	return f.identity.EnsureKeyPair(ctx)
}

// RegisterKeyPair makes sure the device key is registered and returns its id.
// Calling it repeatedly yields the same id.
func (f *Facade) RegisterKeyPair(ctx context.Context) (domain.KeyID, error) {
	if _, err := f.identity.EnsureKeyPair(ctx); err != nil {
		return "", err
	}
	return f.identity.Register(ctx)
}

// RegenerateKeyPair replaces the device key pair.
func (f *Facade) RegenerateKeyPair(ctx context.Context) (domain.KeyPair, error) {
	return f.identity.Regenerate(ctx)
}

// ClearKeys removes the key pair and every cached group key from the device.
func (f *Facade) ClearKeys() error {
	gks, err := f.vault.ListGroupKeys()
	if err != nil {
		return err
	}
	for _, gk := range gks {
		if err := f.groups.Forget(gk.GroupID); err != nil {
			return err
		}
	}
	return f.identity.Clear()
}

// Fingerprint returns a short fingerprint of the device public key.
func (f *Facade) Fingerprint() (domain.Fingerprint, error) {
	return f.identity.Fingerprint()
}

// LookupPublicKey returns userID's registered key, if any.
func (f *Facade) LookupPublicKey(ctx context.Context, userID domain.UserID) (domain.PublicKeyRecord, bool, error) {
	return f.dir.FetchPublicKey(ctx, userID)
}

// EncryptForUser seals plaintext for peer's current key.
func (f *Facade) EncryptForUser(ctx context.Context, peer domain.UserID, plaintext []byte) (domain.EncryptedMessage, error) {
	own, err := f.identity.EnsureKeyPair(ctx)
	if err != nil {
		return domain.EncryptedMessage{}, err
	}
	rec, err := f.peerKey(ctx, peer)
	if err != nil {
		return domain.EncryptedMessage{}, err
	}
	return f.codec.EncryptForUser(own, rec.PublicKey, plaintext)
}

// DecryptFromUser opens msg from peer using peer's current key.
//
// A message sealed before either side regenerated its key fails with
// domain.ErrDecryptionFailure.
func (f *Facade) DecryptFromUser(ctx context.Context, peer domain.UserID, msg domain.EncryptedMessage) ([]byte, error) {
	own, ok, err := f.identity.CurrentKeyPair()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNoKeyPair
	}
	rec, err := f.peerKey(ctx, peer)
	if err != nil {
		return nil, err
	}
	return f.codec.DecryptFromUser(own, rec.PublicKey, msg)
}

// peerKey fetches peer's registered key, bypassing any cached copy so a
// regenerated key is seen at once.
func (f *Facade) peerKey(ctx context.Context, peer domain.UserID) (domain.PublicKeyRecord, error) {
	if inv, ok := f.dir.(invalidator); ok {
		inv.Invalidate(peer)
	}
	rec, ok, err := f.dir.FetchPublicKey(ctx, peer)
	if err != nil {
		return domain.PublicKeyRecord{}, err
	}
	if !ok {
		f.log.Debugf("%s has no registered key", peer)
		return domain.PublicKeyRecord{}, fmt.Errorf("%s: %w", peer, domain.ErrPeerHasNoKey)
	}
	return rec, nil
}

// InitializeGroupEncryption creates and distributes a key for groupID.
func (f *Facade) InitializeGroupEncryption(ctx context.Context, groupID domain.GroupID) (domain.DistributionReport, error) {
	return f.groups.InitializeGroupEncryption(ctx, groupID)
}

// GetGroupKey returns the key of groupID if this device can obtain it.
func (f *Facade) GetGroupKey(ctx context.Context, groupID domain.GroupID) (domain.GroupKey, bool, error) {
	return f.groups.GetGroupKey(ctx, groupID)
}

// EncryptForGroup seals plaintext for every member holding the group key.
func (f *Facade) EncryptForGroup(ctx context.Context, groupID domain.GroupID, plaintext []byte) (domain.EncryptedMessage, error) {
	msg, ok, err := f.groups.EncryptForGroup(ctx, groupID, plaintext)
	if err != nil {
		return domain.EncryptedMessage{}, err
	}
	if !ok {
		return domain.EncryptedMessage{}, fmt.Errorf("%s: %w", groupID, domain.ErrGroupKeyUnavailable)
	}
	return msg, nil
}

// DecryptFromGroup opens a group message.
func (f *Facade) DecryptFromGroup(ctx context.Context, groupID domain.GroupID, msg domain.EncryptedMessage) ([]byte, error) {
	pt, ok, err := f.groups.DecryptFromGroup(ctx, groupID, msg)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", groupID, domain.ErrGroupKeyUnavailable)
	}
	return pt, nil
}

// GroupStatus reports how far group encryption is usable for groupID.
func (f *Facade) GroupStatus(ctx context.Context, groupID domain.GroupID) (domain.GroupStatus, error) {
	return f.groups.Status(ctx, groupID)
}
