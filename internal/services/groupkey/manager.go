package groupkey

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"e2ekeys/internal/crypto"
	"e2ekeys/internal/domain"
	"e2ekeys/internal/logging"
)

// DefaultConcurrency bounds the wrapping pool when none is configured.
const DefaultConcurrency = 8

// Manager implements domain.GroupKeyService.
type Manager struct {
	vault       domain.KeyVault
	dir         domain.KeyDirectory
	identity    domain.IdentityService
	codec       domain.MessageCodec
	log         logging.Logger
	concurrency int
	fetches     singleflight.Group
}

// New returns a Manager. concurrency <= 0 selects DefaultConcurrency.
func New(
	vault domain.KeyVault,
	dir domain.KeyDirectory,
	identity domain.IdentityService,
	codec domain.MessageCodec,
	log logging.Logger,
	concurrency int,
) *Manager {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Manager{
		vault:       vault,
		dir:         dir,
		identity:    identity,
		codec:       codec,
		log:         log,
		concurrency: concurrency,
	}
}

// wrapResult is one member's fan-out outcome.
type wrapResult struct {
	entry domain.WrappedGroupKeyEntry
	err   error
}

// InitializeGroupEncryption creates and distributes a new key for groupID.
func (m *Manager) InitializeGroupEncryption(
	ctx context.Context,
	groupID domain.GroupID,
) (domain.DistributionReport, error) {
	report := domain.DistributionReport{GroupID: groupID}

	own, err := m.identity.EnsureKeyPair(ctx)
	if err != nil {
		return report, err
	}

	members, err := m.dir.FetchGroupMembers(ctx, groupID)
	if err != nil {
		return report, fmt.Errorf("fetch members of %s: %w", groupID, err)
	}
	report.TotalMembers = len(members)

	capable := make([]domain.GroupMember, 0, len(members))
	for _, mem := range members {
		if mem.HasKey() {
			capable = append(capable, mem)
		}
	}
	if len(capable) == 0 {
		return report, fmt.Errorf("group %s: %w", groupID, domain.ErrNoEncryptionCapableMembers)
	}
	capable = includeSelf(capable, m.dir.Self(), own)
	report.CapableMembers = len(capable)

	symKey, err := crypto.NewSymmetricKey()
	if err != nil {
		return report, err
	}
	keyID := domain.KeyID(uuid.NewString())
	report.KeyID = keyID

	results := m.wrapAll(ctx, own, capable, symKey, keyID)

	entries := make([]domain.WrappedGroupKeyEntry, 0, len(results))
	for i, r := range results {
		if r.err != nil {
			m.log.Warnf("group %s: could not wrap key for %s: %v", groupID, capable[i].UserID, r.err)
			report.Failed = append(report.Failed, domain.MemberFailure{UserID: capable[i].UserID, Err: r.err})
			continue
		}
		entries = append(entries, r.entry)
	}
	report.Wrapped = len(entries)
	if len(entries) == 0 {
		crypto.Wipe(symKey)
		return report, fmt.Errorf("group %s: %w", groupID, domain.ErrGroupKeyDistributionFailed)
	}

	if err := m.dir.PushWrappedGroupKeys(ctx, groupID, entries); err != nil {
		crypto.Wipe(symKey)
		return report, fmt.Errorf("publish keys for %s: %w", groupID, err)
	}

	gk := domain.GroupKey{GroupID: groupID, SymmetricKey: symKey, KeyID: keyID}
	if err := m.vault.SaveGroupKey(groupID, gk); err != nil {
		crypto.Wipe(symKey)
		return report, fmt.Errorf("group %s: key %s published but not cached locally: %w", groupID, keyID, err)
	}
	m.log.Infof("group %s: key %s wrapped for %d of %d members", groupID, keyID, report.Wrapped, report.TotalMembers)
	return report, nil
}

// wrapAll wraps symKey for every member concurrently. results[i] belongs to
// members[i]; a failure never stops the other workers.
func (m *Manager) wrapAll(
	ctx context.Context,
	own domain.KeyPair,
	members []domain.GroupMember,
	symKey []byte,
	keyID domain.KeyID,
) []wrapResult {
	results := make([]wrapResult, len(members))

	var g errgroup.Group
	g.SetLimit(m.concurrency)
	for i, mem := range members {
		i, mem := i, mem
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].err = err
				return nil
			}
			msg, err := m.codec.EncryptForUser(own, mem.PublicKey, symKey)
			if err != nil {
				results[i].err = err
				return nil
			}
			msg.SenderEphemeralPublicKey = own.Public.Slice()
			results[i].entry = domain.WrappedGroupKeyEntry{
				UserID:            mem.UserID,
				EncryptedGroupKey: msg,
				KeyID:             keyID,
				RecipientKeyID:    mem.KeyID,
			}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// includeSelf makes sure self is wrapped to the local public key.
func includeSelf(members []domain.GroupMember, self domain.UserID, own domain.KeyPair) []domain.GroupMember {
	rec := domain.GroupMember{UserID: self, PublicKey: own.Public.Slice(), KeyID: own.KeyID}
	for i := range members {
		if members[i].UserID == self {
			rec.UserName = members[i].UserName
			members[i] = rec
			return members
		}
	}
	return append(members, rec)
}

// GetGroupKey returns the key of groupID, fetching and unwrapping it on
// first use.
func (m *Manager) GetGroupKey(ctx context.Context, groupID domain.GroupID) (domain.GroupKey, bool, error) {
	if gk, ok, err := m.vault.LoadGroupKey(groupID); err != nil || ok {
		return gk, ok, err
	}

	own, ok, err := m.identity.CurrentKeyPair()
	if err != nil {
		return domain.GroupKey{}, false, err
	}
	if !ok {
		m.log.Debugf("group %s: no local key pair, group key unavailable", groupID)
		return domain.GroupKey{}, false, nil
	}

	v, err, _ := m.fetches.Do(groupID.String(), func() (any, error) {
		return m.fetch(ctx, groupID, own)
	})
	if err != nil {
		return domain.GroupKey{}, false, err
	}
	gk, _ := v.(*domain.GroupKey)
	if gk == nil {
		return domain.GroupKey{}, false, nil
	}
	return *gk, true, nil
}

// fetch unwraps the caller's entry. A nil key means the group has no key
// for this device.
func (m *Manager) fetch(ctx context.Context, groupID domain.GroupID, own domain.KeyPair) (*domain.GroupKey, error) {
	wk, ok, err := m.dir.FetchWrappedGroupKey(ctx, groupID)
	if errors.Is(err, domain.ErrMalformedResponse) {
		m.log.Debugf("group %s: wrapped key unreadable: %v", groupID, err)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch wrapped key for %s: %w", groupID, err)
	}
	if !ok {
		m.log.Debugf("group %s: no wrapped key for this device", groupID)
		return nil, nil
	}

	symKey, err := m.codec.DecryptFromUser(own, wk.UserPublicKey, wk.EncryptedGroupKey)
	if err == nil && len(symKey) != crypto.KeySize {
		err = fmt.Errorf("%w: group key is %d bytes", domain.ErrInvalidKey, len(symKey))
	}
	if err != nil {
		if !errors.Is(err, domain.ErrDecryptionFailure) && !errors.Is(err, domain.ErrInvalidKey) {
			return nil, err
		}
		m.log.Debugf("group %s: wrapped key %s unusable: %v", groupID, wk.KeyID, err)
		return nil, nil
	}

	gk := domain.GroupKey{GroupID: groupID, SymmetricKey: symKey, KeyID: wk.KeyID}
	if err := m.vault.SaveGroupKey(groupID, gk); err != nil {
		return nil, err
	}
	m.log.Infof("group %s: unwrapped key %s", groupID, wk.KeyID)
	return &gk, nil
}

// EncryptForGroup seals plaintext under the group key. ok is false when the
// group has no key for this device.
func (m *Manager) EncryptForGroup(
	ctx context.Context,
	groupID domain.GroupID,
	plaintext []byte,
) (domain.EncryptedMessage, bool, error) {
	gk, ok, err := m.GetGroupKey(ctx, groupID)
	if err != nil || !ok {
		return domain.EncryptedMessage{}, false, err
	}
	ct, nonce, err := crypto.Seal(gk.SymmetricKey, plaintext)
	if err != nil {
		return domain.EncryptedMessage{}, false, err
	}
	return domain.EncryptedMessage{Ciphertext: ct, Nonce: nonce}, true, nil
}

// DecryptFromGroup opens msg with the group key. ok is false when the group
// has no key for this device; a tampered message is ErrDecryptionFailure.
func (m *Manager) DecryptFromGroup(
	ctx context.Context,
	groupID domain.GroupID,
	msg domain.EncryptedMessage,
) ([]byte, bool, error) {
	gk, ok, err := m.GetGroupKey(ctx, groupID)
	if err != nil || !ok {
		return nil, false, err
	}
	pt, err := crypto.Open(gk.SymmetricKey, msg.Ciphertext, msg.Nonce)
	if err != nil {
		return nil, true, fmt.Errorf("group %s: %w", groupID, err)
	}
	return pt, true, nil
}

// Status reports how many members can take part in group encryption and
// whether this device holds the key.
func (m *Manager) Status(ctx context.Context, groupID domain.GroupID) (domain.GroupStatus, error) {
	st := domain.GroupStatus{GroupID: groupID}
	members, err := m.dir.FetchGroupMembers(ctx, groupID)
	if err != nil {
		return st, fmt.Errorf("fetch members of %s: %w", groupID, err)
	}
	st.TotalMembers = len(members)
	for _, mem := range members {
		if mem.HasKey() {
			st.CapableMembers++
		}
	}
	gk, ok, err := m.vault.LoadGroupKey(groupID)
	if err != nil {
		return st, err
	}
	st.KeyCached = ok
	st.KeyID = gk.KeyID
	return st, nil
}

// Forget drops the cached key of groupID. It is fetched again on next use.
func (m *Manager) Forget(groupID domain.GroupID) error {
	return m.vault.DeleteGroupKey(groupID)
}

// Compile-time assertion that Manager implements domain.GroupKeyService.
var _ domain.GroupKeyService = (*Manager)(nil)
