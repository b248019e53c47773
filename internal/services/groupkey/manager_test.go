package groupkey_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"e2ekeys/internal/crypto"
	"e2ekeys/internal/domain"
	"e2ekeys/internal/domain/mocks"
	"e2ekeys/internal/logging"
	"e2ekeys/internal/services/groupkey"
	"e2ekeys/internal/services/identity"
	"e2ekeys/internal/services/message"
	"e2ekeys/internal/store"
)

type device struct {
	user    domain.UserID
	kp      domain.KeyPair
	dir     *mocks.MockKeyDirectory
	vault   *store.FileVault
	manager *groupkey.Manager
}

func newDevice(t *testing.T, ctrl *gomock.Controller, user domain.UserID, withKey bool) *device {
	t.Helper()
	d := &device{user: user, dir: mocks.NewMockKeyDirectory(ctrl), vault: store.NewFileVault(t.TempDir(), "")}
	d.dir.EXPECT().Self().Return(user).AnyTimes()
	if withKey {
		priv, pub, err := crypto.GenerateKeyPair()
		require.NoError(t, err)
		d.kp = domain.KeyPair{Public: pub, Private: priv, KeyID: domain.KeyID("key-" + user)}
		require.NoError(t, d.vault.SaveKeyPair(d.kp))
	}
	ids := identity.New(d.vault, d.dir, logging.Logger{})
	d.manager = groupkey.New(d.vault, d.dir, ids, message.New(), logging.Logger{}, 2)
	return d
}

func (d *device) member() domain.GroupMember {
	return domain.GroupMember{UserID: d.user, UserName: string(d.user), PublicKey: d.kp.Public.Slice(), KeyID: d.kp.KeyID}
}

func TestInitializeGroupEncryption(t *testing.T) {
	ctx := context.Background()

	t.Run("partial fan-out publishes the members that wrapped", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		alice := newDevice(t, ctrl, "alice", true)
		bob := newDevice(t, ctrl, "bob", true)
		members := []domain.GroupMember{
			alice.member(),
			bob.member(),
			{UserID: "carol", PublicKey: []byte("corrupted"), KeyID: "key-carol"},
			{UserID: "dave"},
		}

		var published []domain.WrappedGroupKeyEntry
		alice.dir.EXPECT().FetchGroupMembers(gomock.Any(), domain.GroupID("g")).Return(members, nil)
		alice.dir.EXPECT().PushWrappedGroupKeys(gomock.Any(), domain.GroupID("g"), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ domain.GroupID, entries []domain.WrappedGroupKeyEntry) error {
				published = entries
				return nil
			})

		report, err := alice.manager.InitializeGroupEncryption(ctx, "g")
		require.NoError(t, err)
		assert.Equal(t, 4, report.TotalMembers)
		assert.Equal(t, 3, report.CapableMembers)
		assert.Equal(t, 2, report.Wrapped)
		require.Len(t, report.Failed, 1)
		assert.Equal(t, domain.UserID("carol"), report.Failed[0].UserID)
		assert.ErrorIs(t, report.Failed[0].Err, domain.ErrInvalidKey)

		require.Len(t, published, 2)
		var forBob domain.WrappedGroupKeyEntry
		for _, e := range published {
			assert.Equal(t, report.KeyID, e.KeyID)
			assert.Equal(t, alice.kp.Public.Slice(), e.EncryptedGroupKey.SenderEphemeralPublicKey)
			if e.UserID == "bob" {
				forBob = e
			}
		}
		assert.Equal(t, domain.KeyID("key-bob"), forBob.RecipientKeyID)

		aliceKey, ok, err := alice.manager.GetGroupKey(ctx, "g")
		require.NoError(t, err)
		require.True(t, ok)

		bob.dir.EXPECT().FetchWrappedGroupKey(gomock.Any(), domain.GroupID("g")).Return(domain.WrappedGroupKey{
			EncryptedGroupKey: forBob.EncryptedGroupKey,
			UserPublicKey:     alice.kp.Public.Slice(),
			KeyID:             forBob.KeyID,
		}, true, nil).Times(1)

		bobKey, ok, err := bob.manager.GetGroupKey(ctx, "g")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, aliceKey.SymmetricKey, bobKey.SymmetricKey)
		assert.Equal(t, aliceKey.KeyID, bobKey.KeyID)

		// Cached now; no second fetch.
		_, ok, err = bob.manager.GetGroupKey(ctx, "g")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("no capable members", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		alice := newDevice(t, ctrl, "alice", true)
		alice.dir.EXPECT().FetchGroupMembers(gomock.Any(), domain.GroupID("g")).
			Return([]domain.GroupMember{{UserID: "bob"}, {UserID: "carol"}}, nil)

		report, err := alice.manager.InitializeGroupEncryption(ctx, "g")
		assert.ErrorIs(t, err, domain.ErrNoEncryptionCapableMembers)
		assert.Equal(t, 2, report.TotalMembers)

		_, ok, err := alice.vault.LoadGroupKey("g")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("initializer missing from members is added", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		alice := newDevice(t, ctrl, "alice", true)
		bob := newDevice(t, ctrl, "bob", true)
		alice.dir.EXPECT().FetchGroupMembers(gomock.Any(), domain.GroupID("g")).
			Return([]domain.GroupMember{bob.member()}, nil)
		alice.dir.EXPECT().PushWrappedGroupKeys(gomock.Any(), domain.GroupID("g"), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ domain.GroupID, entries []domain.WrappedGroupKeyEntry) error {
				users := []domain.UserID{}
				for _, e := range entries {
					users = append(users, e.UserID)
				}
				assert.ElementsMatch(t, []domain.UserID{"alice", "bob"}, users)
				return nil
			})

		report, err := alice.manager.InitializeGroupEncryption(ctx, "g")
		require.NoError(t, err)
		assert.Equal(t, 2, report.CapableMembers)
		assert.Equal(t, 2, report.Wrapped)
	})

	t.Run("every wrap failing is fatal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		alice := newDevice(t, ctrl, "alice", true)
		alice.dir.EXPECT().FetchGroupMembers(gomock.Any(), domain.GroupID("g")).
			Return([]domain.GroupMember{alice.member()}, nil)

		cctx, cancel := context.WithCancel(ctx)
		cancel()
		report, err := alice.manager.InitializeGroupEncryption(cctx, "g")
		assert.ErrorIs(t, err, domain.ErrGroupKeyDistributionFailed)
		assert.Equal(t, 0, report.Wrapped)
		assert.Len(t, report.Failed, 1)
	})

	t.Run("publish failure caches nothing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		alice := newDevice(t, ctrl, "alice", true)
		alice.dir.EXPECT().FetchGroupMembers(gomock.Any(), domain.GroupID("g")).
			Return([]domain.GroupMember{alice.member()}, nil)
		alice.dir.EXPECT().PushWrappedGroupKeys(gomock.Any(), gomock.Any(), gomock.Any()).Return(assert.AnError)

		_, err := alice.manager.InitializeGroupEncryption(ctx, "g")
		assert.ErrorIs(t, err, assert.AnError)
		_, ok, _ := alice.vault.LoadGroupKey("g")
		assert.False(t, ok)
	})
}

// gatedCodec wraps a real codec. Sealing for the gated public key waits for
// release; every finished wrap is reported on done. The last plaintext seen
// is kept in sealed.
type gatedCodec struct {
	domain.MessageCodec
	gated   []byte
	release chan struct{}
	done    chan struct{}

	mu     sync.Mutex
	sealed []byte
}

func (c *gatedCodec) EncryptForUser(own domain.KeyPair, peer []byte, plaintext []byte) (domain.EncryptedMessage, error) {
	if c.gated != nil && bytes.Equal(peer, c.gated) {
		<-c.release
	}
	c.mu.Lock()
	c.sealed = plaintext
	c.mu.Unlock()
	msg, err := c.MessageCodec.EncryptForUser(own, peer, plaintext)
	if c.done != nil {
		c.done <- struct{}{}
	}
	return msg, err
}

func TestInitializeGroupEncryption_SlowMember(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	alice := newDevice(t, ctrl, "alice", true)
	slow := newDevice(t, ctrl, "slow", true)
	bob := newDevice(t, ctrl, "bob", true)
	carol := newDevice(t, ctrl, "carol", true)
	members := []domain.GroupMember{slow.member(), alice.member(), bob.member(), carol.member()}

	codec := &gatedCodec{
		MessageCodec: message.New(),
		gated:        slow.kp.Public.Slice(),
		release:      make(chan struct{}),
		done:         make(chan struct{}, len(members)),
	}
	mgr := groupkey.New(alice.vault, alice.dir, identity.New(alice.vault, alice.dir, logging.Logger{}), codec, logging.Logger{}, 2)

	alice.dir.EXPECT().FetchGroupMembers(gomock.Any(), domain.GroupID("g")).Return(members, nil)
	alice.dir.EXPECT().PushWrappedGroupKeys(gomock.Any(), domain.GroupID("g"), gomock.Any()).Return(nil)

	type outcome struct {
		report domain.DistributionReport
		err    error
	}
	res := make(chan outcome, 1)
	go func() {
		r, err := mgr.InitializeGroupEncryption(ctx, "g")
		res <- outcome{r, err}
	}()

	// The other three members are wrapped while the slow one is still pending.
	for i := 0; i < 3; i++ {
		select {
		case <-codec.done:
		case <-time.After(2 * time.Second):
			close(codec.release)
			t.Fatalf("only %d wraps finished while one member was blocked", i)
		}
	}
	close(codec.release)

	out := <-res
	require.NoError(t, out.err)
	assert.Equal(t, 4, out.report.Wrapped)
	assert.Empty(t, out.report.Failed)
}

func TestInitializeGroupEncryption_SaveFailure(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	alice := newDevice(t, ctrl, "alice", true)

	vault := mocks.NewMockKeyVault(ctrl)
	vault.EXPECT().LoadKeyPair().Return(alice.kp, true, nil).AnyTimes()
	vault.EXPECT().SaveGroupKey(domain.GroupID("g"), gomock.Any()).Return(assert.AnError)
	alice.dir.EXPECT().FetchGroupMembers(gomock.Any(), domain.GroupID("g")).Return([]domain.GroupMember{alice.member()}, nil)
	alice.dir.EXPECT().PushWrappedGroupKeys(gomock.Any(), domain.GroupID("g"), gomock.Any()).Return(nil)

	codec := &gatedCodec{MessageCodec: message.New()}
	mgr := groupkey.New(vault, alice.dir, identity.New(vault, alice.dir, logging.Logger{}), codec, logging.Logger{}, 2)

	report, err := mgr.InitializeGroupEncryption(ctx, "g")
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "published")
	assert.Equal(t, 1, report.Wrapped)

	require.Len(t, codec.sealed, crypto.KeySize)
	assert.Equal(t, make([]byte, crypto.KeySize), codec.sealed, "group key left in memory")
}

func TestGetGroupKey_SoftAbsence(t *testing.T) {
	ctx := context.Background()

	t.Run("never initialized", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		bob := newDevice(t, ctrl, "bob", true)
		bob.dir.EXPECT().FetchWrappedGroupKey(gomock.Any(), domain.GroupID("g")).Return(domain.WrappedGroupKey{}, false, nil).Times(3)

		_, ok, err := bob.manager.GetGroupKey(ctx, "g")
		require.NoError(t, err)
		assert.False(t, ok)

		_, ok, err = bob.manager.EncryptForGroup(ctx, "g", []byte("x"))
		require.NoError(t, err)
		assert.False(t, ok)

		_, ok, err = bob.manager.DecryptFromGroup(ctx, "g", domain.EncryptedMessage{Ciphertext: []byte("c"), Nonce: []byte("n")})
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("no local key pair", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		bob := newDevice(t, ctrl, "bob", false)

		_, ok, err := bob.manager.GetGroupKey(ctx, "g")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("entry wrapped for another key", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		alice := newDevice(t, ctrl, "alice", true)
		bob := newDevice(t, ctrl, "bob", true)
		stale := newDevice(t, ctrl, "bob", true)

		msg, err := message.New().EncryptForUser(alice.kp, stale.kp.Public.Slice(), make([]byte, 32))
		require.NoError(t, err)
		bob.dir.EXPECT().FetchWrappedGroupKey(gomock.Any(), domain.GroupID("g")).
			Return(domain.WrappedGroupKey{EncryptedGroupKey: msg, UserPublicKey: alice.kp.Public.Slice(), KeyID: "e"}, true, nil)

		_, ok, err := bob.manager.GetGroupKey(ctx, "g")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("malformed directory reply", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		bob := newDevice(t, ctrl, "bob", true)
		bad := fmt.Errorf("directory GET /v1/groups/g/keys/self: %w: %w", domain.ErrMalformedResponse, io.ErrUnexpectedEOF)
		bob.dir.EXPECT().FetchWrappedGroupKey(gomock.Any(), domain.GroupID("g")).Return(domain.WrappedGroupKey{}, false, bad)

		_, ok, err := bob.manager.GetGroupKey(ctx, "g")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("transport errors surface", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		bob := newDevice(t, ctrl, "bob", true)
		bob.dir.EXPECT().FetchWrappedGroupKey(gomock.Any(), domain.GroupID("g")).Return(domain.WrappedGroupKey{}, false, assert.AnError)

		_, ok, err := bob.manager.GetGroupKey(ctx, "g")
		assert.ErrorIs(t, err, assert.AnError)
		assert.False(t, ok)
	})
}

func TestGroupMessages(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	alice := newDevice(t, ctrl, "alice", true)
	alice.dir.EXPECT().FetchGroupMembers(gomock.Any(), domain.GroupID("g")).
		Return([]domain.GroupMember{alice.member(), {UserID: "bob"}}, nil).Times(2)
	alice.dir.EXPECT().PushWrappedGroupKeys(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	_, err := alice.manager.InitializeGroupEncryption(ctx, "g")
	require.NoError(t, err)

	msg, ok, err := alice.manager.EncryptForGroup(ctx, "g", []byte("hi all"))
	require.NoError(t, err)
	require.True(t, ok)

	pt, ok, err := alice.manager.DecryptFromGroup(ctx, "g", msg)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("hi all"), pt)

	tampered := msg
	tampered.Nonce = append([]byte(nil), msg.Nonce...)
	tampered.Nonce[0] ^= 0x80
	pt, _, err = alice.manager.DecryptFromGroup(ctx, "g", tampered)
	assert.ErrorIs(t, err, domain.ErrDecryptionFailure)
	assert.Nil(t, pt)

	st, err := alice.manager.Status(ctx, "g")
	require.NoError(t, err)
	assert.Equal(t, 2, st.TotalMembers)
	assert.Equal(t, 1, st.CapableMembers)
	assert.True(t, st.KeyCached)

	require.NoError(t, alice.manager.Forget("g"))
	_, ok, _ = alice.vault.LoadGroupKey("g")
	assert.False(t, ok)
}
