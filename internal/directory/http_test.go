package directory_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"e2ekeys/internal/directory"
	"e2ekeys/internal/directoryserver"
	"e2ekeys/internal/domain"
	"e2ekeys/internal/logging"
)

func newDirectory(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(directoryserver.New(directoryserver.NewMemoryStore(), logging.Logger{}).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPClient_RegisterAndFetch(t *testing.T) {
	ctx := context.Background()
	srv := newDirectory(t)
	alice := directory.NewHTTP(srv.URL, "alice")
	bob := directory.NewHTTP(srv.URL, "bob")
	key := bytes.Repeat([]byte{1}, 32)

	_, ok, err := bob.FetchPublicKey(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, ok, "never-registered user is absent, not an error")

	id, err := alice.RegisterPublicKey(ctx, key)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	_, err = alice.RegisterPublicKey(ctx, key)
	assert.ErrorIs(t, err, domain.ErrConflict)

	rec, ok, err := bob.FetchPublicKey(ctx, "alice")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, domain.UserID("alice"), rec.UserID)
	assert.Equal(t, key, rec.PublicKey)
	assert.Equal(t, id, rec.KeyID)

	newKey := bytes.Repeat([]byte{2}, 32)
	rotated, err := alice.RotatePublicKey(ctx, newKey)
	require.NoError(t, err)
	assert.NotEqual(t, id, rotated)
	rec, _, err = bob.FetchPublicKey(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, newKey, rec.PublicKey)
}

func TestHTTPClient_Groups(t *testing.T) {
	ctx := context.Background()
	srv := newDirectory(t)
	alice := directory.NewHTTP(srv.URL, "alice")
	bob := directory.NewHTTP(srv.URL, "bob")

	aliceKey := bytes.Repeat([]byte{1}, 32)
	_, err := alice.RegisterPublicKey(ctx, aliceKey)
	require.NoError(t, err)
	require.NoError(t, alice.AddGroupMember(ctx, "g", "alice", "Alice"))
	require.NoError(t, alice.AddGroupMember(ctx, "g", "bob", "Bob"))

	ms, err := bob.FetchGroupMembers(ctx, "g")
	require.NoError(t, err)
	require.Len(t, ms, 2)
	assert.True(t, ms[0].HasKey())
	assert.False(t, ms[1].HasKey(), "unkeyed members are reported, not dropped")

	_, ok, err := bob.FetchWrappedGroupKey(ctx, "g")
	require.NoError(t, err)
	assert.False(t, ok)

	entry := domain.WrappedGroupKeyEntry{
		UserID:            "bob",
		KeyID:             "epoch",
		EncryptedGroupKey: domain.EncryptedMessage{Ciphertext: []byte("ct"), Nonce: []byte("nonce")},
	}
	require.NoError(t, alice.PushWrappedGroupKeys(ctx, "g", []domain.WrappedGroupKeyEntry{entry}))

	wk, ok, err := bob.FetchWrappedGroupKey(ctx, "g")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, aliceKey, wk.UserPublicKey)
	assert.Equal(t, domain.KeyID("epoch"), wk.KeyID)
	assert.Equal(t, []byte("ct"), wk.EncryptedGroupKey.Ciphertext)
}

func TestHTTPClient_StatusMapping(t *testing.T) {
	ctx := context.Background()
	code := http.StatusInternalServerError
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "carol", r.Header.Get(directory.HeaderUserID))
		w.WriteHeader(code)
	}))
	defer srv.Close()
	c := directory.NewHTTP(srv.URL, "carol")

	_, _, err := c.FetchPublicKey(ctx, "x")
	var se *directory.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusInternalServerError, se.Code)
	assert.Equal(t, http.MethodGet, se.Method)

	code = http.StatusBadRequest
	_, ok, err := c.FetchWrappedGroupKey(ctx, "g")
	assert.NoError(t, err, "400 on the wrapped key route means not available")
	assert.False(t, ok)

	_, err = c.RegisterPublicKey(ctx, make([]byte, 32))
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, _, err = c.FetchPublicKey(ctx, "x")
	assert.False(t, errors.Is(err, domain.ErrConflict))
	require.Error(t, err)
}

func TestHTTPClient_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"encryptedGroupKey":{"ciphertext":"`))
	}))
	defer srv.Close()
	c := directory.NewHTTP(srv.URL, "bob")

	_, ok, err := c.FetchWrappedGroupKey(context.Background(), "g")
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
	assert.False(t, ok)
}
