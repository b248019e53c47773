package app_test

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"e2ekeys/internal/app"
	"e2ekeys/internal/directory"
	"e2ekeys/internal/directoryserver"
	"e2ekeys/internal/logging"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), app.ConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(`
directory_url = "http://dir.example:9000"
user_id = "alice"
http_timeout = "3s"
cache_ttl = "1m"
retry_max_attempts = 4
`), 0o600))

	cfg := app.DefaultConfig()
	require.NoError(t, app.LoadConfig(path, &cfg))
	assert.Equal(t, "http://dir.example:9000", cfg.DirectoryURL)
	assert.Equal(t, "alice", cfg.UserID)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.Equal(t, 4, cfg.RetryMaxAttempts)
	assert.Equal(t, 8, cfg.FanoutConcurrency, "defaults survive")
	require.NoError(t, cfg.Validate())

	missing := app.DefaultConfig()
	require.NoError(t, app.LoadConfig(filepath.Join(t.TempDir(), "nope.toml"), &missing))
	assert.Error(t, missing.Validate(), "user_id is required")
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", app.ConfigFile)
	cfg := app.DefaultConfig()
	cfg.UserID = "bob"
	cfg.Passphrase = "never written"
	require.NoError(t, app.SaveConfig(path, cfg))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "never written")

	var back app.Config
	require.NoError(t, app.LoadConfig(path, &back))
	assert.Equal(t, cfg.UserID, back.UserID)
	assert.Equal(t, cfg.DirectoryURL, back.DirectoryURL)
	assert.Equal(t, cfg.FanoutConcurrency, back.FanoutConcurrency)
}

func TestNewWire(t *testing.T) {
	srv := httptest.NewServer(directoryserver.New(directoryserver.NewMemoryStore(), logging.Logger{}).Handler())
	defer srv.Close()

	cfg := app.DefaultConfig()
	cfg.Home = t.TempDir()
	cfg.DirectoryURL = srv.URL
	cfg.UserID = "alice"
	cfg.RetryMaxAttempts = 3

	w, err := app.NewWire(cfg)
	require.NoError(t, err)
	assert.IsType(t, &directory.Cached{}, w.Directory)

	ctx := context.Background()
	id1, err := w.Facade.RegisterKeyPair(ctx)
	require.NoError(t, err)
	id2, err := w.Facade.RegisterKeyPair(ctx)
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	rec, ok, err := w.Facade.LookupPublicKey(ctx, "alice")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, id1, rec.KeyID)

	cfg.UserID = ""
	_, err = app.NewWire(cfg)
	assert.Error(t, err)
}
