package app

import (
	"net/http"

	"e2ekeys/internal/directory"
	"e2ekeys/internal/domain"
	"e2ekeys/internal/encryption"
	"e2ekeys/internal/logging"
	groupkeysvc "e2ekeys/internal/services/groupkey"
	identitysvc "e2ekeys/internal/services/identity"
	messagesvc "e2ekeys/internal/services/message"
	"e2ekeys/internal/store"
)

// Wire bundles the vault, directory client, services and facade for the CLI.
type Wire struct {
	Vault     *store.FileVault
	HTTP      *directory.HTTPClient
	Directory domain.KeyDirectory
	Identity  *identitysvc.Service
	Messages  *messagesvc.Service
	Groups    *groupkeysvc.Manager
	Facade    *encryption.Facade
	Log       logging.Logger
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config) (*Wire, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := logging.Logger{Verbose: cfg.Verbose, Debug: cfg.Debug}

	vault := store.NewFileVault(cfg.Home, cfg.Passphrase)

	// Ensure an HTTP client is available for outbound calls
	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.HTTPTimeout}
	}
	hc := directory.NewHTTP(cfg.DirectoryURL, domain.UserID(cfg.UserID))
	hc.HTTP = httpClient

	// Retries sit below the cache so a cache hit never waits on backoff.
	var dir domain.KeyDirectory = hc
	if cfg.RetryMaxAttempts > 1 {
		dir = directory.NewRetrying(dir, cfg.RetryMaxAttempts, log)
	}
	if cfg.CacheSize > 0 {
		dir = directory.NewCached(dir, cfg.CacheSize, cfg.CacheTTL)
	}

	ids := identitysvc.New(vault, dir, log)
	codec := messagesvc.New()
	groups := groupkeysvc.New(vault, dir, ids, codec, log, cfg.FanoutConcurrency)

	return &Wire{
		Vault:     vault,
		HTTP:      hc,
		Directory: dir,
		Identity:  ids,
		Messages:  codec,
		Groups:    groups,
		Facade:    encryption.New(ids, groups, codec, dir, vault, log),
		Log:       log,
	}, nil
}
