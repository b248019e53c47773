package identity

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"e2ekeys/internal/crypto"
	"e2ekeys/internal/domain"
	"e2ekeys/internal/logging"
)

const generateKey = "generate"

// Service manages the device key pair using a vault and the key directory.
//
// mu serialises every operation that writes the key pair or talks to the
// directory about it. Concurrent EnsureKeyPair callers share one generation.
type Service struct {
	vault  domain.KeyVault
	dir    domain.KeyDirectory
	log    logging.Logger
	mu     sync.Mutex
	flight singleflight.Group
}

// New returns an identity service.
func New(vault domain.KeyVault, dir domain.KeyDirectory, log logging.Logger) *Service {
	return &Service{vault: vault, dir: dir, log: log}
}

// EnsureKeyPair returns the stored key pair, creating and registering one
// if the device has none.
func (s *Service) EnsureKeyPair(ctx context.Context) (domain.KeyPair, error) {
	kp, ok, err := s.vault.LoadKeyPair()
	if err != nil || ok {
		return kp, err
	}
	v, err, shared := s.flight.Do(generateKey, func() (any, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		// Another operation may have stored a key pair since the load above.
		if kp, ok, err := s.vault.LoadKeyPair(); err != nil || ok {
			return kp, err
		}
		return s.generate(ctx, false)
	})
	if shared {
		s.log.Debugf("joined in-flight key pair generation")
	}
	if err != nil {
		return domain.KeyPair{}, err
	}
	return v.(domain.KeyPair), nil
}

// CurrentKeyPair returns the stored key pair without creating one.
func (s *Service) CurrentKeyPair() (domain.KeyPair, bool, error) {
	return s.vault.LoadKeyPair()
}

// Register (re-)registers the stored public key and returns its key id.
func (s *Service) Register(ctx context.Context) (domain.KeyID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kp, ok, err := s.vault.LoadKeyPair()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", domain.ErrNoKeyPair
	}
	id, err := s.register(ctx, kp.Public.Slice())
	if err != nil {
		return "", err
	}
	if id != kp.KeyID {
		s.log.Infof("directory key id changed from %q to %s", kp.KeyID, id)
		kp.KeyID = id
		if err := s.vault.SaveKeyPair(kp); err != nil {
			return "", err
		}
	}
	return id, nil
}

// Regenerate replaces the device key pair, locally and in the directory.
// Messages sealed to the previous key can no longer be opened.
func (s *Service) Regenerate(ctx context.Context) (domain.KeyPair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generate(ctx, true)
}

// Fingerprint returns a short fingerprint of the stored public key.
func (s *Service) Fingerprint() (domain.Fingerprint, error) {
	kp, ok, err := s.vault.LoadKeyPair()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", domain.ErrNoKeyPair
	}
	return crypto.Fingerprint(kp.Public.Slice()), nil
}

// Clear removes the stored key pair. The directory record is left in place.
func (s *Service) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vault.ClearKeyPair()
}

func (s *Service) generate(ctx context.Context, rotate bool) (domain.KeyPair, error) {
	priv, pub, err := crypto.GenerateKeyPair()
	if err != nil {
		return domain.KeyPair{}, err
	}

	var id domain.KeyID
	if rotate {
		id, err = s.dir.RotatePublicKey(ctx, pub.Slice())
	} else {
		id, err = s.register(ctx, pub.Slice())
	}
	if err != nil {
		crypto.Wipe(priv[:])
		return domain.KeyPair{}, err
	}

	kp := domain.KeyPair{Public: pub, Private: priv, KeyID: id}
	if err := s.vault.SaveKeyPair(kp); err != nil {
		return domain.KeyPair{}, err
	}
	s.log.Infof("key pair %s ready (fingerprint %s)", id, crypto.Fingerprint(pub.Slice()))
	return kp, nil
}

// register publishes pub, recovering the existing key id on conflict.
func (s *Service) register(ctx context.Context, pub []byte) (domain.KeyID, error) {
	id, err := s.dir.RegisterPublicKey(ctx, pub)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, domain.ErrConflict) {
		return "", fmt.Errorf("register public key: %w", err)
	}

	s.log.Debugf("key already registered for %s, fetching existing record", s.dir.Self())
	rec, ok, err := s.dir.FetchPublicKey(ctx, s.dir.Self())
	if err != nil {
		return "", fmt.Errorf("register public key: fetch existing: %w", err)
	}
	if !ok {
		return "", fmt.Errorf("register public key: %w, but no record for %s", domain.ErrConflict, s.dir.Self())
	}
	if !bytes.Equal(rec.PublicKey, pub) {
		return "", fmt.Errorf("%w: directory holds key %s for %s", domain.ErrKeyOutOfSync, rec.KeyID, s.dir.Self())
	}
	return rec.KeyID, nil
}

// Compile-time assertion that Service implements domain.IdentityService.
var _ domain.IdentityService = (*Service)(nil)
