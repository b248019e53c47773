package store

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"e2ekeys/internal/crypto"
	"e2ekeys/internal/domain"
)

const (
	keyPairFile   = "keypair.json"
	groupKeysFile = "group_keys.json"
	sealedSuffix  = ".enc"
)

// FileVault persists the device key pair and cached group keys under dir.
type FileVault struct {
	dir        string
	passphrase string
	kdf        kdfParams
	mu         sync.Mutex
}

// NewFileVault returns a FileVault rooted at dir. An empty passphrase stores
// plain JSON files with mode 0600.
func NewFileVault(dir, passphrase string) *FileVault {
	return &FileVault{dir: dir, passphrase: passphrase, kdf: defaultKDF}
}

// Dir returns the directory the vault writes to.
func (v *FileVault) Dir() string { return v.dir }

// LoadKeyPair returns the stored key pair, if any.
func (v *FileVault) LoadKeyPair() (domain.KeyPair, bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	var kp domain.KeyPair
	ok, err := v.read(keyPairFile, &kp)
	if err != nil {
		return domain.KeyPair{}, false, fmt.Errorf("load key pair: %w", err)
	}
	return kp, ok, nil
}

// SaveKeyPair replaces the stored key pair.
func (v *FileVault) SaveKeyPair(kp domain.KeyPair) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.write(keyPairFile, kp); err != nil {
		return fmt.Errorf("save key pair: %w", err)
	}
	return nil
}

// ClearKeyPair removes the stored key pair.
func (v *FileVault) ClearKeyPair() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return removeFile(v.path(keyPairFile))
}

// LoadGroupKey returns the cached key for groupID, if any.
func (v *FileVault) LoadGroupKey(groupID domain.GroupID) (domain.GroupKey, bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	m, err := v.groupKeys()
	if err != nil {
		return domain.GroupKey{}, false, err
	}
	gk, ok := m[groupID]
	return gk, ok, nil
}

// SaveGroupKey caches gk under groupID.
func (v *FileVault) SaveGroupKey(groupID domain.GroupID, gk domain.GroupKey) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	m, err := v.groupKeys()
	if err != nil {
		return err
	}
	m[groupID] = gk
	if err := v.write(groupKeysFile, m); err != nil {
		return fmt.Errorf("save group key %s: %w", groupID, err)
	}
	return nil
}

// DeleteGroupKey drops the cached key for groupID.
func (v *FileVault) DeleteGroupKey(groupID domain.GroupID) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	m, err := v.groupKeys()
	if err != nil {
		return err
	}
	if _, ok := m[groupID]; !ok {
		return nil
	}
	delete(m, groupID)
	return v.write(groupKeysFile, m)
}

// ListGroupKeys returns every cached group key ordered by group id.
func (v *FileVault) ListGroupKeys() ([]domain.GroupKey, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	m, err := v.groupKeys()
	if err != nil {
		return nil, err
	}
	out := make([]domain.GroupKey, 0, len(m))
	for _, gk := range m {
		out = append(out, gk)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GroupID < out[j].GroupID })
	return out, nil
}

func (v *FileVault) groupKeys() (map[domain.GroupID]domain.GroupKey, error) {
	m := map[domain.GroupID]domain.GroupKey{}
	if _, err := v.read(groupKeysFile, &m); err != nil {
		return nil, fmt.Errorf("load group keys: %w", err)
	}
	return m, nil
}

func (v *FileVault) path(name string) string {
	if v.passphrase != "" {
		name += sealedSuffix
	}
	return filepath.Join(v.dir, name)
}

// read decodes the named file into out and reports whether it existed.
func (v *FileVault) read(name string, out any) (bool, error) {
	b, err := readFile(v.path(name))
	if err != nil || b == nil {
		return false, err
	}
	if v.passphrase != "" {
		pt, err := open(v.passphrase, b)
		if err != nil {
			return false, err
		}
		defer crypto.Wipe(pt)
		b = pt
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, err
	}
	return true, nil
}

func (v *FileVault) write(name string, val any) error {
	raw, err := json.MarshalIndent(val, "", "  ")
	if err != nil {
		return err
	}
	defer crypto.Wipe(raw)

	out := raw
	if v.passphrase != "" {
		if out, err = seal(v.passphrase, raw, v.kdf); err != nil {
			return err
		}
	}
	return writeFile(v.path(name), out, 0o600)
}

// Compile-time assertion that FileVault implements domain.KeyVault.
var _ domain.KeyVault = (*FileVault)(nil)
