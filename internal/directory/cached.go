package directory

import (
	"context"
	"time"

	"github.com/bluele/gcache"

	"e2ekeys/internal/domain"
)

// Cached serves public key records from an in-memory LRU.
//
// Only positive lookups are cached, so a user who registers later is seen
// on the next fetch.
type Cached struct {
	domain.KeyDirectory
	records gcache.Cache
}

// NewCached wraps next with an LRU of size entries, each kept for ttl
// (forever when ttl is zero).
func NewCached(next domain.KeyDirectory, size int, ttl time.Duration) *Cached {
	if size <= 0 {
		size = 256
	}
	b := gcache.New(size).LRU()
	if ttl > 0 {
		b = b.Expiration(ttl)
	}
	return &Cached{KeyDirectory: next, records: b.Build()}
}

// FetchPublicKey implements domain.KeyDirectory.
func (c *Cached) FetchPublicKey(ctx context.Context, userID domain.UserID) (domain.PublicKeyRecord, bool, error) {
	if v, err := c.records.Get(userID); err == nil {
		return v.(domain.PublicKeyRecord), true, nil
	}
	rec, ok, err := c.KeyDirectory.FetchPublicKey(ctx, userID)
	if err != nil || !ok {
		return rec, ok, err
	}
	_ = c.records.Set(userID, rec)
	return rec, true, nil
}

// RegisterPublicKey implements domain.KeyDirectory and drops the caller's
// cached record.
func (c *Cached) RegisterPublicKey(ctx context.Context, pub []byte) (domain.KeyID, error) {
	defer c.records.Remove(c.Self())
	return c.KeyDirectory.RegisterPublicKey(ctx, pub)
}

// RotatePublicKey implements domain.KeyDirectory and drops the caller's
// cached record.
func (c *Cached) RotatePublicKey(ctx context.Context, pub []byte) (domain.KeyID, error) {
	defer c.records.Remove(c.Self())
	return c.KeyDirectory.RotatePublicKey(ctx, pub)
}

// Invalidate forgets the cached record of userID.
func (c *Cached) Invalidate(userID domain.UserID) { c.records.Remove(userID) }

var _ domain.KeyDirectory = (*Cached)(nil)
