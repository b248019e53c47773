package directory

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"e2ekeys/internal/domain"
	"e2ekeys/internal/logging"
)

// Retrying retries transient directory failures.
//
// Transport errors and 5xx responses are retried up to MaxAttempts times in
// total. Soft absence, conflicts and other 4xx responses are returned at once.
type Retrying struct {
	domain.KeyDirectory
	MaxAttempts int
	Initial     time.Duration
	Log         logging.Logger
}

// NewRetrying wraps next. maxAttempts below 2 disables retries.
func NewRetrying(next domain.KeyDirectory, maxAttempts int, log logging.Logger) *Retrying {
	return &Retrying{KeyDirectory: next, MaxAttempts: maxAttempts, Initial: 200 * time.Millisecond, Log: log}
}

func (r *Retrying) RegisterPublicKey(ctx context.Context, pub []byte) (id domain.KeyID, err error) {
	err = r.retry(ctx, "register", func() (e error) {
		id, e = r.KeyDirectory.RegisterPublicKey(ctx, pub)
		return e
	})
	return id, err
}

func (r *Retrying) RotatePublicKey(ctx context.Context, pub []byte) (id domain.KeyID, err error) {
	err = r.retry(ctx, "rotate", func() (e error) {
		id, e = r.KeyDirectory.RotatePublicKey(ctx, pub)
		return e
	})
	return id, err
}

func (r *Retrying) FetchPublicKey(ctx context.Context, userID domain.UserID) (rec domain.PublicKeyRecord, ok bool, err error) {
	err = r.retry(ctx, "fetch key", func() (e error) {
		rec, ok, e = r.KeyDirectory.FetchPublicKey(ctx, userID)
		return e
	})
	return rec, ok, err
}

func (r *Retrying) FetchGroupMembers(ctx context.Context, groupID domain.GroupID) (ms []domain.GroupMember, err error) {
	err = r.retry(ctx, "fetch members", func() (e error) {
		ms, e = r.KeyDirectory.FetchGroupMembers(ctx, groupID)
		return e
	})
	return ms, err
}

func (r *Retrying) FetchWrappedGroupKey(ctx context.Context, groupID domain.GroupID) (wk domain.WrappedGroupKey, ok bool, err error) {
	err = r.retry(ctx, "fetch wrapped key", func() (e error) {
		wk, ok, e = r.KeyDirectory.FetchWrappedGroupKey(ctx, groupID)
		return e
	})
	return wk, ok, err
}

// PushWrappedGroupKeys is safe to retry since publishing replaces the bundle.
func (r *Retrying) PushWrappedGroupKeys(ctx context.Context, groupID domain.GroupID, entries []domain.WrappedGroupKeyEntry) error {
	return r.retry(ctx, "publish", func() error {
		return r.KeyDirectory.PushWrappedGroupKeys(ctx, groupID, entries)
	})
}

func (r *Retrying) retry(ctx context.Context, op string, fn func() error) error {
	if r.MaxAttempts < 2 {
		return fn()
	}
	eb := backoff.NewExponentialBackOff()
	if r.Initial > 0 {
		eb.InitialInterval = r.Initial
	}
	b := backoff.WithContext(backoff.WithMaxRetries(eb, uint64(r.MaxAttempts-1)), ctx)

	return backoff.RetryNotify(
		func() error {
			err := fn()
			if err != nil && !retryable(err) {
				return backoff.Permanent(err)
			}
			return err
		},
		b,
		func(err error, d time.Duration) {
			r.Log.Warnf("directory %s failed, retrying in %s: %v", op, d, err)
		},
	)
}

func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code >= http.StatusInternalServerError
	}
	if errors.Is(err, domain.ErrConflict) || errors.Is(err, domain.ErrMalformedResponse) {
		return false
	}
	// Anything else from the client is a transport failure.
	return true
}

var _ domain.KeyDirectory = (*Retrying)(nil)
