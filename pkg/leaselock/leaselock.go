package leaselock

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/osint-hub/backend/internal/util"
	"github.com/osint-hub/backend/pkg/logger"
)

var (
	ErrBusy = errors.New("lease lock busy")
	ErrLost = errors.New("lease lock lost")
)

const (
	defaultTTL          = 5 * time.Minute
	defaultWaitInterval = 250 * time.Millisecond
	renewTries          = 3
	renewTimeout        = 15 * time.Second
)

// DBConn is the part of a pgx pool the lock needs.
type DBConn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Client hands out leases stored in the app_locks table. A lease expires
// unless its holder keeps renewing it, so a crashed worker never blocks a
// document for longer than one TTL.
type Client struct {
	db DBConn
}

func New(db DBConn) *Client {
	return &Client{db: db}
}

// DocumentKey is the lease key guarding text extraction of one document.
func DocumentKey(documentID string) string {
	return "document:" + documentID
}

// Options tune a single acquisition. The zero value takes a five minute
// lease and fails with ErrBusy when the key is held.
type Options struct {
	TTL        time.Duration
	RenewEvery time.Duration

	// Wait polls until the key frees up or ctx ends.
	Wait         bool
	WaitInterval time.Duration
	WaitJitter   time.Duration

	// TokenPrefix marks the holder in app_locks.locked_by.
	TokenPrefix string
}

func (o Options) withDefaults() Options {
	if o.TTL <= 0 {
		o.TTL = defaultTTL
	}
	if o.RenewEvery <= 0 || o.RenewEvery >= o.TTL {
		o.RenewEvery = max(o.TTL/2, time.Second)
	}
	if o.WaitInterval <= 0 {
		o.WaitInterval = defaultWaitInterval
	}
	o.WaitJitter = max(o.WaitJitter, 0)
	return o
}

// Lease is a held key. Context is cancelled once the lease is released or
// can no longer be renewed; context.Cause then reports ErrLost.
type Lease struct {
	Key     string
	Token   string
	Context context.Context

	client *Client
	ttlMs  int64
	cancel context.CancelCauseFunc
	done   chan struct{}
	once   sync.Once
}

// WithLease runs fn while holding key. fn receives a context that is
// cancelled when the lease is lost, in which case ErrLost is returned
// alongside fn's own error.
func (c *Client) WithLease(ctx context.Context, key string, opts Options, fn func(ctx context.Context) error) error {
	lease, err := c.Acquire(ctx, key, opts)
	if err != nil {
		return err
	}

	err = fn(lease.Context)
	lost := errors.Is(context.Cause(lease.Context), ErrLost)

	if releaseErr := lease.Release(context.Background()); releaseErr != nil {
		logger.Warn("[Lease] Failed to release lease", "key", key, "err", releaseErr)
	}
	if lost {
		return errors.Join(err, ErrLost)
	}
	return err
}

// Acquire takes key, polling while it is held when opts.Wait is set.
func (c *Client) Acquire(ctx context.Context, key string, opts Options) (*Lease, error) {
	if key == "" {
		return nil, errors.New("lease lock key is empty")
	}
	opts = opts.withDefaults()

	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("lease token: %w", err)
	}
	lease := &Lease{
		Key:    key,
		Token:  opts.TokenPrefix + id,
		client: c,
		ttlMs:  opts.TTL.Milliseconds(),
		done:   make(chan struct{}),
	}

	for {
		ok, err := lease.claim(ctx, tryAcquireSQL)
		if err != nil {
			return nil, err
		}
		if ok {
			break
		}
		if !opts.Wait {
			return nil, ErrBusy
		}
		if err := sleepWithJitter(ctx, opts.WaitInterval, opts.WaitJitter); err != nil {
			return nil, err
		}
	}

	lease.Context, lease.cancel = context.WithCancelCause(ctx)
	go lease.keepAlive(opts.RenewEvery)
	return lease, nil
}

// claim runs an acquire or renew statement and reports whether the row is
// now held by this lease.
func (l *Lease) claim(ctx context.Context, sql string) (bool, error) {
	var key string
	err := l.client.db.QueryRow(ctx, sql, l.Key, l.Token, l.ttlMs).Scan(&key)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return key != "", nil
}

// Release stops renewal and frees the key. It is safe to call twice.
func (l *Lease) Release(ctx context.Context) error {
	l.once.Do(func() {
		close(l.done)
		l.cancel(context.Canceled)
	})

	_, err := l.client.db.Exec(ctx, releaseSQL, l.Key, l.Token)
	return err
}

func (l *Lease) keepAlive(every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()

	for {
		select {
		case <-l.done:
			return
		case <-l.Context.Done():
			return
		case <-t.C:
			if err := l.renew(); err != nil {
				logger.Warn("[Lease] Lease lost", "key", l.Key, "err", err)
				l.cancel(fmt.Errorf("%w: %w", ErrLost, err))
				return
			}
		}
	}
}

func (l *Lease) renew() error {
	return util.RetryErrWithContext(l.Context, renewTries, 200*time.Millisecond, func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, renewTimeout)
		defer cancel()

		held, err := l.claim(ctx, renewSQL)
		if err != nil {
			return err
		}
		if !held {
			return ErrLost
		}
		return nil
	})
}

func sleepWithJitter(ctx context.Context, base, jitter time.Duration) error {
	d := base
	if jitter > 0 {
		d += time.Duration(rand.Int64N(int64(jitter) + 1))
	}
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

const tryAcquireSQL = `
INSERT INTO app_locks (lock_key, locked_by, expires_at)
VALUES ($1, $2, now() + ($3::bigint * interval '1 millisecond'))
ON CONFLICT (lock_key) DO UPDATE
SET locked_by  = EXCLUDED.locked_by,
    expires_at = EXCLUDED.expires_at
WHERE app_locks.expires_at < now()
   OR app_locks.locked_by = EXCLUDED.locked_by
RETURNING lock_key;
`

const renewSQL = `
UPDATE app_locks
SET expires_at = now() + ($3::bigint * interval '1 millisecond')
WHERE lock_key = $1 AND locked_by = $2
RETURNING lock_key;
`

const releaseSQL = `
DELETE FROM app_locks
WHERE lock_key = $1 AND locked_by = $2;
`
