package leaselock

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	key string
	err error
}

func (r row) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*string)) = r.key
	return nil
}

// memLocks emulates the app_locks statements without expiry.
type memLocks struct {
	mu    sync.Mutex
	held  map[string]string
	fail  error
	calls int
}

func newMemLocks() *memLocks {
	return &memLocks{held: map[string]string{}}
}

func (m *memLocks) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.fail != nil {
		return row{err: m.fail}
	}
	key, token := args[0].(string), args[1].(string)
	switch sql {
	case tryAcquireSQL:
		if holder, ok := m.held[key]; ok && holder != token {
			return row{err: pgx.ErrNoRows}
		}
		m.held[key] = token
		return row{key: key}
	case renewSQL:
		if m.held[key] != token {
			return row{err: pgx.ErrNoRows}
		}
		return row{key: key}
	}
	return row{err: errors.New("unexpected statement")}
}

func (m *memLocks) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key, token := args[0].(string), args[1].(string)
	if sql == releaseSQL && m.held[key] == token {
		delete(m.held, key)
		return pgconn.NewCommandTag("DELETE 1"), nil
	}
	return pgconn.NewCommandTag("DELETE 0"), nil
}

func TestDocumentKey(t *testing.T) {
	assert.Equal(t, "document:abc", DocumentKey("abc"))
}

func TestAcquireBusyAndRelease(t *testing.T) {
	db := newMemLocks()
	c := New(db)
	ctx := context.Background()

	lease, err := c.Acquire(ctx, "document:1", Options{TTL: time.Minute})
	require.NoError(t, err)

	_, err = c.Acquire(ctx, "document:1", Options{TTL: time.Minute})
	assert.ErrorIs(t, err, ErrBusy)

	require.NoError(t, lease.Release(ctx))
	assert.Error(t, lease.Context.Err())

	again, err := c.Acquire(ctx, "document:1", Options{TTL: time.Minute})
	require.NoError(t, err)
	require.NoError(t, again.Release(ctx))
}

func TestWithLease(t *testing.T) {
	db := newMemLocks()
	c := New(db)

	ran := false
	err := c.WithLease(context.Background(), "document:2", Options{}, func(ctx context.Context) error {
		ran = true
		assert.NoError(t, ctx.Err())
		return nil
	})
	require.NoError(t, err)
	assert.True(t, ran)
	assert.Empty(t, db.held)
}

func TestWithLease_PropagatesError(t *testing.T) {
	c := New(newMemLocks())
	boom := errors.New("boom")
	err := c.WithLease(context.Background(), "document:3", Options{}, func(context.Context) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestAcquire_EmptyKey(t *testing.T) {
	_, err := New(newMemLocks()).Acquire(context.Background(), "", Options{})
	assert.Error(t, err)
}

func TestAcquire_DBError(t *testing.T) {
	db := newMemLocks()
	db.fail = errors.New("connection refused")
	_, err := New(db).Acquire(context.Background(), "document:4", Options{})
	assert.ErrorContains(t, err, "connection refused")
}

func TestAcquire_WaitHonoursContext(t *testing.T) {
	db := newMemLocks()
	c := New(db)
	held, err := c.Acquire(context.Background(), "document:5", Options{})
	require.NoError(t, err)
	defer held.Release(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = c.Acquire(ctx, "document:5", Options{Wait: true, WaitInterval: 10 * time.Millisecond})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestOptionsDefaults(t *testing.T) {
	o := Options{}.withDefaults()
	assert.Equal(t, 5*time.Minute, o.TTL)
	assert.Equal(t, 150*time.Second, o.RenewEvery)
	assert.Equal(t, 250*time.Millisecond, o.WaitInterval)

	o = Options{TTL: 10 * time.Second, RenewEvery: time.Minute}.withDefaults()
	assert.Equal(t, 5*time.Second, o.RenewEvery)
}

func TestWithLease_ReportsLostLease(t *testing.T) {
	db := newMemLocks()
	c := New(db)

	err := c.WithLease(context.Background(), "document:6", Options{TTL: 2 * time.Second, RenewEvery: time.Second}, func(ctx context.Context) error {
		// Another holder takes over the row.
		db.mu.Lock()
		db.held["document:6"] = "someone-else"
		db.mu.Unlock()

		<-ctx.Done()
		return ctx.Err()
	})
	assert.ErrorIs(t, err, ErrLost)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "someone-else", db.held["document:6"])
}
