package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestMemory(t *testing.T) (*Memory, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	m := NewMemory(time.Hour)
	m.now = clock.Now
	t.Cleanup(func() { _ = m.Close() })
	return m, clock
}

func TestMemory_GetPutExpire(t *testing.T) {
	ctx := context.Background()
	m, clock := newTestMemory(t)

	_, ok, err := m.Get(ctx, "profile:u1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Put(ctx, "profile:u1", []byte("v1"), time.Minute))
	v, ok, err := m.Get(ctx, "profile:u1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v1"), v)

	clock.Advance(59 * time.Second)
	_, ok, _ = m.Get(ctx, "profile:u1")
	assert.True(t, ok)

	clock.Advance(time.Second)
	_, ok, _ = m.Get(ctx, "profile:u1")
	assert.False(t, ok, "entry must expire at its ttl")
}

func TestMemory_DeleteAndNonPositiveTTL(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestMemory(t)

	require.NoError(t, m.Put(ctx, "k", []byte("v"), time.Minute))
	require.NoError(t, m.Delete(ctx, "k"))
	_, ok, _ := m.Get(ctx, "k")
	assert.False(t, ok)

	require.NoError(t, m.Put(ctx, "k", []byte("v"), time.Minute))
	require.NoError(t, m.Put(ctx, "k", []byte("v"), 0))
	_, ok, _ = m.Get(ctx, "k")
	assert.False(t, ok)
}

func TestMemory_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestMemory(t)

	src := []byte("abc")
	require.NoError(t, m.Put(ctx, "k", src, time.Minute))
	src[0] = 'x'

	v, _, _ := m.Get(ctx, "k")
	assert.Equal(t, []byte("abc"), v)
	v[1] = 'y'
	v2, _, _ := m.Get(ctx, "k")
	assert.Equal(t, []byte("abc"), v2)
}

func TestMemory_SweepRemovesExpired(t *testing.T) {
	ctx := context.Background()
	m, clock := newTestMemory(t)

	require.NoError(t, m.Put(ctx, "short", []byte("1"), time.Second))
	require.NoError(t, m.Put(ctx, "long", []byte("2"), time.Hour))
	clock.Advance(time.Minute)
	m.sweep()

	m.mu.Lock()
	_, short := m.entries["short"]
	_, long := m.entries["long"]
	m.mu.Unlock()
	assert.False(t, short)
	assert.True(t, long)
}

func TestMemory_CloseStopsJanitor(t *testing.T) {
	m := NewMemory(time.Millisecond)
	require.NoError(t, m.Close())
	require.NoError(t, m.Close())

	_, _, err := m.Get(context.Background(), "k")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, m.Put(context.Background(), "k", nil, time.Second), ErrClosed)
}
