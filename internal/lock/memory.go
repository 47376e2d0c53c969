package lock

import (
	"context"
	"sync"
)

type keyLock struct {
	ch   chan struct{}
	refs int
}

// Memory is a keyed mutex for a single process. Idle keys are dropped so
// the map does not grow with the user base.
type Memory struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

func NewMemory() *Memory {
	return &Memory{locks: make(map[string]*keyLock)}
}

func (m *Memory) Lock(ctx context.Context, key string) (func(), error) {
	m.mu.Lock()
	kl, ok := m.locks[key]
	if !ok {
		kl = &keyLock{ch: make(chan struct{}, 1)}
		m.locks[key] = kl
	}
	kl.refs++
	m.mu.Unlock()

	select {
	case kl.ch <- struct{}{}:
	case <-ctx.Done():
		m.release(key, kl)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-kl.ch
			m.release(key, kl)
		})
	}, nil
}

func (m *Memory) release(key string, kl *keyLock) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kl.refs--
	if kl.refs == 0 {
		delete(m.locks, key)
	}
}

// size is the number of keys currently held or waited on.
func (m *Memory) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.locks)
}
