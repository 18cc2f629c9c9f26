// Package lock provides fail-fast mutual exclusion for draws.
package lock

import (
	"context"
	"errors"
	"sync"
)

// ErrLocked is returned when the key is already held.
var ErrLocked = errors.New("lock: already held")

// Unlock releases a held key.
type Unlock func(ctx context.Context) error

// Locker acquires a key without waiting.
type Locker interface {
	TryLock(ctx context.Context, key string) (Unlock, error)
}

// LocalLocker serialises holders within one process.
type LocalLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewLocalLocker creates a new LocalLocker
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{locks: make(map[string]*sync.Mutex)}
}

func (l *LocalLocker) TryLock(_ context.Context, key string) (Unlock, error) {
	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	if !m.TryLock() {
		return nil, ErrLocked
	}
	var once sync.Once
	return func(context.Context) error {
		once.Do(m.Unlock)
		return nil
	}, nil
}
