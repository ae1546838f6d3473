package services

import (
	"sync"
)

// idLocker serializes lifecycle transitions per submission id so concurrent
// approve/disapprove calls for the same submission run one at a time.
// Entries are refcounted and removed once the last holder unlocks.
type idLocker struct {
	mu    sync.Mutex
	locks map[uint64]*idLock
}

type idLock struct {
	mu   sync.Mutex
	refs int
}

func newIDLocker() *idLocker {
	return &idLocker{locks: make(map[uint64]*idLock)}
}

func (l *idLocker) lock(id uint64) {
	l.mu.Lock()
	entry, ok := l.locks[id]
	if !ok {
		entry = &idLock{}
		l.locks[id] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
}

func (l *idLocker) unlock(id uint64) {
	l.mu.Lock()
	entry := l.locks[id]
	entry.refs--
	if entry.refs == 0 {
		delete(l.locks, id)
	}
	l.mu.Unlock()

	entry.mu.Unlock()
}
