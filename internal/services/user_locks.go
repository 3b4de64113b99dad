package services

import "sync"

// userLocks serializes ledger writes per user. Entries are reference counted and
// dropped once no goroutine holds or waits for them.
type userLocks struct {
	mu    sync.Mutex
	locks map[uint]*userLock
}

type userLock struct {
	mu      sync.Mutex
	waiters int
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[uint]*userLock)}
}

func (locks *userLocks) Lock(userID uint) func() {
	locks.mu.Lock()
	entry, ok := locks.locks[userID]
	if !ok {
		entry = &userLock{}
		locks.locks[userID] = entry
	}
	entry.waiters++
	locks.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()

		locks.mu.Lock()
		entry.waiters--
		if entry.waiters == 0 {
			delete(locks.locks, userID)
		}
		locks.mu.Unlock()
	}
}
