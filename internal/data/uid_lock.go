package data

import "sync"

// uidLocker hands out one mutex per UID and forgets it once no writer holds it.
type uidLocker struct {
	mu    sync.Mutex
	locks map[string]*uidLock
}

type uidLock struct {
	mu   sync.Mutex
	refs int
}

func newUIDLocker() *uidLocker {
	return &uidLocker{locks: make(map[string]*uidLock)}
}

// lock blocks until the caller owns uid and returns the release func.
func (l *uidLocker) lock(uid string) func() {
	l.mu.Lock()
	entry, ok := l.locks[uid]
	if !ok {
		entry = &uidLock{}
		l.locks[uid] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, uid)
		}
		l.mu.Unlock()
	}
}

func (l *uidLocker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
