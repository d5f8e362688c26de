package engine

import "sync"

// sessionLocks serializes turns per session id. Two rapid submissions from
// one user are processed in order; turns for distinct sessions never block
// each other. Entries are kept for the lifetime of the process — the map is
// bounded by the number of distinct users seen.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{locks: make(map[string]*sync.Mutex)}
}

// acquire locks the mutex for id, creating it on first use, and returns the
// matching unlock function.
func (l *sessionLocks) acquire(id string) func() {
	l.mu.Lock()
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
