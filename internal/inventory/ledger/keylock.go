package ledger

import "sync"

// pairLocks serializes ledger operations per (store, variant) pair. The
// read-validate-write-append sequence for one pair must never interleave
// with another operation on the same pair; distinct pairs proceed
// concurrently. Entries are kept for the life of the process; the key
// space is bounded by the store's catalog.
type pairLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newPairLocks() *pairLocks {
	return &pairLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for key and returns its unlock func.
func (p *pairLocks) Lock(key string) func() {
	p.mu.Lock()
	l, ok := p.locks[key]
	if !ok {
		l = &sync.Mutex{}
		p.locks[key] = l
	}
	p.mu.Unlock()

	l.Lock()
	return l.Unlock
}
