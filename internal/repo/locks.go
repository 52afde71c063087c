package repo

import "sync"

// Locks hands out one mutex per store key.
type Locks struct {
	mu   sync.Mutex
	keys map[string]*sync.Mutex
}

func NewLocks() *Locks {
	return &Locks{keys: make(map[string]*sync.Mutex)}
}

// Lock blocks until key is free and returns the matching unlock func.
func (l *Locks) Lock(key string) func() {
	l.mu.Lock()
	m, ok := l.keys[key]
	if !ok {
		m = &sync.Mutex{}
		l.keys[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
