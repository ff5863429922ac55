package chat

import "sync"

// keyedMutex serializes work per session key. Entries are reference counted
// and removed once no goroutine holds or waits on them, so idle sessions do
// not accumulate locks.
type keyedMutex struct {
	edit    sync.Mutex
	waiters map[string]int
	mutexes map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{
		waiters: make(map[string]int),
		mutexes: make(map[string]*sync.Mutex),
	}
}

func (m *keyedMutex) Lock(key string) {
	m.edit.Lock()
	lock, ok := m.mutexes[key]
	if !ok {
		lock = &sync.Mutex{}
		m.mutexes[key] = lock
	}
	m.waiters[key]++
	m.edit.Unlock()

	lock.Lock()
}

func (m *keyedMutex) Unlock(key string) {
	m.edit.Lock()
	defer m.edit.Unlock()

	lock, ok := m.mutexes[key]
	if !ok {
		return
	}

	lock.Unlock()
	m.waiters[key]--
	if m.waiters[key] == 0 {
		delete(m.mutexes, key)
		delete(m.waiters, key)
	}
}
