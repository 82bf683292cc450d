package internal

import (
	"sync"
	"sync/atomic"
)

// reentrantMutex lets the goroutine holding it lock it again, so effects can
// write signals and read memos of the runtime that is running them.
type reentrantMutex struct {
	mu    sync.Mutex
	owner atomic.Int64
	depth int
}

func (m *reentrantMutex) Lock() {
	gid := getGID()
	if m.owner.Load() == gid {
		m.depth++
		return
	}

	m.mu.Lock()
	m.owner.Store(gid)
	m.depth = 1
}

func (m *reentrantMutex) Unlock() {
	m.depth--
	if m.depth == 0 {
		m.owner.Store(0)
		m.mu.Unlock()
	}
}

func (m *reentrantMutex) held() bool {
	return m.owner.Load() == getGID()
}
