//go:build !wasm

package internal

import (
	"sync"

	"github.com/petermattis/goid"
)

var runtimes sync.Map

// GetRuntime returns the runtime of the calling goroutine, creating it on first use.
func GetRuntime() *Runtime {
	gid := getGID()

	if r, ok := active.Load(gid); ok {
		return r.(*Runtime)
	}
	if r, ok := runtimes.Load(gid); ok {
		return r.(*Runtime)
	}

	r := NewRuntime()
	runtimes.Store(gid, r)
	return r
}

// ReleaseRuntime forgets the runtime of the calling goroutine.
// Nodes created on it keep working, new ones go to a fresh runtime.
func ReleaseRuntime() {
	runtimes.Delete(getGID())
}

func getGID() int64 {
	return goid.Get()
}

// goroutines currently inside a runtime that is not their own
var active sync.Map

func enterRuntime(r *Runtime) *Runtime {
	prev, _ := active.Swap(getGID(), r)
	if prev == nil {
		return nil
	}

	return prev.(*Runtime)
}

func leaveRuntime(prev *Runtime) {
	if prev == nil {
		active.Delete(getGID())
		return
	}

	active.Store(getGID(), prev)
}
