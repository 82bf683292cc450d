//go:build wasm

package internal

import "sync"

var once sync.Once
var globalRuntime *Runtime

func GetRuntime() *Runtime {
	once.Do(func() {
		globalRuntime = NewRuntime()
	})

	return globalRuntime
}

// ReleaseRuntime is a no-op, there is a single runtime.
func ReleaseRuntime() {}

// the js event loop runs every goroutine on one thread
func getGID() int64 {
	return 1
}

func enterRuntime(*Runtime) *Runtime { return nil }

func leaveRuntime(*Runtime) {}
