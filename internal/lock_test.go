package internal

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReentrantMutex(t *testing.T) {
	t.Run("relocks from the same goroutine", func(t *testing.T) {
		var m reentrantMutex

		m.Lock()
		m.Lock()
		assert.True(t, m.held())

		m.Unlock()
		assert.True(t, m.held())

		m.Unlock()
		assert.False(t, m.held())
	})

	t.Run("blocks other goroutines", func(t *testing.T) {
		var m reentrantMutex
		var wg sync.WaitGroup
		log := make(chan string, 2)

		m.Lock()

		wg.Go(func() {
			m.Lock()
			log <- "other"
			m.Unlock()
		})

		time.Sleep(10 * time.Millisecond)
		log <- "owner"
		m.Unlock()

		wg.Wait()

		assert.Equal(t, "owner", <-log)
		assert.Equal(t, "other", <-log)
	})
}

func TestGetRuntime(t *testing.T) {
	t.Run("one runtime per goroutine", func(t *testing.T) {
		var wg sync.WaitGroup

		mine := GetRuntime()
		assert.Same(t, mine, GetRuntime())

		var other *Runtime
		wg.Go(func() { other = GetRuntime() })
		wg.Wait()

		assert.NotSame(t, mine, other)
	})

	t.Run("resolves to the locked runtime", func(t *testing.T) {
		var wg sync.WaitGroup

		r := NewRuntime()
		r.Lock()
		assert.Same(t, r, GetRuntime())
		r.Unlock()

		assert.NotSame(t, r, GetRuntime())

		wg.Go(func() {
			assert.NotSame(t, r, GetRuntime())
		})
		wg.Wait()
	})

	t.Run("release gives a fresh runtime", func(t *testing.T) {
		before := GetRuntime()
		ReleaseRuntime()

		assert.NotSame(t, before, GetRuntime())
	})
}
