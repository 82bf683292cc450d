package internal

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScheduler(t *testing.T) {
	t.Run("custom scheduler coalesces writes", func(t *testing.T) {
		var queued []func()
		r := NewRuntime(WithScheduler(func(flush func()) {
			queued = append(queued, flush)
		}))

		count := r.NewSignal(0, "count", nil)
		log := []any{}
		r.NewEffect(func() any {
			log = append(log, count.Read())
			return nil
		}, "e")

		count.Write(1)
		count.Write(2)
		count.Write(3)

		assert.Len(t, queued, 1)
		assert.Equal(t, []any{0}, log)

		queued[0]()
		assert.Equal(t, []any{0, 3}, log)

		count.Write(4)
		assert.Len(t, queued, 2)
	})

	t.Run("flush from another goroutine", func(t *testing.T) {
		var wg sync.WaitGroup
		r := NewRuntime(WithScheduler(func(flush func()) {
			wg.Go(flush)
		}))

		count := r.NewSignal(0, "count", nil)
		done := make(chan any, 1)
		r.NewEffect(func() any {
			if v := count.Read(); v.(int) > 0 {
				done <- v
			}
			return nil
		}, "e")

		count.Write(1)
		wg.Wait()

		assert.Equal(t, 1, <-done)
	})

	t.Run("explicit flush ignores the scheduler", func(t *testing.T) {
		r := NewRuntime(WithScheduler(func(func()) {}))

		count := r.NewSignal(0, "count", nil)
		log := []any{}
		r.NewEffect(func() any {
			log = append(log, count.Read())
			return nil
		}, "e")

		count.Write(1)
		assert.Equal(t, []any{0}, log)

		r.Flush()
		assert.Equal(t, []any{0, 1}, log)
	})

	t.Run("storm stops after max passes", func(t *testing.T) {
		hooks := &recordingHooks{}
		r := NewRuntime(WithMaxFlushPasses(3), WithHooks(hooks))

		count := r.NewSignal(0, "count", nil)
		r.NewEffect(func() any {
			count.Write(count.Read().(int) + 1)
			return nil
		}, "e")

		assert.Equal(t, "flush passes=3 effects=3", hooks.events[len(hooks.events)-1])
		assert.Equal(t, 0, r.scheduler.pending)
		assert.Equal(t, 4, count.Peek())
	})

	t.Run("effects dropped by a storm still see later writes", func(t *testing.T) {
		r := NewRuntime(WithMaxFlushPasses(3))

		count := r.NewSignal(0, "count", nil)
		double := r.NewMemo(func() any { return count.Read().(int) * 2 }, "double", nil)
		seen := []any{}
		r.NewEffect(func() any {
			seen = append(seen, double.Read())
			return nil
		}, "watch")

		ping := r.NewSignal(0, "ping", nil)
		pong := r.NewSignal(0, "pong", nil)
		r.NewEffect(func() any {
			v := ping.Read().(int)
			count.Write(v)
			pong.Write(v + 1)
			return nil
		}, "ping")
		r.NewEffect(func() any {
			ping.Write(pong.Read().(int) + 1)
			return nil
		}, "pong")

		assert.Equal(t, []any{0, 4}, seen)
		assert.Equal(t, 0, r.scheduler.pending)
		assert.False(t, double.dirty)

		count.Write(5000)
		assert.Equal(t, []any{0, 4, 10000}, seen)
	})

	t.Run("skipped effects are not counted as runs", func(t *testing.T) {
		hooks := &recordingHooks{}
		r := NewRuntime(WithHooks(hooks))

		count := r.NewSignal(1, "count", nil)
		sign := r.NewMemo(func() any { return count.Read().(int) > 0 }, "sign", nil)
		r.NewEffect(func() any { return sign.Read() }, "e")

		count.Write(2)

		assert.Equal(t, "flush passes=1 effects=0", hooks.events[len(hooks.events)-1])
	})

	t.Run("parents run before children", func(t *testing.T) {
		r := NewRuntime()

		count := r.NewSignal(0, "count", nil)
		log := []string{}

		r.NewEffect(func() any {
			count.Read()
			log = append(log, "parent")

			r.NewEffect(func() any {
				count.Read()
				log = append(log, "child")
				return nil
			}, "child")

			return nil
		}, "parent")

		count.Write(1)

		// the old child is disposed by the parent re-run, never run twice
		assert.Equal(t, []string{"parent", "child", "parent", "child"}, log)
	})

	t.Run("settled callbacks run once", func(t *testing.T) {
		r := NewRuntime()

		count := r.NewSignal(0, "count", nil)
		r.NewEffect(func() any { return count.Read() }, "e")

		settled := 0
		r.OnSettled(func() { settled++ })

		count.Write(1)
		count.Write(2)

		assert.Equal(t, 1, settled)
	})

	t.Run("writes in settled callbacks flush", func(t *testing.T) {
		r := NewRuntime()

		a := r.NewSignal(0, "a", nil)
		b := r.NewSignal(0, "b", nil)
		log := []any{}
		r.NewEffect(func() any { return a.Read() }, "a")
		r.NewEffect(func() any {
			log = append(log, b.Read())
			return nil
		}, "b")

		r.OnSettled(func() { b.Write(1) })
		a.Write(1)

		assert.Equal(t, []any{0, 1}, log)
	})
}
