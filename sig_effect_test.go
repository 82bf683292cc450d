package sig

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffect(t *testing.T) {
	t.Run("runs on signal change with cleanup", func(t *testing.T) {
		log := []string{}

		count := NewSignal(0)
		log = append(log, fmt.Sprintf("%d", count.Read()))

		NewEffect(func() {
			log = append(log, fmt.Sprintf("changed %d", count.Read()))

			OnCleanup(func() {
				log = append(log, "cleanup")
			})
		})

		count.Write(10)
		log = append(log, fmt.Sprintf("%d", count.Read()))
		count.Write(20)

		assert.Equal(t, []string{
			"0",
			"changed 0",
			"cleanup",
			"changed 10",
			"10",
			"cleanup",
			"changed 20",
		}, log)
	})

	t.Run("writes to another signal", func(t *testing.T) {
		log := []string{}

		count := NewSignal(0)
		double := NewSignal(0)

		NewEffect(func() {
			double.Write(count.Read() * 2)
		})

		NewEffect(func() {
			log = append(log, fmt.Sprintf("changed %d", double.Read()))

			OnCleanup(func() {
				log = append(log, "cleanup")
			})
		})

		count.Write(10)

		assert.Equal(t, []string{
			"changed 0",
			"cleanup",
			"changed 20",
		}, log)
	})

	t.Run("nested effects", func(t *testing.T) {
		log := []string{}

		count := NewSignal(0)

		NewEffect(func() {
			count.Read()
			log = append(log, "running")

			NewEffect(func() {
				log = append(log, "running nested")

				OnCleanup(func() {
					log = append(log, "cleanup nested")
				})
			})

			OnCleanup(func() {
				log = append(log, "cleanup")
			})
		})

		count.Write(10)

		assert.Equal(t, []string{
			"running",
			"running nested",
			"cleanup nested",
			"cleanup",
			"running",
			"running nested",
		}, log)
	})

	t.Run("diamond dependency", func(t *testing.T) {
		log := []string{}

		count := NewSignal(0)
		double := NewMemo(func() int { return count.Read() * 2 })
		quad := NewMemo(func() int { return count.Read() * 4 })

		NewEffect(func() {
			log = append(log, fmt.Sprintf("running %d %d", double.Read(), quad.Read()))

			OnCleanup(func() {
				log = append(log, fmt.Sprintf("cleanup %d %d", double.Read(), quad.Read()))
			})
		})

		count.Write(10)

		assert.Equal(t, []string{
			"running 0 0",
			"cleanup 20 40",
			"running 20 40",
		}, log)
	})

	t.Run("diamond dependency nested", func(t *testing.T) {
		log := []string{}

		count := NewSignal(0)
		double := NewMemo(func() int { return count.Read() * 2 })
		quad := NewMemo(func() int { return count.Read() * 4 })

		NewEffect(func() {
			log = append(log, fmt.Sprintf("running %d %d", double.Read(), quad.Read()))

			NewEffect(func() {
				log = append(log, fmt.Sprintf("running nested %d %d", double.Read(), quad.Read()))
				OnCleanup(func() {
					log = append(log, fmt.Sprintf("cleanup nested %d %d", double.Read(), quad.Read()))
				})
			})

			OnCleanup(func() {
				log = append(log, fmt.Sprintf("cleanup %d %d", double.Read(), quad.Read()))
			})
		})

		count.Write(10)

		assert.Equal(t, []string{
			"running 0 0",
			"running nested 0 0",
			"cleanup nested 20 40",
			"cleanup 20 40",
			"running 20 40",
			"running nested 20 40",
		}, log)
	})

	t.Run("deps change between runs", func(t *testing.T) {
		log := []string{}

		count := NewSignal(0)

		initialized := false
		NewEffect(func() {
			log = append(log, "running")
			if !initialized {
				count.Read()
			}
			initialized = true
		})

		count.Write(1)
		count.Write(2) // should not trigger since effect no longer depends on count

		assert.Equal(t, []string{
			"running",
			"running",
		}, log)
	})

	t.Run("concurrent read/write", func(t *testing.T) {
		var wg sync.WaitGroup
		var mu sync.Mutex
		log := []int{}

		count := NewSignal(0)

		NewEffect(func() {
			mu.Lock()
			log = append(log, count.Read())
			mu.Unlock()
		})

		wg.Go(func() {
			for count.Read() < 5 {
				count.Write(count.Read() + 1)
			}
		})

		wg.Wait()

		assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, log)
	})

	t.Run("double concurrent read/write", func(t *testing.T) {
		var wg sync.WaitGroup
		var mu sync.Mutex
		log := []int{}

		a := NewSignal(0)
		b := NewSignal(0)

		NewEffect(func() {
			mu.Lock()
			log = append(log, a.Read())
			mu.Unlock()
		})

		wg.Go(func() {
			for b.Read() < 5 {
				b.Write(b.Read() + 1)
			}
		})

		wg.Go(func() {
			a.Read()
			a.Write(1)
		})

		wg.Wait()

		assert.Equal(t, []int{0, 1}, log)
	})

	t.Run("returned cleanup", func(t *testing.T) {
		log := []string{}

		count := NewSignal(0)

		e := NewEffect(func() func() {
			c := count.Read()
			log = append(log, fmt.Sprintf("running %d", c))

			return func() {
				log = append(log, fmt.Sprintf("cleanup %d", c))
			}
		})

		count.Write(1)
		e.Dispose()
		count.Write(2)

		assert.Equal(t, []string{
			"running 0",
			"cleanup 0",
			"running 1",
			"cleanup 1",
		}, log)
	})

	t.Run("runs once per flush", func(t *testing.T) {
		log := []string{}

		a := NewSignal(0)
		b := NewSignal(0)

		NewEffect(func() {
			log = append(log, fmt.Sprintf("sum %d", a.Read()+b.Read()))
		})

		Batch(func() {
			a.Write(1)
			b.Write(2)
			a.Write(3)
		})

		assert.Equal(t, []string{
			"sum 0",
			"sum 5",
		}, log)
	})

	t.Run("glitch free", func(t *testing.T) {
		log := []string{}

		count := NewSignal(1)
		double := NewMemo(func() int { return count.Read() * 2 })
		total := NewMemo(func() int { return count.Read() + double.Read() })

		NewEffect(func() {
			log = append(log, fmt.Sprintf("%d %d %d", count.Read(), double.Read(), total.Read()))
		})

		count.Write(2)
		count.Write(3)

		assert.Equal(t, []string{
			"1 2 3",
			"2 4 6",
			"3 6 9",
		}, log)
	})

	t.Run("conditional reads are pruned", func(t *testing.T) {
		runs := 0

		show := NewSignal(false)
		count := NewSignal(1)

		NewEffect(func() {
			runs++
			if show.Read() {
				count.Read()
			}
		})
		assert.Equal(t, 1, runs)

		count.Write(2)
		assert.Equal(t, 1, runs)

		show.Write(true)
		assert.Equal(t, 2, runs)

		count.Write(3)
		assert.Equal(t, 3, runs)
	})

	t.Run("dispose drops a pending run", func(t *testing.T) {
		log := []int{}

		count := NewSignal(0)

		var e *Effect
		Batch(func() {
			e = NewEffect(func() {
				log = append(log, count.Read())
			})

			count.Write(1) // schedules e
			e.Dispose()
		})

		count.Write(2)

		assert.Equal(t, []int{0}, log)
	})

	t.Run("contains panics", func(t *testing.T) {
		count := NewSignal(0)

		e := NewEffect(func() {
			if count.Read() == 1 {
				panic("boom")
			}
		})
		assert.NoError(t, e.Err())

		assert.NotPanics(t, func() { count.Write(1) })
		assert.EqualError(t, e.Err(), "sig: "+e.Name()+" panicked: boom")

		count.Write(2)
		assert.NoError(t, e.Err())
	})

	t.Run("storm is cut off", func(t *testing.T) {
		Configure(WithMaxFlushPasses(10))

		a := NewSignal(0)
		b := NewSignal(0)
		runs := 0

		NewEffect(func() {
			runs++
			b.Write(a.Read() + 1)
		})
		NewEffect(func() {
			runs++
			a.Write(b.Read() + 1)
		})

		assert.NotPanics(t, func() { a.Write(100) })
		assert.LessOrEqual(t, runs, 2+2*10)

		// the graph is still usable afterwards
		log := []int{}
		c := NewSignal(0)
		NewEffect(func() { log = append(log, c.Read()) })
		c.Write(1)
		assert.Equal(t, []int{0, 1}, log)
	})
}
