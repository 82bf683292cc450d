package internal

import (
	"slices"
	"time"
)

// refresh brings a memo or effect up to date, running it only when one of
// its sources actually changed since its last run. It reports whether n ran.
func (r *Runtime) refresh(n *Node) bool {
	if n.running {
		r.cycle(n)
		return false
	}
	if n.compute == nil || n.disposed {
		return false
	}
	if n.initialized && !n.dirty {
		return false
	}
	if n.initialized && !r.sourcesChanged(n) {
		n.dirty = false
		return false
	}

	r.run(n)
	return true
}

// settle marks n clean without running it. Its memo sources are pulled up to
// date first, otherwise they would stay dirty and never notify n again.
func (r *Runtime) settle(n *Node) {
	for _, l := range slices.Clone(n.sources) {
		if l.node.kind == KindMemo {
			r.refresh(l.node)
		}
	}

	n.dirty = false
}

// sourcesChanged pulls memo sources up to date in read order and compares
// their versions with the ones recorded during the last run.
func (r *Runtime) sourcesChanged(n *Node) bool {
	for _, l := range slices.Clone(n.sources) {
		if l.node.kind == KindMemo {
			r.refresh(l.node)
		}

		if l.node.version != l.version {
			return true
		}
	}

	return false
}

func (r *Runtime) run(n *Node) {
	if n.compute == nil || n.disposed {
		return
	}
	if n.running {
		r.cycle(n)
		return
	}

	r.tracker.push(n)
	defer func() {
		r.tracker.pop()

		if !r.tracker.IsRunning() {
			r.requestFlush()
		}
	}()

	if n.scope == nil {
		n.scope = r.newScope(n.owner, n)
	}

	n.clearSources()
	n.scope.reset()

	if n.cleanup != nil {
		cleanup := n.cleanup
		n.cleanup = nil

		if err := r.safeCall(cleanup); err != nil {
			r.log().Error(err, "effect cleanup failed", "node", n.name)
		}
	}

	n.dirty = false
	n.err = nil

	start := time.Now()
	value, err := r.invoke(n)
	r.config.Hooks.OnRun(n.name, n.kind, time.Since(start))

	first := !n.initialized
	n.initialized = true

	// disposed by its own body, nothing may stay attached
	if n.disposed {
		n.clearSources()
		n.dirty = false

		if cleanup, ok := value.(func()); ok && err == nil {
			if err := r.safeCall(cleanup); err != nil {
				r.log().Error(err, "effect cleanup failed", "node", n.name)
			}
		}
		return
	}

	// a cycle was detected while running, keep the last value
	if n.err != nil {
		n.clearSources()
		n.dirty = false
		return
	}

	if err != nil {
		n.err = err
		n.dirty = false
		r.report(n, err)
		return
	}

	switch n.kind {
	case KindEffect:
		n.value = value
		if cleanup, ok := value.(func()); ok {
			n.cleanup = cleanup
		}

	case KindMemo:
		if first {
			n.value = value
			return
		}

		if !n.equals(n.value, value) {
			n.value = value
			n.version++
			r.notify(n)
		}
	}
}

// cycle leaves n in a terminal error state: it keeps its last value and
// loses its sources so nothing schedules it again.
func (r *Runtime) cycle(n *Node) {
	err := newCycleError(r.tracker.cyclePath(n))

	n.err = err
	n.dirty = false
	n.clearSources()

	r.report(n, err)
}

func (r *Runtime) invoke(n *Node) (value any, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = &ComputeError{Node: n.name, Value: p}
		}
	}()

	r.tracker.RunWithComputation(n, func() {
		value = n.compute()
	})

	return value, nil
}

// safeCall runs fn untracked and turns a panic into an error.
func (r *Runtime) safeCall(fn func()) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = asError(p)
		}
	}()

	r.tracker.RunUntracked(fn)
	return nil
}

// markDirty flags n as stale. Memos pass it on to their observers, effects
// schedule themselves.
func (r *Runtime) markDirty(n *Node) {
	if n.dirty || n.disposed {
		return
	}

	n.dirty = true

	if n.schedule != nil {
		n.schedule()
		return
	}

	r.notify(n)
}

// notify marks the observers of n dirty. Observers may unlink while being
// marked, so it iterates over a snapshot.
func (r *Runtime) notify(n *Node) {
	for _, obs := range slices.Clone(n.observers) {
		r.markDirty(obs)
	}
}
