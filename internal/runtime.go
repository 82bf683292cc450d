package internal

import (
	"time"

	"github.com/go-logr/logr"
)

type Runtime struct {
	mu reentrantMutex

	tracker   *Tracker
	batcher   *Batcher
	scheduler *Scheduler

	// owns every node and scope created outside of any scope, never disposed
	root *Scope

	nextID uint64
	config Config

	// the runtime this goroutine was inside of before locking this one
	prev *Runtime
}

func NewRuntime(opts ...Option) *Runtime {
	r := &Runtime{
		tracker:   NewTracker(),
		batcher:   NewBatcher(),
		scheduler: NewScheduler(),
		config:    DefaultConfig(),
	}
	r.root = r.newScope(nil, nil)

	for _, opt := range opts {
		opt(&r.config)
	}

	return r
}

// Lock serializes access to the graph. The goroutine holding the lock can
// lock it again, and resolves GetRuntime to this runtime until it unlocks.
func (r *Runtime) Lock() {
	r.mu.Lock()
	if r.mu.depth == 1 {
		r.prev = enterRuntime(r)
	}
}

func (r *Runtime) Unlock() {
	if r.mu.depth == 1 {
		leaveRuntime(r.prev)
		r.prev = nil
	}
	r.mu.Unlock()
}

func (r *Runtime) Configure(opts ...Option) {
	r.Lock()
	defer r.Unlock()

	for _, opt := range opts {
		opt(&r.config)
	}
}

func (r *Runtime) log() logr.Logger {
	if r.config.Logger != nil {
		return *r.config.Logger
	}

	return defaultLogger()
}

func (r *Runtime) Untrack(fn func()) {
	r.Lock()
	defer r.Unlock()

	r.tracker.RunUntracked(fn)
}

// OnCleanup registers fn on the active scope.
func (r *Runtime) OnCleanup(fn func()) {
	r.Lock()
	defer r.Unlock()

	scope := r.tracker.CurrentScope()
	if scope == nil {
		panic(ErrNoScope)
	}

	scope.onCleanup(fn)
}

// OnSettled runs fn once, after the next flush drained every pending effect.
func (r *Runtime) OnSettled(fn func()) {
	r.Lock()
	defer r.Unlock()

	r.scheduler.settled.Enqueue(fn)
}

// Flush drains pending effects now, whatever the configured scheduler is.
func (r *Runtime) Flush() {
	r.Lock()
	defer r.Unlock()

	if r.batcher.IsBatching() || r.tracker.IsRunning() {
		// the batch or run boundary will request it again
		r.scheduler.scheduled = false
		return
	}

	r.scheduler.scheduled = true
	r.flush()
}

// requestFlush hands a flush to the scheduler, unless a boundary that will
// flush anyway is still open.
func (r *Runtime) requestFlush() {
	s := r.scheduler

	if r.batcher.IsBatching() || r.tracker.IsRunning() {
		return
	}
	if s.running || s.scheduled || s.pending == 0 {
		return
	}

	s.scheduled = true
	r.config.Scheduler(r.Flush)
}

func (r *Runtime) flush() {
	start := time.Now()
	passes, ran := 0, 0

	r.scheduler.Run(func() {
		for r.scheduler.pending > 0 {
			if passes == r.config.MaxFlushPasses {
				r.log().Error(ErrFlushStorm, "dropping pending effects", "passes", passes, "pending", r.scheduler.pending)
				r.root.dropPending()
				break
			}

			passes++
			ran += r.root.runPending()
		}
	})

	r.config.Hooks.OnFlush(passes, ran, time.Since(start))
	r.log().V(1).Info("flushed", "passes", passes, "effects", ran, "duration", time.Since(start))

	// settled callbacks may have written signals
	r.requestFlush()
}

// report logs a contained error and hands it to the nearest scope that has
// error handlers.
func (r *Runtime) report(n *Node, err error) {
	r.log().Error(err, "computation failed", "node", n.name, "kind", n.kind)
	r.config.Hooks.OnError(n.name, n.kind, err)

	for s := n.owner; s != nil; s = s.parent {
		if len(s.catchers) > 0 {
			s.catch(err)
			return
		}
	}
}
